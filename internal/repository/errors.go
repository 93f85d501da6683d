package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	ConstraintAliasName   = "aliases_name_key"
	ConstraintOnePrimary  = "aliases_one_primary_per_user"
	ConstraintUserEmail   = "users_email_key"
	ConstraintThreadTitle = "threads_title_key"
	ConstraintThreadSlug  = "threads_slug_key"

	uniqueViolation = "23505"
)

var (
	ErrNotFound            = errors.New("enregistrement introuvable")
	ErrConstraintViolation = errors.New("violation de contrainte d'unicité")
	ErrInvalidPassword     = errors.New("mot de passe incorrect")
)

// ConstraintError is returned when an insert hits a unique constraint.
// errors.Is(err, ErrConstraintViolation) holds for it.
type ConstraintError struct {
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("contrainte %s violée : %v", e.Constraint, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

// IsConstraint reports whether err is a violation of the named constraint.
func IsConstraint(err error, constraint string) bool {
	var ce *ConstraintError
	return errors.As(err, &ce) && ce.Constraint == constraint
}

func asConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return &ConstraintError{Constraint: pqErr.Constraint, Err: err}
	}
	return nil
}
