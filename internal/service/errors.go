package service

import (
	"errors"
	"fmt"
)

var (
	ErrAliasExhausted     = errors.New("impossible de générer un alias unique")
	ErrNoPrimaryAlias     = errors.New("aucun alias principal pour cet utilisateur")
	ErrAliasNotOwned      = errors.New("cet alias n'appartient pas à l'utilisateur")
	ErrNotFound           = errors.New("ressource introuvable")
	ErrEmailTaken         = errors.New("un compte existe déjà avec cet email")
	ErrInvalidCredentials = errors.New("email ou mot de passe incorrect")
)

// ValidationError reports the first field rule a request broke.
type ValidationError struct {
	Field      string
	Constraint string
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s : %s", e.Field, e.Message)
}

type NameTakenError struct {
	Name string
}

func (e *NameTakenError) Error() string {
	return fmt.Sprintf("l'alias %q est déjà utilisé", e.Name)
}

func newValidationError(field, constraint, message string) *ValidationError {
	return &ValidationError{Field: field, Constraint: constraint, Message: message}
}
