package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxThreadTitleLength  = 200
	MaxThreadBodyLength   = 10000
	MaxPostContentLength  = 10000
	MaxCommentLength      = 5000
	MinAliasNameLength    = 3
	MaxAliasNameLength    = 50
	constraintRequired    = "required"
	constraintMaxLength   = "max"
	constraintMinLength   = "min"
	constraintFormat      = "format"
	constraintParentReply = "parentRequired"
)

type CreateThreadRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Category string `json:"category" validate:"required"`
}

type CreatePostRequest struct {
	ThreadID        string   `json:"threadId"`
	Content         string   `json:"content" validate:"required"`
	IsSensitive     bool     `json:"isSensitive"`
	ContentWarnings []string `json:"contentWarnings"`
}

type CreateCommentRequest struct {
	PostID      string  `json:"postId"`
	Content     string  `json:"content" validate:"required"`
	ParentID    *string `json:"parentId"`
	IsAnonymous bool    `json:"isAnonymous"`
}

// requireText checks a trimmed non-empty value whose raw length stays under max.
func requireText(field, value string, max int) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return newValidationError(field, constraintRequired, "ce champ est obligatoire")
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		return newValidationError(field, constraintMaxLength, "ce champ est trop long")
	}
	return nil
}

func ValidateThread(req CreateThreadRequest) error {
	if err := requireText("title", req.Title, MaxThreadTitleLength); err != nil {
		return err
	}
	if err := requireText("body", req.Body, MaxThreadBodyLength); err != nil {
		return err
	}
	if err := requireText("category", req.Category, 0); err != nil {
		return err
	}
	return nil
}

func ValidatePost(req CreatePostRequest) error {
	if err := requireText("content", req.Content, MaxPostContentLength); err != nil {
		return err
	}
	if strings.TrimSpace(req.ThreadID) == "" {
		return newValidationError("threadId", constraintRequired, "le sujet est obligatoire")
	}
	if _, err := uuid.Parse(req.ThreadID); err != nil {
		return newValidationError("threadId", constraintFormat, "identifiant de sujet invalide")
	}
	return nil
}

// ValidateComment checks a comment; reply additionally demands a parent comment.
func ValidateComment(req CreateCommentRequest, reply bool) error {
	if err := requireText("content", req.Content, MaxCommentLength); err != nil {
		return err
	}
	if strings.TrimSpace(req.PostID) == "" {
		return newValidationError("postId", constraintRequired, "le message est obligatoire")
	}
	if _, err := uuid.Parse(req.PostID); err != nil {
		return newValidationError("postId", constraintFormat, "identifiant de message invalide")
	}
	hasParent := req.ParentID != nil && strings.TrimSpace(*req.ParentID) != ""
	if reply && !hasParent {
		return newValidationError("parentId", constraintParentReply, "une réponse doit cibler un commentaire")
	}
	if hasParent {
		if _, err := uuid.Parse(strings.TrimSpace(*req.ParentID)); err != nil {
			return newValidationError("parentId", constraintFormat, "identifiant de commentaire invalide")
		}
	}
	return nil
}

// checkID turns an id that cannot be a UUID into ErrNotFound before it
// reaches Postgres, which would reject it as a type error.
func checkID(kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s %q : %w", kind, id, ErrNotFound)
	}
	return nil
}

// ValidateAliasName checks a requested custom alias after trimming.
func ValidateAliasName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < MinAliasNameLength {
		return newValidationError("alias", constraintMinLength, "l'alias doit contenir au moins 3 caractères")
	}
	if n > MaxAliasNameLength {
		return newValidationError("alias", constraintMaxLength, "l'alias ne peut pas dépasser 50 caractères")
	}
	return nil
}
