package service

import (
	"anonforum/internal/models"
	"anonforum/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const MaxDisplayUsernameLength = 50

type UserService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateDisplayUsername(ctx context.Context, userID string, displayUsername *string) error
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	return user, nil
}

// UpdateDisplayUsername sets or clears (nil or blank) the public account name.
func (s *userService) UpdateDisplayUsername(ctx context.Context, userID string, displayUsername *string) error {
	var name *string
	if displayUsername != nil {
		trimmed := strings.TrimSpace(*displayUsername)
		if utf8.RuneCountInString(trimmed) > MaxDisplayUsernameLength {
			return newValidationError("displayUsername", constraintMaxLength, "le nom affiché ne peut pas dépasser 50 caractères")
		}
		if trimmed != "" {
			name = &trimmed
		}
	}

	if err := s.userRepo.UpdateDisplayUsername(ctx, userID, name); err != nil {
		return mapNotFound(err)
	}

	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return mapNotFound(err)
	}

	return nil
}

// mapNotFound turns a repository miss into the service sentinel, keeping the message.
func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%v : %w", err, ErrNotFound)
	}
	return err
}
