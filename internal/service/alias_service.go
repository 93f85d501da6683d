package service

import (
	"anonforum/internal/alias"
	"anonforum/internal/models"
	"anonforum/internal/repository"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxAliasAttempts bounds the generate-then-check loop of one allocation.
	MaxAliasAttempts = 10
	// MaxInsertRetries bounds full allocations restarted after a name conflict on insert.
	MaxInsertRetries = 3
)

type AliasService interface {
	CreatePrimary(ctx context.Context, userID string) (*models.Alias, error)
	EnsurePrimary(ctx context.Context, userID string) (*models.Alias, error)
	CreateSecondary(ctx context.Context, userID string, customName *string, rotationEnabled bool) (*models.Alias, error)
	IsAvailable(ctx context.Context, name string) (bool, error)
	GetPrimary(ctx context.Context, userID string) (*models.Alias, error)
	ListByUser(ctx context.Context, userID string) ([]models.Alias, error)
	GetByID(ctx context.Context, aliasID string) (*models.Alias, error)
}

type aliasService struct {
	aliasRepo repository.AliasRepository
	generator alias.NameGenerator
}

func NewAliasService(aliasRepo repository.AliasRepository, generator alias.NameGenerator) AliasService {
	if generator == nil {
		generator = alias.NewGenerator(nil)
	}

	return &aliasService{
		aliasRepo: aliasRepo,
		generator: generator,
	}
}

func (s *aliasService) CreatePrimary(ctx context.Context, userID string) (*models.Alias, error) {
	for retry := 0; retry < MaxInsertRetries; retry++ {
		name, err := s.generateUnique(ctx)
		if err != nil {
			return nil, err
		}

		created := &models.Alias{
			UserID:          userID,
			Name:            name,
			IsPrimary:       true,
			RotationEnabled: false,
		}

		err = s.aliasRepo.Insert(ctx, created)
		switch {
		case err == nil:
			log.Printf("Alias principal %s créé pour l'utilisateur %s", created.Name, userID)
			return created, nil

		case repository.IsConstraint(err, repository.ConstraintOnePrimary):
			// another request already provisioned this user
			existing, getErr := s.aliasRepo.GetPrimaryByUser(ctx, userID)
			if getErr != nil {
				return nil, fmt.Errorf("erreur lors de la relecture de l'alias principal : %w", getErr)
			}
			if existing == nil {
				return nil, fmt.Errorf("alias principal introuvable après conflit : %w", err)
			}
			return existing, nil

		case repository.IsConstraint(err, repository.ConstraintAliasName):
			log.Printf("Conflit sur l'alias %s à l'insertion, nouvelle tentative (%d/%d)", name, retry+1, MaxInsertRetries)
			continue

		default:
			log.Printf("Échec de la création de l'alias principal pour %s : %v", userID, err)
			return nil, err
		}
	}

	log.Printf("ALERTE : conflits répétés à l'insertion d'un alias pour %s", userID)
	return nil, ErrAliasExhausted
}

func (s *aliasService) EnsurePrimary(ctx context.Context, userID string) (*models.Alias, error) {
	existing, err := s.aliasRepo.GetPrimaryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	return s.CreatePrimary(ctx, userID)
}

func (s *aliasService) CreateSecondary(ctx context.Context, userID string, customName *string, rotationEnabled bool) (*models.Alias, error) {
	if customName != nil {
		return s.createCustom(ctx, userID, strings.TrimSpace(*customName), rotationEnabled)
	}

	for retry := 0; retry < MaxInsertRetries; retry++ {
		name, err := s.generateUnique(ctx)
		if err != nil {
			return nil, err
		}

		created := &models.Alias{
			UserID:          userID,
			Name:            name,
			RotationEnabled: rotationEnabled,
		}

		err = s.aliasRepo.Insert(ctx, created)
		if err == nil {
			return created, nil
		}
		if !repository.IsConstraint(err, repository.ConstraintAliasName) {
			return nil, err
		}
		log.Printf("Conflit sur l'alias %s à l'insertion, nouvelle tentative (%d/%d)", name, retry+1, MaxInsertRetries)
	}

	return nil, ErrAliasExhausted
}

func (s *aliasService) createCustom(ctx context.Context, userID, name string, rotationEnabled bool) (*models.Alias, error) {
	if err := ValidateAliasName(name); err != nil {
		return nil, err
	}

	taken, err := s.aliasRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &NameTakenError{Name: name}
	}

	created := &models.Alias{
		UserID:          userID,
		Name:            name,
		RotationEnabled: rotationEnabled,
	}

	if err := s.aliasRepo.Insert(ctx, created); err != nil {
		if repository.IsConstraint(err, repository.ConstraintAliasName) {
			return nil, &NameTakenError{Name: name}
		}
		return nil, err
	}

	return created, nil
}

func (s *aliasService) IsAvailable(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	taken, err := s.aliasRepo.ExistsByName(ctx, name)
	if err != nil {
		return false, err
	}

	return !taken, nil
}

func (s *aliasService) GetPrimary(ctx context.Context, userID string) (*models.Alias, error) {
	primary, err := s.aliasRepo.GetPrimaryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if primary == nil {
		return nil, ErrNoPrimaryAlias
	}

	return primary, nil
}

func (s *aliasService) ListByUser(ctx context.Context, userID string) ([]models.Alias, error) {
	return s.aliasRepo.GetAllByUser(ctx, userID)
}

func (s *aliasService) GetByID(ctx context.Context, aliasID string) (*models.Alias, error) {
	if err := checkID("alias", aliasID); err != nil {
		return nil, err
	}

	found, err := s.aliasRepo.GetByID(ctx, aliasID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("alias %s : %w", aliasID, ErrNotFound)
	}

	return found, nil
}

// generateUnique draws names until one is free or MaxAliasAttempts is spent.
func (s *aliasService) generateUnique(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= MaxAliasAttempts; attempt++ {
		name := s.generator.Generate()

		taken, err := s.aliasRepo.ExistsByName(ctx, name)
		if err != nil {
			return "", fmt.Errorf("erreur lors de la vérification de l'alias : %w", err)
		}
		if !taken {
			return name, nil
		}
	}

	log.Printf("ALERTE : aucun alias libre après %d tentatives, générateur défaillant ou espace saturé", MaxAliasAttempts)
	return "", ErrAliasExhausted
}

// resolveAuthor returns the alias content is stamped with: the caller's
// primary alias, or aliasID after checking it belongs to userID.
func resolveAuthor(ctx context.Context, aliasRepo repository.AliasRepository, userID string, aliasID *string) (*models.Alias, error) {
	if aliasID == nil {
		primary, err := aliasRepo.GetPrimaryByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if primary == nil {
			log.Printf("Aucun alias principal pour l'utilisateur %s", userID)
			return nil, ErrNoPrimaryAlias
		}
		return primary, nil
	}

	// a malformed id cannot name one of this user's aliases
	if _, err := uuid.Parse(*aliasID); err != nil {
		return nil, ErrAliasNotOwned
	}

	chosen, err := aliasRepo.GetByID(ctx, *aliasID)
	if err != nil {
		return nil, err
	}
	if chosen == nil || chosen.UserID != userID {
		return nil, ErrAliasNotOwned
	}

	return chosen, nil
}
