package service

import (
	"anonforum/internal/models"
	"anonforum/internal/repository"
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

type ThreadService interface {
	CreateThread(ctx context.Context, userID string, req CreateThreadRequest) (*models.Thread, error)
	CreateThreadWithAlias(ctx context.Context, userID, aliasID string, req CreateThreadRequest) (*models.Thread, error)
	GetThread(ctx context.Context, threadID string) (*models.ThreadView, error)
	ListThreads(ctx context.Context, category string, limit, offset int) ([]models.ThreadView, error)
}

type threadService struct {
	threadRepo repository.ThreadRepository
	aliasRepo  repository.AliasRepository
}

func NewThreadService(threadRepo repository.ThreadRepository, aliasRepo repository.AliasRepository) ThreadService {
	return &threadService{
		threadRepo: threadRepo,
		aliasRepo:  aliasRepo,
	}
}

func (s *threadService) CreateThread(ctx context.Context, userID string, req CreateThreadRequest) (*models.Thread, error) {
	return s.create(ctx, userID, nil, req)
}

func (s *threadService) CreateThreadWithAlias(ctx context.Context, userID, aliasID string, req CreateThreadRequest) (*models.Thread, error) {
	return s.create(ctx, userID, &aliasID, req)
}

func (s *threadService) create(ctx context.Context, userID string, aliasID *string, req CreateThreadRequest) (*models.Thread, error) {
	if err := ValidateThread(req); err != nil {
		return nil, err
	}

	author, err := resolveAuthor(ctx, s.aliasRepo, userID, aliasID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	thread := &models.Thread{
		AliasID:  author.ID,
		Title:    title,
		Body:     strings.TrimSpace(req.Body),
		Slug:     Slugify(title),
		Category: strings.TrimSpace(req.Category),
	}

	if err := s.threadRepo.Create(ctx, thread); err != nil {
		if repository.IsConstraint(err, repository.ConstraintThreadTitle) {
			return nil, newValidationError("title", "unique", "un sujet porte déjà ce titre")
		}
		return nil, err
	}

	return thread, nil
}

func (s *threadService) GetThread(ctx context.Context, threadID string) (*models.ThreadView, error) {
	if err := checkID("sujet", threadID); err != nil {
		return nil, err
	}

	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	return thread, nil
}

func (s *threadService) ListThreads(ctx context.Context, category string, limit, offset int) ([]models.ThreadView, error) {
	return s.threadRepo.List(ctx, strings.TrimSpace(category), limit, offset)
}

// Slugify lowercases title, joins letter and digit runs with dashes and
// appends a short random suffix so equal prefixes stay distinct.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	base := strings.TrimSuffix(b.String(), "-")
	if runes := []rune(base); len(runes) > 80 {
		base = strings.TrimSuffix(string(runes[:80]), "-")
	}

	suffix := uuid.New().String()[:8]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
