package service

import (
	"anonforum/internal/models"
	"anonforum/internal/repository"
	"context"
	"strings"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID string, req CreateCommentRequest) (*models.Comment, error)
	CreateCommentWithAlias(ctx context.Context, userID, aliasID string, req CreateCommentRequest) (*models.Comment, error)
	CreateReply(ctx context.Context, userID string, req CreateCommentRequest) (*models.Comment, error)
	ListCommentsByPost(ctx context.Context, postID string) ([]models.CommentView, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	aliasRepo   repository.AliasRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, aliasRepo repository.AliasRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		aliasRepo:   aliasRepo,
	}
}

func (s *commentService) CreateComment(ctx context.Context, userID string, req CreateCommentRequest) (*models.Comment, error) {
	return s.create(ctx, userID, nil, req, false)
}

func (s *commentService) CreateCommentWithAlias(ctx context.Context, userID, aliasID string, req CreateCommentRequest) (*models.Comment, error) {
	return s.create(ctx, userID, &aliasID, req, false)
}

func (s *commentService) CreateReply(ctx context.Context, userID string, req CreateCommentRequest) (*models.Comment, error) {
	return s.create(ctx, userID, nil, req, true)
}

func (s *commentService) create(ctx context.Context, userID string, aliasID *string, req CreateCommentRequest, reply bool) (*models.Comment, error) {
	if err := ValidateComment(req, reply); err != nil {
		return nil, err
	}

	author, err := resolveAuthor(ctx, s.aliasRepo, userID, aliasID)
	if err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(ctx, req.PostID); err != nil {
		return nil, mapNotFound(err)
	}

	var parentID *string
	if req.ParentID != nil && strings.TrimSpace(*req.ParentID) != "" {
		parent, err := s.commentRepo.GetByID(ctx, strings.TrimSpace(*req.ParentID))
		if err != nil {
			return nil, mapNotFound(err)
		}
		if parent.PostID != req.PostID {
			return nil, newValidationError("parentId", "samePost", "le commentaire parent appartient à un autre message")
		}
		parentID = &parent.CommentID
	}

	comment := &models.Comment{
		PostID:      req.PostID,
		AliasID:     author.ID,
		ParentID:    parentID,
		Content:     strings.TrimSpace(req.Content),
		IsAnonymous: req.IsAnonymous,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) ListCommentsByPost(ctx context.Context, postID string) ([]models.CommentView, error) {
	if err := checkID("message", postID); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, mapNotFound(err)
	}

	return s.commentRepo.ListByPost(ctx, postID)
}
