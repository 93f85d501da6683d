package service

import (
	"anonforum/internal/models"
	"anonforum/internal/repository"
	"anonforum/internal/storage"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lib/pq"
)

type PostService interface {
	CreatePost(ctx context.Context, userID string, req CreatePostRequest) (*models.Post, error)
	CreatePostWithAlias(ctx context.Context, userID, aliasID string, req CreatePostRequest) (*models.Post, error)
	ListPostsByThread(ctx context.Context, threadID string) ([]models.PostView, error)
	ListPosts(ctx context.Context, limit, offset int) ([]models.PostView, error)
	AddImage(ctx context.Context, userID, postID, fileName string, file io.Reader, size int64) (*models.Image, error)
	DeleteImage(ctx context.Context, userID, postID, imageID string) error
}

type postService struct {
	postRepo   repository.PostRepository
	threadRepo repository.ThreadRepository
	aliasRepo  repository.AliasRepository
	imageRepo  repository.ImageRepository
	storage    storage.Storage
}

func NewPostService(
	postRepo repository.PostRepository,
	threadRepo repository.ThreadRepository,
	aliasRepo repository.AliasRepository,
	imageRepo repository.ImageRepository,
	storage storage.Storage,
) PostService {
	return &postService{
		postRepo:   postRepo,
		threadRepo: threadRepo,
		aliasRepo:  aliasRepo,
		imageRepo:  imageRepo,
		storage:    storage,
	}
}

func (p *postService) CreatePost(ctx context.Context, userID string, req CreatePostRequest) (*models.Post, error) {
	return p.create(ctx, userID, nil, req)
}

func (p *postService) CreatePostWithAlias(ctx context.Context, userID, aliasID string, req CreatePostRequest) (*models.Post, error) {
	return p.create(ctx, userID, &aliasID, req)
}

func (p *postService) create(ctx context.Context, userID string, aliasID *string, req CreatePostRequest) (*models.Post, error) {
	if err := ValidatePost(req); err != nil {
		return nil, err
	}

	author, err := resolveAuthor(ctx, p.aliasRepo, userID, aliasID)
	if err != nil {
		return nil, err
	}

	if _, err := p.threadRepo.GetByID(ctx, req.ThreadID); err != nil {
		return nil, mapNotFound(err)
	}

	post := &models.Post{
		ThreadID:        req.ThreadID,
		AliasID:         author.ID,
		Content:         strings.TrimSpace(req.Content),
		IsSensitive:     req.IsSensitive,
		ContentWarnings: cleanWarnings(req.ContentWarnings),
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func cleanWarnings(warnings []string) pq.StringArray {
	cleaned := pq.StringArray{}
	for _, w := range warnings {
		if w = strings.TrimSpace(w); w != "" {
			cleaned = append(cleaned, w)
		}
	}
	return cleaned
}

func (p *postService) ListPostsByThread(ctx context.Context, threadID string) ([]models.PostView, error) {
	if err := checkID("sujet", threadID); err != nil {
		return nil, err
	}

	posts, err := p.postRepo.ListByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	return p.attachImages(ctx, posts)
}

func (p *postService) ListPosts(ctx context.Context, limit, offset int) ([]models.PostView, error) {
	posts, err := p.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return p.attachImages(ctx, posts)
}

func (p *postService) attachImages(ctx context.Context, posts []models.PostView) ([]models.PostView, error) {
	for i := range posts {
		images, err := p.imageRepo.GetByPostID(ctx, posts[i].PostID)
		if err != nil {
			return nil, err
		}
		posts[i].Images = images
	}
	return posts, nil
}

// ownPost loads the post and checks that its alias belongs to userID.
func (p *postService) ownPost(ctx context.Context, userID, postID string) (*models.Post, error) {
	if err := checkID("message", postID); err != nil {
		return nil, err
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	owner, err := p.aliasRepo.GetByID(ctx, post.AliasID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.UserID != userID {
		return nil, ErrAliasNotOwned
	}

	return post, nil
}

func (p *postService) AddImage(ctx context.Context, userID, postID, fileName string, file io.Reader, size int64) (*models.Image, error) {
	if _, err := p.ownPost(ctx, userID, postID); err != nil {
		return nil, err
	}

	objectName, imageURL, err := p.storage.UploadImage(ctx, postID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de l'envoi de l'image : %w", err)
	}

	image := &models.Image{
		PostID:     postID,
		ImageURL:   imageURL,
		ObjectName: objectName,
	}

	if err := p.imageRepo.Create(ctx, image); err != nil {
		if delErr := p.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("Objet orphelin %s dans le stockage : %v", objectName, delErr)
		}
		return nil, fmt.Errorf("erreur lors de l'enregistrement de l'image : %w", err)
	}

	return image, nil
}

func (p *postService) DeleteImage(ctx context.Context, userID, postID, imageID string) error {
	if _, err := p.ownPost(ctx, userID, postID); err != nil {
		return err
	}
	if err := checkID("image", imageID); err != nil {
		return err
	}

	image, err := p.imageRepo.GetByImageID(ctx, imageID)
	if err != nil {
		return mapNotFound(err)
	}
	if image.PostID != postID {
		return fmt.Errorf("image %s : %w", imageID, ErrNotFound)
	}

	if err := p.storage.DeleteImage(ctx, image.ObjectName); err != nil {
		log.Printf("Attention : suppression dans le stockage impossible : %v", err)
	}

	if err := p.imageRepo.Delete(ctx, imageID); err != nil {
		return mapNotFound(err)
	}

	return nil
}
