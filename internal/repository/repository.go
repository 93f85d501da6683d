package repository

import (
	"anonforum/internal/models"
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateDisplayUsername(ctx context.Context, userID string, displayUsername *string) error
	DeleteUser(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	ListUserIDsWithoutPrimaryAlias(ctx context.Context) ([]string, error)
}

// AliasRepository lookups return (nil, nil) when nothing matches.
type AliasRepository interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	GetPrimaryByUser(ctx context.Context, userID string) (*models.Alias, error)
	GetAllByUser(ctx context.Context, userID string) ([]models.Alias, error)
	GetByID(ctx context.Context, aliasID string) (*models.Alias, error)
	Insert(ctx context.Context, alias *models.Alias) error
}

type ThreadRepository interface {
	Create(ctx context.Context, thread *models.Thread) error
	GetByID(ctx context.Context, threadID string) (*models.ThreadView, error)
	List(ctx context.Context, category string, limit, offset int) ([]models.ThreadView, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	ListByThread(ctx context.Context, threadID string) ([]models.PostView, error)
	List(ctx context.Context, limit, offset int) ([]models.PostView, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]models.CommentView, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByImageID(ctx context.Context, imageID string) (*models.Image, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Image, error)
	Delete(ctx context.Context, imageID string) error
}

type StatsRepository interface {
	Counts(ctx context.Context) (*models.Stats, error)
}

type Repository struct {
	User    UserRepository
	Alias   AliasRepository
	Thread  ThreadRepository
	Post    PostRepository
	Comment CommentRepository
	Image   ImageRepository
	Stats   StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Alias:   NewAliasRepository(db),
		Thread:  NewThreadRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Image:   NewImageRepository(db),
		Stats:   NewStatsRepository(db),
	}
}
