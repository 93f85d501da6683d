package handlers

import (
	"anonforum/internal/config"
	"anonforum/internal/middleware"
	"anonforum/internal/models"
	"anonforum/internal/repository"
	"anonforum/internal/service"
	"context"
	"io"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) GetUserFromToken(tokenString string) (*models.User, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateDisplayUsername(ctx context.Context, userID string, displayUsername *string) error {
	args := m.Called(ctx, userID, displayUsername)
	return args.Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockAliasService struct {
	mock.Mock
}

func (m *MockAliasService) alias(args mock.Arguments) (*models.Alias, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alias), args.Error(1)
}

func (m *MockAliasService) CreatePrimary(ctx context.Context, userID string) (*models.Alias, error) {
	return m.alias(m.Called(ctx, userID))
}

func (m *MockAliasService) EnsurePrimary(ctx context.Context, userID string) (*models.Alias, error) {
	return m.alias(m.Called(ctx, userID))
}

func (m *MockAliasService) CreateSecondary(ctx context.Context, userID string, customName *string, rotationEnabled bool) (*models.Alias, error) {
	return m.alias(m.Called(ctx, userID, customName, rotationEnabled))
}

func (m *MockAliasService) IsAvailable(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockAliasService) GetPrimary(ctx context.Context, userID string) (*models.Alias, error) {
	return m.alias(m.Called(ctx, userID))
}

func (m *MockAliasService) ListByUser(ctx context.Context, userID string) ([]models.Alias, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Alias), args.Error(1)
}

func (m *MockAliasService) GetByID(ctx context.Context, aliasID string) (*models.Alias, error) {
	return m.alias(m.Called(ctx, aliasID))
}

type MockThreadService struct {
	mock.Mock
}

func (m *MockThreadService) CreateThread(ctx context.Context, userID string, req service.CreateThreadRequest) (*models.Thread, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

func (m *MockThreadService) CreateThreadWithAlias(ctx context.Context, userID, aliasID string, req service.CreateThreadRequest) (*models.Thread, error) {
	args := m.Called(ctx, userID, aliasID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

func (m *MockThreadService) GetThread(ctx context.Context, threadID string) (*models.ThreadView, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ThreadView), args.Error(1)
}

func (m *MockThreadService) ListThreads(ctx context.Context, category string, limit, offset int) ([]models.ThreadView, error) {
	args := m.Called(ctx, category, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ThreadView), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, userID string, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePostWithAlias(ctx context.Context, userID, aliasID string, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, userID, aliasID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ListPostsByThread(ctx context.Context, threadID string) ([]models.PostView, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostView), args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context, limit, offset int) ([]models.PostView, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostView), args.Error(1)
}

func (m *MockPostService) AddImage(ctx context.Context, userID, postID, fileName string, file io.Reader, size int64) (*models.Image, error) {
	args := m.Called(ctx, userID, postID, fileName, file, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockPostService) DeleteImage(ctx context.Context, userID, postID, imageID string) error {
	args := m.Called(ctx, userID, postID, imageID)
	return args.Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) comment(args mock.Arguments) (*models.Comment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) CreateComment(ctx context.Context, userID string, req service.CreateCommentRequest) (*models.Comment, error) {
	return m.comment(m.Called(ctx, userID, req))
}

func (m *MockCommentService) CreateCommentWithAlias(ctx context.Context, userID, aliasID string, req service.CreateCommentRequest) (*models.Comment, error) {
	return m.comment(m.Called(ctx, userID, aliasID, req))
}

func (m *MockCommentService) CreateReply(ctx context.Context, userID string, req service.CreateCommentRequest) (*models.Comment, error) {
	return m.comment(m.Called(ctx, userID, req))
}

func (m *MockCommentService) ListCommentsByPost(ctx context.Context, postID string) ([]models.CommentView, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CommentView), args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

type fakeHealth struct {
	err error
}

func (f fakeHealth) HealthCheck() error {
	return f.err
}

type handlerFixture struct {
	h       *Handlers
	auth    *MockAuthService
	users   *MockUserService
	aliases *MockAliasService
	threads *MockThreadService
	posts   *MockPostService
	comment *MockCommentService
	stats   *MockStatsService
}

func newFixture() *handlerFixture {
	f := &handlerFixture{
		auth:    new(MockAuthService),
		users:   new(MockUserService),
		aliases: new(MockAliasService),
		threads: new(MockThreadService),
		posts:   new(MockPostService),
		comment: new(MockCommentService),
		stats:   new(MockStatsService),
	}
	f.h = &Handlers{
		AuthService:    f.auth,
		UserService:    f.users,
		AliasService:   f.aliases,
		ThreadService:  f.threads,
		PostService:    f.posts,
		CommentService: f.comment,
		StatsService:   f.stats,
		Cfg:            &config.Config{MaxUploadSize: 1 << 20},
		Validate:       NewValidator(),
	}
	return f
}

func asUser(r *http.Request, userID string) *http.Request {
	ctx := middleware.WithIdentity(r.Context(), middleware.Identity{UserID: userID, IsAuthenticated: true})
	return r.WithContext(ctx)
}

func stringPtr(s string) *string {
	return &s
}
