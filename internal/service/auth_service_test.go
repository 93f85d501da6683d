package service

import (
	"anonforum/internal/config"
	"anonforum/internal/models"
	"anonforum/internal/repository"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:         "test-secret-key",
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
	}
}

type authFixture struct {
	users   *MockUserRepository
	aliases *MockAliasRepository
	mailer  *MockMailer
	svc     *authService
}

func newAuthFixture(names ...string) *authFixture {
	users := new(MockUserRepository)
	aliases := new(MockAliasRepository)
	mailer := new(MockMailer)
	svc := NewAuthService(users, NewAliasService(aliases, &sequenceGenerator{names: names}), mailer, testConfig())
	return &authFixture{users: users, aliases: aliases, mailer: mailer, svc: svc.(*authService)}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	req := repository.CreateUserRequest{Email: "test@example.com", Password: "password123"}

	t.Run("Inscription avec alias principal et email de bienvenue", func(t *testing.T) {
		f := newAuthFixture("Doux-Vent-0420")

		f.users.On("GetUserByEmail", mock.Anything, "test@example.com").Return(nil, fmt.Errorf("x : %w", repository.ErrNotFound)).Once()
		f.users.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User"), "password123").Return(nil).Once()
		f.aliases.On("ExistsByName", mock.Anything, "Doux-Vent-0420").Return(false, nil).Once()
		f.aliases.On("Insert", mock.Anything, aliasNamed("Doux-Vent-0420", true)).Return(nil).Once()
		f.mailer.On("SendWelcome", mock.Anything, "test@example.com", "Doux-Vent-0420").Return(nil).Once()

		user, err := f.svc.Register(ctx, req)
		f.svc.mailWG.Wait()

		require.NoError(t, err)
		assert.Equal(t, "user-123", user.UserID)
		assert.NotEmpty(t, user.RefreshToken)
		f.aliases.AssertExpectations(t)
		f.mailer.AssertExpectations(t)
	})

	t.Run("Email déjà utilisé", func(t *testing.T) {
		f := newAuthFixture("Doux-Vent-0420")

		f.users.On("GetUserByEmail", mock.Anything, "test@example.com").Return(&models.User{UserID: "user-1"}, nil).Once()

		_, err := f.svc.Register(ctx, req)

		assert.ErrorIs(t, err, ErrEmailTaken)
		f.users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Course sur l'email à l'insertion", func(t *testing.T) {
		f := newAuthFixture("Doux-Vent-0420")

		f.users.On("GetUserByEmail", mock.Anything, "test@example.com").Return(nil, repository.ErrNotFound).Once()
		f.users.On("CreateUser", mock.Anything, mock.Anything, "password123").
			Return(&repository.ConstraintError{Constraint: repository.ConstraintUserEmail, Err: errors.New("dup")}).Once()

		_, err := f.svc.Register(ctx, req)

		assert.ErrorIs(t, err, ErrEmailTaken)
		f.aliases.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Échec de l'alias : compte conservé, pas d'email", func(t *testing.T) {
		f := newAuthFixture("Pris-Lac-0001")

		f.users.On("GetUserByEmail", mock.Anything, "test@example.com").Return(nil, repository.ErrNotFound).Once()
		f.users.On("CreateUser", mock.Anything, mock.Anything, "password123").Return(nil).Once()
		f.aliases.On("ExistsByName", mock.Anything, "Pris-Lac-0001").Return(true, nil)

		user, err := f.svc.Register(ctx, req)
		f.svc.mailWG.Wait()

		require.NoError(t, err)
		assert.NotNil(t, user)
		f.mailer.AssertNotCalled(t, "SendWelcome", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Échec de l'email sans effet sur l'inscription", func(t *testing.T) {
		f := newAuthFixture("Doux-Vent-0420")

		f.users.On("GetUserByEmail", mock.Anything, "test@example.com").Return(nil, repository.ErrNotFound).Once()
		f.users.On("CreateUser", mock.Anything, mock.Anything, "password123").Return(nil).Once()
		f.aliases.On("ExistsByName", mock.Anything, mock.Anything).Return(false, nil)
		f.aliases.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
		f.mailer.On("SendWelcome", mock.Anything, "test@example.com", mock.Anything).Return(errors.New("smtp down")).Once()

		user, err := f.svc.Register(ctx, req)
		f.svc.mailWG.Wait()

		require.NoError(t, err)
		assert.NotNil(t, user)
		f.mailer.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Connexion avec création paresseuse de l'alias", func(t *testing.T) {
		f := newAuthFixture("Neuf-Cerf-1234")
		user := &models.User{UserID: "user-1", Email: "test@example.com"}

		f.users.On("VerifyPassword", mock.Anything, "test@example.com", "password123").Return(user, nil).Once()
		f.aliases.On("GetPrimaryByUser", mock.Anything, "user-1").Return(nil, nil).Once()
		f.aliases.On("ExistsByName", mock.Anything, "Neuf-Cerf-1234").Return(false, nil).Once()
		f.aliases.On("Insert", mock.Anything, aliasNamed("Neuf-Cerf-1234", true)).Return(nil).Once()
		f.users.On("UpdateRefreshToken", mock.Anything, "user-1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

		got, access, refresh, err := f.svc.Login(ctx, "test@example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, "user-1", got.UserID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		f.aliases.AssertExpectations(t)

		parsed, err := f.svc.GetUserFromToken(access)
		require.NoError(t, err)
		assert.Equal(t, "user-1", parsed.UserID)
	})

	t.Run("Mot de passe incorrect", func(t *testing.T) {
		f := newAuthFixture()

		f.users.On("VerifyPassword", mock.Anything, "test@example.com", "wrong").Return(nil, repository.ErrInvalidPassword).Once()

		_, _, _, err := f.svc.Login(ctx, "test@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Compte inconnu", func(t *testing.T) {
		f := newAuthFixture()

		f.users.On("VerifyPassword", mock.Anything, "nobody@example.com", "x").Return(nil, fmt.Errorf("u : %w", repository.ErrNotFound)).Once()

		_, _, _, err := f.svc.Login(ctx, "nobody@example.com", "x")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshTokens(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	f.users.On("GetUserByRefreshToken", mock.Anything, "old").Return(&models.User{UserID: "user-1"}, nil).Once()
	f.users.On("UpdateRefreshToken", mock.Anything, "user-1", mock.Anything, mock.Anything).Return(nil).Once()
	f.users.On("GetUserByRefreshToken", mock.Anything, "expired").Return(nil, repository.ErrNotFound).Once()

	_, _, refresh, err := f.svc.RefreshTokens(ctx, "old")
	require.NoError(t, err)
	assert.NotEqual(t, "old", refresh)

	_, _, _, err = f.svc.RefreshTokens(ctx, "expired")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidateToken(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	other := NewAuthService(nil, nil, nil, &config.Config{JWTSecretKey: "other", AccessTokenDuration: time.Hour}).(*authService)
	token, err := other.generateAccessToken(&models.User{UserID: "user-1"})
	require.NoError(t, err)

	_, err = f.svc.ValidateToken(token)
	assert.Error(t, err)
}
