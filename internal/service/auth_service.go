package service

import (
	"anonforum/internal/config"
	"anonforum/internal/mail"
	"anonforum/internal/models"
	"anonforum/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const welcomeMailTimeout = 30 * time.Second

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	GetUserFromToken(tokenString string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	aliases  AliasService
	mailer   mail.Sender
	cfg      *config.Config

	// tracks outstanding welcome emails
	mailWG sync.WaitGroup
}

func NewAuthService(userRepo repository.UserRepository, aliases AliasService, mailer mail.Sender, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		aliases:  aliases,
		mailer:   mailer,
		cfg:      cfg,
	}
}

// Register creates the account and its primary alias, then queues the
// welcome email. A failed alias allocation is logged but does not undo the
// account; Login provisions the alias lazily.
func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	existingUser, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err == nil && existingUser != nil {
		return nil, ErrEmailTaken
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	user := &models.User{
		Email:                  req.Email,
		DisplayUsername:        req.DisplayUsername,
		RefreshToken:           refreshToken,
		RefreshTokenExpiryTime: refreshTokenExpiry,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		if repository.IsConstraint(err, repository.ConstraintUserEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("erreur lors de la création de l'utilisateur : %w", err)
	}

	primary, err := s.aliases.CreatePrimary(ctx, user.UserID)
	if err != nil {
		log.Printf("Erreur lors de la création de l'alias principal pour %s : %v", user.UserID, err)
		return user, nil
	}

	s.sendWelcome(user, primary)

	return user, nil
}

func (s *authService) sendWelcome(user *models.User, primary *models.Alias) {
	if s.mailer == nil {
		return
	}

	name := primary.Name
	if user.DisplayUsername != nil && *user.DisplayUsername != "" {
		name = *user.DisplayUsername
	}

	s.mailWG.Add(1)
	go func() {
		defer s.mailWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), welcomeMailTimeout)
		defer cancel()

		if err := s.mailer.SendWelcome(ctx, user.Email, name); err != nil {
			log.Printf("Échec de l'envoi de l'email de bienvenue à %s : %v", user.Email, err)
		}
	}()
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidPassword) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", fmt.Errorf("erreur d'authentification : %w", err)
	}

	if _, err := s.aliases.EnsurePrimary(ctx, user.UserID); err != nil {
		log.Printf("Impossible de garantir l'alias principal de %s : %v", user.UserID, err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", fmt.Errorf("refresh token invalide : %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.User, string, string, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("erreur lors de la génération de l'access token : %w", err)
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, "", "", fmt.Errorf("erreur lors de l'enregistrement du refresh token : %w", err)
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": user.UserID,
		"email":  user.Email,
		"exp":    now.Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":    now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("erreur lors de la signature du token : %w", err)
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken() (string, time.Time) {
	return uuid.New().String(), time.Now().Add(s.cfg.RefreshTokenDuration)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue : %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("erreur lors de l'analyse du token : %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token invalide")
	}

	return token, nil
}

func (s *authService) GetUserFromToken(tokenString string) (*models.User, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("format des claims invalide")
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		return nil, fmt.Errorf("token sans identifiant utilisateur")
	}
	email, _ := claims["email"].(string)

	return &models.User{UserID: userID, Email: email}, nil
}
