package repository

import (
	"anonforum/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `user_id, email, display_username, password_hash, refresh_token, refresh_token_expiry_time, created_at`

type userRepository struct {
	db *sqlx.DB
}

type CreateUserRequest struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	DisplayUsername *string `json:"displayUsername"`
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("erreur lors du hachage du mot de passe : %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	user.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO users (user_id, email, display_username, password_hash, refresh_token, refresh_token_expiry_time, created_at)
		VALUES (:user_id, :email, :display_username, :password_hash, :refresh_token, :refresh_token_expiry_time, :created_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if ce := asConstraintError(err); ce != nil {
			return ce
		}
		return fmt.Errorf("erreur lors de la création de l'utilisateur : %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("utilisateur %s : %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("erreur lors de la récupération de l'utilisateur : %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("utilisateur avec l'email %s : %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("erreur lors de la récupération de l'utilisateur par email : %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

func (r *userRepository) UpdateDisplayUsername(ctx context.Context, userID string, displayUsername *string) error {
	query := `UPDATE users SET display_username = $1 WHERE user_id = $2`

	result, err := r.db.ExecContext(ctx, query, displayUsername, userID)
	if err != nil {
		return fmt.Errorf("erreur lors de la mise à jour de l'utilisateur : %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erreur lors de la vérification des lignes modifiées : %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("utilisateur %s : %w", userID, ErrNotFound)
	}

	return nil
}

// DeleteUser removes the account; aliases and authored content go with it by cascade.
func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("erreur lors de la suppression de l'utilisateur : %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erreur lors de la vérification des lignes supprimées : %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("utilisateur %s : %w", userID, ErrNotFound)
	}

	return nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("erreur lors de la mise à jour du refresh token : %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	var user models.User

	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE refresh_token = $1
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
	`

	err := r.db.GetContext(ctx, &user, query, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("refresh token invalide ou expiré : %w", ErrNotFound)
		}
		return nil, fmt.Errorf("erreur lors de la récupération de l'utilisateur par refresh token : %w", err)
	}

	return &user, nil
}

func (r *userRepository) ListUserIDsWithoutPrimaryAlias(ctx context.Context) ([]string, error) {
	query := `
		SELECT u.user_id FROM users u
		WHERE NOT EXISTS (
			SELECT 1 FROM aliases a WHERE a.user_id = u.user_id AND a.is_primary
		)
		ORDER BY u.created_at
	`

	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des comptes sans alias : %w", err)
	}

	return ids, nil
}
