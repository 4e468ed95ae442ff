package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/avicente/recipebook-be/internal/apperrors"
	"github.com/avicente/recipebook-be/internal/auth"
	"github.com/avicente/recipebook-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Create(username, password, bio, imageURL string) (models.User, error)
	GetByID(id string) (models.User, error)
	GetByUsername(username string) (models.User, error)
	Authenticate(username, password string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Create validates the input, hashes the password, and persists a new user.
// A duplicate username yields apperrors.ErrUsernameTaken; the UNIQUE
// constraint keeps that atomic under concurrent signups.
func (s *UserService) Create(username, password, bio, imageURL string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, apperrors.Validation("Username and password are required")
	}
	if bio == "" {
		return models.User{}, apperrors.Validation("Bio is required")
	}
	if imageURL == "" {
		return models.User{}, apperrors.Validation("Image URL is required")
	}

	var exists int
	err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE username = ?", username).Scan(&exists)
	if err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, apperrors.ErrUsernameTaken
	}

	secret, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:       uuid.New().String(),
		Username: username,
		Bio:      bio,
		ImageURL: imageURL,
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, username, password_hash, bio, image_url) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, secret, user.Bio, user.ImageURL)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, apperrors.ErrUsernameTaken
		}
		return models.User{}, err
	}

	return user, nil
}

// GetByID retrieves a single user by their ID.
func (s *UserService) GetByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, bio, image_url, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.Bio, &user.ImageURL, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperrors.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetByUsername retrieves a single user by their username.
func (s *UserService) GetByUsername(username string) (models.User, error) {
	user, err := s.getByUsernameWithSecret(username)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = auth.Secret{}
	return user, nil
}

// getByUsernameWithSecret also loads the password hash, for Authenticate only.
func (s *UserService) getByUsernameWithSecret(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, password_hash, bio, image_url, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Bio, &user.ImageURL, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperrors.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies a user's credentials. An unknown username and a wrong
// password both return apperrors.ErrInvalidCredentials so the two cases are
// indistinguishable to the caller.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	user, err := s.getByUsernameWithSecret(username)
	if err != nil {
		return models.User{}, apperrors.ErrInvalidCredentials
	}
	if !user.PasswordHash.Verify(password) {
		return models.User{}, apperrors.ErrInvalidCredentials
	}

	// Don't carry the hash past this point
	user.PasswordHash = auth.Secret{}
	return user, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
