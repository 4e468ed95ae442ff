package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/avicente/recipebook-be/internal/apperrors"
	"github.com/avicente/recipebook-be/internal/services"
	"github.com/avicente/recipebook-be/internal/session"
)

// AuthHandler handles signup, login, logout, and session checks.
type AuthHandler struct {
	users    services.UserServiceProvider
	sessions *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// SignupPayload defines the structure for signup requests.
type SignupPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
	ImageURL string `json:"imageUrl"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	ImageURL string `json:"imageUrl"`
}

// Signup handles new user registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.users.Create(payload.Username, payload.Password, payload.Bio, payload.ImageURL)
	if err != nil {
		switch {
		case apperrors.IsValidation(err):
			respondMessage(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, apperrors.ErrUsernameTaken):
			respondMessage(w, http.StatusConflict, "Username is already taken")
		default:
			log.Error().Err(err).Str("username", payload.Username).Msg("Failed to create user")
			respondMessage(w, http.StatusInternalServerError, "Failed to create user")
		}
		return
	}

	respondMessage(w, http.StatusCreated, "User created successfully")
}

// Login verifies credentials and establishes a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payload.Username == "" || payload.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.Authenticate(payload.Username, payload.Password)
	if err != nil {
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		respondMessage(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := h.sessions.Issue(r.Context(), w, user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to establish session")
		respondMessage(w, http.StatusInternalServerError, "Failed to establish session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message":  "Login successful",
		"username": user.Username,
	})
}

// CheckSession returns the authenticated user bound to the current session.
func (h *AuthHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.CurrentUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// The session may outlive the user record; treat that as unauthenticated.
	user, err := h.users.GetByID(userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to load session user")
		}
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respondJSON(w, http.StatusOK, sessionUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Bio:      user.Bio,
		ImageURL: user.ImageURL,
	})
}

// Logout destroys the current session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			respondMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		log.Error().Err(err).Msg("Failed to destroy session")
		respondMessage(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	respondMessage(w, http.StatusOK, "Logged out successfully")
}
