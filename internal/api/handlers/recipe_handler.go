package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/avicente/recipebook-be/internal/apperrors"
	"github.com/avicente/recipebook-be/internal/services"
	"github.com/avicente/recipebook-be/internal/session"
)

// RecipeHandler handles HTTP requests for the authenticated user's recipes.
type RecipeHandler struct {
	recipes services.RecipeServiceProvider
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipes services.RecipeServiceProvider) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// RecipePayload defines the structure for recipe creation requests. Pointers
// distinguish absent fields from zero values.
type RecipePayload struct {
	Title             *string `json:"title"`
	Instructions      *string `json:"instructions"`
	MinutesToComplete *int    `json:"minutesToComplete"`
}

type recipeResponse struct {
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete int    `json:"minutesToComplete"`
}

// Index lists the recipes owned by the authenticated user.
func (h *RecipeHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.CurrentUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recipes, err := h.recipes.ListByOwner(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list recipes")
		respondMessage(w, http.StatusInternalServerError, "Failed to list recipes")
		return
	}

	response := make([]recipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response = append(response, recipeResponse{
			Title:             recipe.Title,
			Instructions:      recipe.Instructions,
			MinutesToComplete: recipe.MinutesToComplete,
		})
	}
	respondJSON(w, http.StatusOK, response)
}

// Create adds a new recipe owned by the authenticated user.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.CurrentUserID(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload RecipePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payload.Title == nil || payload.Instructions == nil || payload.MinutesToComplete == nil {
		respondMessage(w, http.StatusUnprocessableEntity, "Title, instructions and minutesToComplete are required")
		return
	}

	recipe, err := h.recipes.Create(userID, *payload.Title, *payload.Instructions, *payload.MinutesToComplete)
	if err != nil {
		if apperrors.IsValidation(err) {
			respondMessage(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create recipe")
		respondMessage(w, http.StatusInternalServerError, "Failed to create recipe")
		return
	}

	respondJSON(w, http.StatusCreated, recipeResponse{
		Title:             recipe.Title,
		Instructions:      recipe.Instructions,
		MinutesToComplete: recipe.MinutesToComplete,
	})
}
