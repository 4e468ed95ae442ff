package services

import (
	"database/sql"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/avicente/recipebook-be/internal/apperrors"
	"github.com/avicente/recipebook-be/internal/models"
)

const minInstructionsLength = 50

// RecipeServiceProvider defines the interface for recipe services.
type RecipeServiceProvider interface {
	ListByOwner(ownerID string) ([]models.Recipe, error)
	Create(ownerID, title, instructions string, minutesToComplete int) (models.Recipe, error)
}

// RecipeService provides business logic for recipe records.
type RecipeService struct {
	db *sql.DB
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(db *sql.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListByOwner retrieves all recipes owned by the given user, oldest first.
func (s *RecipeService) ListByOwner(ownerID string) ([]models.Recipe, error) {
	rows, err := s.db.Query(
		"SELECT id, title, instructions, minutes_to_complete, user_id, created_at FROM recipes WHERE user_id = ? ORDER BY created_at, id",
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var recipe models.Recipe
		if err := rows.Scan(&recipe.ID, &recipe.Title, &recipe.Instructions, &recipe.MinutesToComplete, &recipe.UserID, &recipe.CreatedAt); err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

// Create validates and persists a new recipe owned by ownerID.
func (s *RecipeService) Create(ownerID, title, instructions string, minutesToComplete int) (models.Recipe, error) {
	if title == "" {
		return models.Recipe{}, apperrors.Validation("Title must be provided")
	}
	if utf8.RuneCountInString(instructions) < minInstructionsLength {
		return models.Recipe{}, apperrors.Validation("Instructions must be at least 50 characters long")
	}

	recipe := models.Recipe{
		ID:                uuid.New().String(),
		Title:             title,
		Instructions:      instructions,
		MinutesToComplete: minutesToComplete,
		UserID:            ownerID,
	}

	stmt, err := s.db.Prepare("INSERT INTO recipes(id, title, instructions, minutes_to_complete, user_id) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.Recipe{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(recipe.ID, recipe.Title, recipe.Instructions, recipe.MinutesToComplete, recipe.UserID)
	if err != nil {
		return models.Recipe{}, err
	}

	return recipe, nil
}
