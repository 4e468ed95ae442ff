package models

import "time"

// Recipe represents a recipe record owned by exactly one user.
type Recipe struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Instructions      string    `json:"instructions"`
	MinutesToComplete int       `json:"minutesToComplete"`
	UserID            string    `json:"userId"` // owning user, set at creation
	CreatedAt         time.Time `json:"createdAt"`
}
