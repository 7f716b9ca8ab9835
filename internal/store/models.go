package store

import "time"

// Team represents a club row in the teams table
type Team struct {
	TeamID       int       `json:"team_id" db:"team_id"`
	Sport        string    `json:"sport" db:"sport"`
	Abbreviation string    `json:"abbreviation" db:"abbreviation"`
	Name         string    `json:"name" db:"name"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SportMLB is the sport key stored on every team row
const SportMLB = "baseball_mlb"
