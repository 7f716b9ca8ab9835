package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/scorebot/internal/store"
	"github.com/fortuna/scorebot/internal/teams"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db.DB()}
}

// GetAll returns all active teams for a sport
func (r *TeamRepository) GetAll(ctx context.Context, sport string) ([]*store.Team, error) {
	query := `
		SELECT team_id, sport, abbreviation, name, is_active, created_at, updated_at
		FROM teams
		WHERE sport = $1 AND is_active = true
		ORDER BY abbreviation
	`

	rows, err := r.db.QueryContext(ctx, query, sport)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var out []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(
			&team.TeamID, &team.Sport, &team.Abbreviation, &team.Name,
			&team.IsActive, &team.CreatedAt, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		out = append(out, team)
	}

	return out, rows.Err()
}

// LoadDirectory builds the team directory from the active rows of a sport.
func (r *TeamRepository) LoadDirectory(ctx context.Context, sport string) (*teams.Directory, error) {
	rows, err := r.GetAll(ctx, sport)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no active %s teams in database", sport)
	}

	entries := make([]teams.Team, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, teams.Team{Name: row.Name, Abbreviation: row.Abbreviation})
	}

	dir, err := teams.New(entries)
	if err != nil {
		return nil, fmt.Errorf("building team directory: %w", err)
	}
	return dir, nil
}
