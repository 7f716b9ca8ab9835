package schedule

import (
	"context"
	"database/sql"
	"regexp"
	"strconv"
	"time"
)

// Row is a single game in a team's season log. Run counts are null until the
// game has been played and the source has populated the box score.
type Row struct {
	Date        time.Time     `json:"date"`
	GameNumber  int           `json:"game_number,omitempty"`
	Opponent    string        `json:"opponent"`
	HomeAway    string        `json:"home_away,omitempty"`
	Result      string        `json:"result,omitempty"`
	RunsScored  sql.NullInt32 `json:"runs_scored"`
	RunsAllowed sql.NullInt32 `json:"runs_allowed"`
	Standing    string        `json:"standing,omitempty"`
}

// HasScore reports whether both run counts are present.
func (r Row) HasScore() bool {
	return r.RunsScored.Valid && r.RunsAllowed.Valid
}

// Table is one team's season log ordered by date ascending.
type Table struct {
	Team string `json:"team"`
	Year int    `json:"year"`
	Rows []Row  `json:"rows"`
}

// Source returns the season log for a team abbreviation and year.
type Source interface {
	Fetch(ctx context.Context, year int, teamAbbrev string) (*Table, error)
}

// SameDay compares calendar dates, ignoring time of day and location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FirstOn returns the index of the first row played on date, or -1.
func (t *Table) FirstOn(date time.Time) int {
	if t == nil {
		return -1
	}
	for i, row := range t.Rows {
		if SameDay(row.Date, date) {
			return i
		}
	}
	return -1
}

// Standing is a cumulative win/loss snapshot.
type Standing struct {
	Wins   int
	Losses int
}

var standingPattern = regexp.MustCompile(`^(\d+)-(\d+)$`)

// ParseStanding parses a "<wins>-<losses>" string.
func ParseStanding(s string) (Standing, bool) {
	m := standingPattern.FindStringSubmatch(s)
	if m == nil {
		return Standing{}, false
	}
	wins, err := strconv.Atoi(m[1])
	if err != nil {
		return Standing{}, false
	}
	losses, err := strconv.Atoi(m[2])
	if err != nil {
		return Standing{}, false
	}
	return Standing{Wins: wins, Losses: losses}, true
}

// LatestStanding scans backward for the most recent well-formed standing.
func (t *Table) LatestStanding() (Standing, bool) {
	if t == nil {
		return Standing{}, false
	}
	for i := len(t.Rows) - 1; i >= 0; i-- {
		if st, ok := ParseStanding(t.Rows[i].Standing); ok {
			return st, true
		}
	}
	return Standing{}, false
}

// Runs builds a present run count.
func Runs(n int) sql.NullInt32 {
	return sql.NullInt32{Int32: int32(n), Valid: true}
}
