package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/scorebot/internal/command"
	"github.com/fortuna/scorebot/internal/schedule"
	"github.com/fortuna/scorebot/internal/teams"
)

const (
	// NoGameInfo is said when the game row or its score is missing.
	NoGameInfo = "Could not find information about that game at this time"
	// NoSeasonInfo is said when no row carries a usable standing.
	NoSeasonInfo = "Could not find information about that season at this time"
)

// Clock supplies the current instant. Dates are taken in UTC.
type Clock func() time.Time

// GameService answers result and record questions from a team's season log.
type GameService struct {
	source schedule.Source
	teams  *teams.Directory
	now    Clock
}

// NewGameService creates a new game lookup service
func NewGameService(source schedule.Source, dir *teams.Directory, now Clock) *GameService {
	if now == nil {
		now = time.Now
	}
	return &GameService{
		source: source,
		teams:  dir,
		now:    now,
	}
}

// Answer resolves an intent into a response sentence. Fetch failures are
// returned to the caller; missing rows or scores produce the no-info sentence.
func (s *GameService) Answer(ctx context.Context, intent command.Intent) (string, error) {
	today := s.today()

	switch intent.Kind {
	case command.ResultToday:
		return s.GameResult(ctx, intent, today, "today")
	case command.ResultYesterday:
		return s.GameResult(ctx, intent, today.AddDate(0, 0, -1), "yesterday")
	case command.ResultOnWeekday:
		target := MostRecentWeekday(intent.Weekday, today)
		return s.GameResult(ctx, intent, target, "on "+intent.Weekday.String())
	case command.RecordQuery:
		return s.SeasonRecord(ctx, intent, today.Year())
	default:
		return "", fmt.Errorf("unsupported intent kind: %s", intent.Kind)
	}
}

// GameResult finds the first game on date and phrases its result.
// A tie falls through to the "lost to" phrasing: only runs scored strictly
// greater than runs allowed count as a win.
func (s *GameService) GameResult(ctx context.Context, intent command.Intent, date time.Time, when string) (string, error) {
	table, err := s.source.Fetch(ctx, date.Year(), intent.Abbrev)
	if err != nil {
		return "", fmt.Errorf("fetching %s %d schedule: %w", intent.Abbrev, date.Year(), err)
	}

	idx := table.FirstOn(date)
	if idx == -1 {
		return NoGameInfo, nil
	}

	row := table.Rows[idx]
	if !row.HasScore() {
		return NoGameInfo, nil
	}

	opponent := s.opponentName(row.Opponent)
	runs, runsAgainst := row.RunsScored.Int32, row.RunsAllowed.Int32

	if runs > runsAgainst {
		return fmt.Sprintf("The %s beat the %s %s, %d to %d", intent.Team, opponent, when, runs, runsAgainst), nil
	}
	return fmt.Sprintf("The %s lost to the %s %s, %d to %d", intent.Team, opponent, when, runs, runsAgainst), nil
}

// SeasonRecord reports the latest recorded standing for the season.
func (s *GameService) SeasonRecord(ctx context.Context, intent command.Intent, year int) (string, error) {
	table, err := s.source.Fetch(ctx, year, intent.Abbrev)
	if err != nil {
		return "", fmt.Errorf("fetching %s %d schedule: %w", intent.Abbrev, year, err)
	}

	standing, ok := table.LatestStanding()
	if !ok {
		return NoSeasonInfo, nil
	}

	return fmt.Sprintf("The %s's record this season is %d wins and %d losses",
		intent.Team, standing.Wins, standing.Losses), nil
}

// opponentName maps an abbreviation back to its club name. Abbreviations the
// directory does not know are spoken as-is.
func (s *GameService) opponentName(abbr string) string {
	if team, ok := s.teams.ByAbbreviation(abbr); ok {
		return team.Name
	}
	log.Printf("[game-service] unknown opponent abbreviation %q", abbr)
	return abbr
}

func (s *GameService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// MostRecentWeekday returns the latest date on or before ref that falls on wd.
// When ref itself is wd, ref is returned.
func MostRecentWeekday(wd time.Weekday, ref time.Time) time.Time {
	back := (int(ref.Weekday()) - int(wd) + 7) % 7
	return ref.AddDate(0, 0, -back)
}
