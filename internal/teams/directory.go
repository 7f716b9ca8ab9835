package teams

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmptyEntry      = errors.New("team entry has empty name or abbreviation")
	ErrDuplicateName   = errors.New("duplicate team name")
	ErrDuplicateAbbrev = errors.New("duplicate team abbreviation")
)

// Team pairs a canonical club name with its schedule-source abbreviation.
type Team struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Directory is an immutable name <-> abbreviation bijection.
// Name lookups are case-insensitive; abbreviations are matched upper-cased.
type Directory struct {
	byName   map[string]Team
	byAbbrev map[string]Team
	ordered  []Team
}

// New validates the entries and builds a Directory. Every name and every
// abbreviation must be unique, so each side maps back to exactly one team.
func New(entries []Team) (*Directory, error) {
	d := &Directory{
		byName:   make(map[string]Team, len(entries)),
		byAbbrev: make(map[string]Team, len(entries)),
		ordered:  make([]Team, 0, len(entries)),
	}

	for _, e := range entries {
		team := Team{
			Name:         strings.TrimSpace(e.Name),
			Abbreviation: strings.ToUpper(strings.TrimSpace(e.Abbreviation)),
		}
		if team.Name == "" || team.Abbreviation == "" {
			return nil, fmt.Errorf("%w: %+v", ErrEmptyEntry, e)
		}

		nameKey := strings.ToLower(team.Name)
		if _, ok := d.byName[nameKey]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, team.Name)
		}
		if _, ok := d.byAbbrev[team.Abbreviation]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAbbrev, team.Abbreviation)
		}

		d.byName[nameKey] = team
		d.byAbbrev[team.Abbreviation] = team
		d.ordered = append(d.ordered, team)
	}

	sort.Slice(d.ordered, func(i, j int) bool {
		return d.ordered[i].Abbreviation < d.ordered[j].Abbreviation
	})

	return d, nil
}

// MustDefault returns the built-in MLB directory. It panics only if the
// static table is broken, which the package tests guard against.
func MustDefault() *Directory {
	d, err := New(MLB)
	if err != nil {
		panic(fmt.Sprintf("teams: invalid built-in directory: %v", err))
	}
	return d
}

// ByName finds a team by canonical name, ignoring case and surrounding space.
func (d *Directory) ByName(name string) (Team, bool) {
	t, ok := d.byName[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// ByAbbreviation finds a team by its abbreviation (e.g. "BOS", "nyy").
func (d *Directory) ByAbbreviation(abbr string) (Team, bool) {
	t, ok := d.byAbbrev[strings.ToUpper(strings.TrimSpace(abbr))]
	return t, ok
}

// All returns every team ordered by abbreviation.
func (d *Directory) All() []Team {
	out := make([]Team, len(d.ordered))
	copy(out, d.ordered)
	return out
}

// Len returns the number of teams.
func (d *Directory) Len() int {
	return len(d.ordered)
}
