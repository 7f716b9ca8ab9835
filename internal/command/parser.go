package command

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fortuna/scorebot/internal/teams"
)

var (
	ErrUnrecognized = errors.New("not a sports command")
	ErrUnknownTeam  = errors.New("unknown team")
	ErrBadWeekday   = errors.New("unknown weekday")
)

type pattern struct {
	kind Kind
	re   *regexp.Regexp
}

var resultPhrases = []string{
	`did the {team} win`,
	`how did the {team} do`,
	`what was the score of the {team} game`,
}

var recordPhrases = []string{
	`what is the {team}(?:'s|')? record(?: this season)?`,
	`what's the {team}(?:'s|')? record(?: this season)?`,
	`how are the {team} doing this season`,
}

// patterns is the closed phrase table. Every entry is anchored and captures
// "team", plus "day" for weekday queries.
var patterns = buildPatterns()

func buildPatterns() []pattern {
	var out []pattern
	add := func(kind Kind, expr string) {
		expr = strings.ReplaceAll(expr, "{team}", `(?P<team>.+?)`)
		expr = strings.ReplaceAll(expr, "{day}", `(?P<day>\S+)`)
		out = append(out, pattern{kind: kind, re: regexp.MustCompile("^" + expr + "$")})
	}

	for _, phrase := range resultPhrases {
		add(ResultToday, phrase+` today`)
		add(ResultYesterday, phrase+` (?:yesterday|last night)`)
		add(ResultOnWeekday, phrase+` on {day}`)
	}
	for _, phrase := range recordPhrases {
		add(RecordQuery, phrase)
	}
	return out
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Parser turns free text into an Intent using a fixed phrase table.
type Parser struct {
	teams *teams.Directory
}

// NewParser creates a parser that resolves team names against dir.
func NewParser(dir *teams.Directory) *Parser {
	return &Parser{teams: dir}
}

// Parse matches command against the phrase table. Commands that match no
// phrase return ErrUnrecognized; a matched phrase naming an unknown team or
// weekday returns ErrUnknownTeam or ErrBadWeekday.
func (p *Parser) Parse(command string) (Intent, error) {
	text := normalize(command)
	if text == "" {
		return Intent{}, ErrUnrecognized
	}

	for _, pat := range patterns {
		m := pat.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		teamName := capture(pat.re, m, "team")
		team, ok := p.teams.ByName(teamName)
		if !ok {
			return Intent{}, fmt.Errorf("%w: %q", ErrUnknownTeam, teamName)
		}

		intent := Intent{Kind: pat.kind, Team: team.Name, Abbrev: team.Abbreviation}
		if pat.kind == ResultOnWeekday {
			dayName := capture(pat.re, m, "day")
			wd, ok := weekdays[dayName]
			if !ok {
				return Intent{}, fmt.Errorf("%w: %q", ErrBadWeekday, dayName)
			}
			intent.Weekday = wd
		}
		return intent, nil
	}

	return Intent{}, ErrUnrecognized
}

func capture(re *regexp.Regexp, m []string, name string) string {
	if i := re.SubexpIndex(name); i >= 0 {
		return m[i]
	}
	return ""
}

func normalize(command string) string {
	text := strings.ReplaceAll(command, "’", "'")
	text = strings.ToLower(strings.Join(strings.Fields(text), " "))
	return strings.TrimRight(text, "?.! ")
}
