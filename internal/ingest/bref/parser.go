package bref

import (
	"database/sql"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/scorebot/internal/schedule"
)

// scheduleSelector targets data rows of the "Team Game-by-Game Schedule" table.
const scheduleSelector = "table#team_schedule tbody tr"

// "Sunday, Apr 2" or "Sunday, Apr 2 (2)" for the second game of a doubleheader
var datePattern = regexp.MustCompile(`^(.+?)(?:\s*\((\d+)\))?$`)

// ParseHTML converts raw HTML to a goquery Document for parsing
func ParseHTML(htmlContent string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// HasScheduleTable reports whether the page carries a schedule table at all.
func HasScheduleTable(doc *goquery.Document) bool {
	return doc.Find("table#team_schedule").Length() > 0
}

// ParseSchedule extracts the season log for team/year from a schedule page.
// Repeated header rows and rows without a parseable date are skipped.
func ParseSchedule(doc *goquery.Document, team string, year int) *schedule.Table {
	table := &schedule.Table{Team: team, Year: year}

	doc.Find(scheduleSelector).Each(func(i int, tr *goquery.Selection) {
		if tr.HasClass("thead") || tr.HasClass("spacer") {
			return
		}

		dateText := cell(tr, "date_game")
		if dateText == "" {
			return
		}

		date, gameNumber, err := parseGameDate(dateText, year)
		if err != nil {
			log.Printf("[bref] skipping %s %d row %d: %v", team, year, i, err)
			return
		}

		table.Rows = append(table.Rows, schedule.Row{
			Date:        date,
			GameNumber:  gameNumber,
			Opponent:    strings.ToUpper(cell(tr, "opp_ID")),
			HomeAway:    cell(tr, "homeORvis"),
			Result:      cell(tr, "win_loss_result"),
			RunsScored:  parseRuns(cell(tr, "R")),
			RunsAllowed: parseRuns(cell(tr, "RA")),
			Standing:    cell(tr, "win_loss_record"),
		})
	})

	return table
}

func cell(tr *goquery.Selection, stat string) string {
	return strings.TrimSpace(tr.Find(fmt.Sprintf(`[data-stat="%s"]`, stat)).First().Text())
}

// parseGameDate parses the schedule's date column in the given season year.
func parseGameDate(text string, year int) (time.Time, int, error) {
	text = strings.Join(strings.Fields(text), " ")
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, 0, fmt.Errorf("unrecognized date %q", text)
	}

	date, err := time.Parse("Monday, Jan 2 2006", fmt.Sprintf("%s %d", m[1], year))
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("parsing date %q: %w", text, err)
	}

	gameNumber := 0
	if m[2] != "" {
		gameNumber, _ = strconv.Atoi(m[2])
	}
	return date, gameNumber, nil
}

// parseRuns returns a null count for blank or non-numeric cells.
func parseRuns(text string) sql.NullInt32 {
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(n), Valid: true}
}
