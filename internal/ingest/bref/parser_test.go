package bref

import (
	"strings"
	"testing"
	"time"
)

const schedulePage = `<html><body>
<table id="team_schedule">
<thead><tr><th data-stat="team_game">Gm#</th><th data-stat="date_game">Date</th></tr></thead>
<tbody>
<tr>
  <th data-stat="team_game">1</th>
  <td data-stat="date_game">Thursday, Mar 28</td>
  <td data-stat="team_ID">BOS</td>
  <td data-stat="homeORvis">@</td>
  <td data-stat="opp_ID">SEA</td>
  <td data-stat="win_loss_result">W</td>
  <td data-stat="R">6</td>
  <td data-stat="RA">4</td>
  <td data-stat="win_loss_record">1-0</td>
</tr>
<tr class="thead"><th data-stat="team_game">Gm#</th><td data-stat="date_game">Date</td></tr>
<tr>
  <th data-stat="team_game">2</th>
  <td data-stat="date_game">Saturday, Mar 30 (1)</td>
  <td data-stat="team_ID">BOS</td>
  <td data-stat="homeORvis"></td>
  <td data-stat="opp_ID">NYY</td>
  <td data-stat="win_loss_result">L</td>
  <td data-stat="R">2</td>
  <td data-stat="RA">3</td>
  <td data-stat="win_loss_record">1-1</td>
</tr>
<tr>
  <th data-stat="team_game">3</th>
  <td data-stat="date_game">Saturday, Mar 30 (2)</td>
  <td data-stat="team_ID">BOS</td>
  <td data-stat="homeORvis"></td>
  <td data-stat="opp_ID">NYY</td>
  <td data-stat="win_loss_result"></td>
  <td data-stat="R"></td>
  <td data-stat="RA"></td>
  <td data-stat="win_loss_record"></td>
</tr>
</tbody>
</table>
</body></html>`

func TestParseSchedule(t *testing.T) {
	doc, err := ParseHTML(schedulePage)
	if err != nil {
		t.Fatalf("ParseHTML() error: %v", err)
	}
	if !HasScheduleTable(doc) {
		t.Fatal("HasScheduleTable() = false")
	}

	table := ParseSchedule(doc, "BOS", 2024)
	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(table.Rows))
	}

	first := table.Rows[0]
	if !first.Date.Equal(time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first date = %v", first.Date)
	}
	if first.Opponent != "SEA" || first.HomeAway != "@" || first.Result != "W" {
		t.Errorf("first row = %+v", first)
	}
	if first.RunsScored.Int32 != 6 || first.RunsAllowed.Int32 != 4 || !first.HasScore() {
		t.Errorf("first runs = %v / %v", first.RunsScored, first.RunsAllowed)
	}
	if first.Standing != "1-0" {
		t.Errorf("first standing = %q", first.Standing)
	}

	if table.Rows[1].GameNumber != 1 || table.Rows[2].GameNumber != 2 {
		t.Errorf("doubleheader game numbers = %d, %d", table.Rows[1].GameNumber, table.Rows[2].GameNumber)
	}

	unplayed := table.Rows[2]
	if unplayed.HasScore() || unplayed.RunsScored.Valid {
		t.Errorf("unplayed game has runs: %+v", unplayed)
	}
	if unplayed.Standing != "" {
		t.Errorf("unplayed standing = %q, want empty", unplayed.Standing)
	}

	st, ok := table.LatestStanding()
	if !ok || st.Wins != 1 || st.Losses != 1 {
		t.Errorf("LatestStanding() = %+v, %v", st, ok)
	}
}

func TestParseScheduleSkipsUnreadableDates(t *testing.T) {
	page := strings.Replace(schedulePage, "Thursday, Mar 28", "Thursday, Mar 28 (susp)", 1)
	doc, err := ParseHTML(page)
	if err != nil {
		t.Fatalf("ParseHTML() error: %v", err)
	}

	table := ParseSchedule(doc, "BOS", 2024)
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	for _, row := range table.Rows {
		if row.Opponent != "NYY" {
			t.Errorf("kept row %+v, want only the NYY games", row)
		}
	}
	if !table.Rows[0].Date.Equal(time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first kept date = %v, want Mar 30", table.Rows[0].Date)
	}
}

func TestParseGameDate(t *testing.T) {
	tests := []struct {
		in       string
		want     time.Time
		wantGame int
		wantErr  bool
	}{
		{"Monday, Apr 1", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 0, false},
		{"Sunday,  Sep 29 (2)", time.Date(2024, 9, 29, 0, 0, 0, 0, time.UTC), 2, false},
		{"Date", time.Time{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, game, err := parseGameDate(tt.in, 2024)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseGameDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !got.Equal(tt.want) || game != tt.wantGame {
				t.Errorf("parseGameDate(%q) = %v, %d, want %v, %d", tt.in, got, game, tt.want, tt.wantGame)
			}
		})
	}
}

func TestParseRuns(t *testing.T) {
	if got := parseRuns("12"); !got.Valid || got.Int32 != 12 {
		t.Errorf("parseRuns(12) = %v", got)
	}
	for _, in := range []string{"", "-", "NaN"} {
		if got := parseRuns(in); got.Valid {
			t.Errorf("parseRuns(%q) = %v, want null", in, got)
		}
	}
}
