package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fortuna/scorebot/internal/command"
	"github.com/fortuna/scorebot/internal/schedule"
	"github.com/fortuna/scorebot/internal/teams"
)

// fakeSource serves a fixed table and records the requests it saw.
type fakeSource struct {
	table *schedule.Table
	err   error
	calls []string
}

func (f *fakeSource) Fetch(ctx context.Context, year int, abbrev string) (*schedule.Table, error) {
	f.calls = append(f.calls, fmt.Sprintf("%s/%d", abbrev, year))
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Wednesday, July 10 2024, late evening UTC.
var fixedNow = time.Date(2024, 7, 10, 23, 30, 0, 0, time.UTC)

func newService(src schedule.Source) *GameService {
	return NewGameService(src, teams.MustDefault(), func() time.Time { return fixedNow })
}

var redSox = command.Intent{Team: "Red Sox", Abbrev: "BOS"}

func withKind(k command.Kind) command.Intent {
	i := redSox
	i.Kind = k
	return i
}

func TestAnswerResultToday(t *testing.T) {
	tests := []struct {
		name string
		row  schedule.Row
		want string
	}{
		{
			name: "win",
			row:  schedule.Row{Date: date(2024, 7, 10), Opponent: "NYY", RunsScored: schedule.Runs(5), RunsAllowed: schedule.Runs(3)},
			want: "The Red Sox beat the Yankees today, 5 to 3",
		},
		{
			name: "loss",
			row:  schedule.Row{Date: date(2024, 7, 10), Opponent: "NYY", RunsScored: schedule.Runs(3), RunsAllowed: schedule.Runs(5)},
			want: "The Red Sox lost to the Yankees today, 3 to 5",
		},
		{
			name: "tie uses loss phrasing",
			row:  schedule.Row{Date: date(2024, 7, 10), Opponent: "TOR", RunsScored: schedule.Runs(4), RunsAllowed: schedule.Runs(4)},
			want: "The Red Sox lost to the Blue Jays today, 4 to 4",
		},
		{
			name: "runs not yet recorded",
			row:  schedule.Row{Date: date(2024, 7, 10), Opponent: "NYY"},
			want: NoGameInfo,
		},
		{
			name: "runs allowed missing",
			row:  schedule.Row{Date: date(2024, 7, 10), Opponent: "NYY", RunsScored: schedule.Runs(2)},
			want: NoGameInfo,
		},
		{
			name: "no game today",
			row:  schedule.Row{Date: date(2024, 7, 9), Opponent: "NYY", RunsScored: schedule.Runs(5), RunsAllowed: schedule.Runs(3)},
			want: NoGameInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{table: &schedule.Table{Team: "BOS", Year: 2024, Rows: []schedule.Row{tt.row}}}
			got, err := newService(src).Answer(context.Background(), withKind(command.ResultToday))
			if err != nil {
				t.Fatalf("Answer() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Answer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnswerResultYesterdayUsesFirstGameOfDoubleheader(t *testing.T) {
	src := &fakeSource{table: &schedule.Table{Rows: []schedule.Row{
		{Date: date(2024, 7, 8), Opponent: "TBR", RunsScored: schedule.Runs(1), RunsAllowed: schedule.Runs(0)},
		{Date: date(2024, 7, 9), GameNumber: 1, Opponent: "TBR", RunsScored: schedule.Runs(2), RunsAllowed: schedule.Runs(7)},
		{Date: date(2024, 7, 9), GameNumber: 2, Opponent: "TBR", RunsScored: schedule.Runs(9), RunsAllowed: schedule.Runs(1)},
	}}}

	got, err := newService(src).Answer(context.Background(), withKind(command.ResultYesterday))
	if err != nil {
		t.Fatalf("Answer() error: %v", err)
	}
	want := "The Red Sox lost to the Rays yesterday, 2 to 7"
	if got != want {
		t.Errorf("Answer() = %q, want %q", got, want)
	}
}

func TestAnswerResultYesterdayCrossesYear(t *testing.T) {
	src := &fakeSource{table: &schedule.Table{}}
	svc := NewGameService(src, teams.MustDefault(), func() time.Time {
		return time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC)
	})

	if _, err := svc.Answer(context.Background(), withKind(command.ResultYesterday)); err != nil {
		t.Fatalf("Answer() error: %v", err)
	}
	if len(src.calls) != 1 || src.calls[0] != "BOS/2024" {
		t.Errorf("fetch calls = %v, want [BOS/2024]", src.calls)
	}
}

func TestAnswerResultOnWeekday(t *testing.T) {
	rows := []schedule.Row{
		{Date: date(2024, 7, 4), Opponent: "MIA", RunsScored: schedule.Runs(6), RunsAllowed: schedule.Runs(2)},
		{Date: date(2024, 7, 8), Opponent: "KCR", RunsScored: schedule.Runs(3), RunsAllowed: schedule.Runs(4)},
		{Date: date(2024, 7, 10), Opponent: "SEA", RunsScored: schedule.Runs(8), RunsAllowed: schedule.Runs(1)},
	}

	tests := []struct {
		name    string
		weekday time.Weekday
		want    string
	}{
		{"earlier this week", time.Monday, "The Red Sox lost to the Royals on Monday, 3 to 4"},
		{"today is the weekday", time.Wednesday, "The Red Sox beat the Mariners on Wednesday, 8 to 1"},
		{"later in the week resolves to last week", time.Thursday, "The Red Sox beat the Marlins on Thursday, 6 to 2"},
		{"no game that day", time.Tuesday, NoGameInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{table: &schedule.Table{Rows: rows}}
			intent := withKind(command.ResultOnWeekday)
			intent.Weekday = tt.weekday

			got, err := newService(src).Answer(context.Background(), intent)
			if err != nil {
				t.Fatalf("Answer() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Answer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMostRecentWeekday(t *testing.T) {
	wed := date(2024, 7, 10)

	tests := []struct {
		weekday time.Weekday
		want    time.Time
	}{
		{time.Wednesday, date(2024, 7, 10)},
		{time.Tuesday, date(2024, 7, 9)},
		{time.Sunday, date(2024, 7, 7)},
		{time.Thursday, date(2024, 7, 4)},
		{time.Saturday, date(2024, 7, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.weekday.String(), func(t *testing.T) {
			got := MostRecentWeekday(tt.weekday, wed)
			if !got.Equal(tt.want) {
				t.Errorf("MostRecentWeekday(%s) = %s, want %s", tt.weekday, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestAnswerSeasonRecord(t *testing.T) {
	rows := make([]schedule.Row, 10)
	for i := range rows {
		rows[i].Date = date(2024, 7, i+1)
	}
	for i := 7; i < 10; i++ {
		rows[i].Standing = "41-39"
	}

	src := &fakeSource{table: &schedule.Table{Rows: rows}}
	got, err := newService(src).Answer(context.Background(), withKind(command.RecordQuery))
	if err != nil {
		t.Fatalf("Answer() error: %v", err)
	}
	want := "The Red Sox's record this season is 41 wins and 39 losses"
	if got != want {
		t.Errorf("Answer() = %q, want %q", got, want)
	}
	if src.calls[0] != "BOS/2024" {
		t.Errorf("fetch call = %s, want BOS/2024", src.calls[0])
	}

	empty := &fakeSource{table: &schedule.Table{Rows: make([]schedule.Row, 10)}}
	got, err = newService(empty).Answer(context.Background(), withKind(command.RecordQuery))
	if err != nil {
		t.Fatalf("Answer() error: %v", err)
	}
	if got != NoSeasonInfo {
		t.Errorf("Answer() = %q, want %q", got, NoSeasonInfo)
	}
}

func TestAnswerIsIdempotent(t *testing.T) {
	src := &fakeSource{table: &schedule.Table{Rows: []schedule.Row{
		{Date: date(2024, 7, 10), Opponent: "NYY", RunsScored: schedule.Runs(5), RunsAllowed: schedule.Runs(3), Standing: "50-40"},
	}}}
	svc := newService(src)

	for _, kind := range []command.Kind{command.ResultToday, command.RecordQuery} {
		first, err := svc.Answer(context.Background(), withKind(kind))
		if err != nil {
			t.Fatalf("Answer(%s) error: %v", kind, err)
		}
		second, err := svc.Answer(context.Background(), withKind(kind))
		if err != nil {
			t.Fatalf("Answer(%s) error: %v", kind, err)
		}
		if first != second {
			t.Errorf("Answer(%s) not idempotent: %q vs %q", kind, first, second)
		}
	}
}

func TestAnswerUnknownOpponentSpokenAsAbbreviation(t *testing.T) {
	src := &fakeSource{table: &schedule.Table{Rows: []schedule.Row{
		{Date: date(2024, 7, 10), Opponent: "OAK", RunsScored: schedule.Runs(2), RunsAllowed: schedule.Runs(1)},
	}}}

	got, err := newService(src).Answer(context.Background(), withKind(command.ResultToday))
	if err != nil {
		t.Fatalf("Answer() error: %v", err)
	}
	if want := "The Red Sox beat the OAK today, 2 to 1"; got != want {
		t.Errorf("Answer() = %q, want %q", got, want)
	}
}

func TestAnswerPropagatesFetchError(t *testing.T) {
	boom := errors.New("connection refused")
	src := &fakeSource{err: boom}

	_, err := newService(src).Answer(context.Background(), withKind(command.ResultToday))
	if !errors.Is(err, boom) {
		t.Errorf("Answer() error = %v, want wrapped %v", err, boom)
	}
	if len(src.calls) != 1 {
		t.Errorf("fetch called %d times, want exactly 1", len(src.calls))
	}
}

func TestAnswerNilTableIsNoInfo(t *testing.T) {
	src := &fakeSource{}

	got, err := newService(src).Answer(context.Background(), withKind(command.ResultToday))
	if err != nil {
		t.Fatalf("Answer() error: %v", err)
	}
	if got != NoGameInfo {
		t.Errorf("Answer() = %q, want %q", got, NoGameInfo)
	}
}
