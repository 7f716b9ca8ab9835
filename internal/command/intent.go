package command

import "time"

// Kind identifies which question a command asks.
type Kind int

const (
	// ResultToday asks how the team did in today's game.
	ResultToday Kind = iota + 1
	// ResultYesterday asks about yesterday's (or last night's) game.
	ResultYesterday
	// ResultOnWeekday asks about the most recent game on a named weekday.
	ResultOnWeekday
	// RecordQuery asks for the team's current win-loss record.
	RecordQuery
)

func (k Kind) String() string {
	switch k {
	case ResultToday:
		return "result_today"
	case ResultYesterday:
		return "result_yesterday"
	case ResultOnWeekday:
		return "result_on_weekday"
	case RecordQuery:
		return "record"
	default:
		return "unknown"
	}
}

// Intent is the structured meaning of a sports command.
type Intent struct {
	Kind   Kind
	Team   string
	Abbrev string
	// Weekday is meaningful only when Kind is ResultOnWeekday. For every
	// other kind it holds the zero value, which is time.Sunday; check
	// HasWeekday before reading it.
	Weekday time.Weekday
}

// HasWeekday reports whether Weekday carries a parsed day name.
func (i Intent) HasWeekday() bool {
	return i.Kind == ResultOnWeekday
}
