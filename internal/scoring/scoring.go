// Package scoring computes the urgency rank for a task from its tag,
// priority code, and due date. Scores are never stored: the date component
// shifts daily, so ranks are recomputed on every read.
package scoring

import "time"

// tagWeights is the fixed tag vocabulary. Unknown tags weigh zero.
var tagWeights = map[string]int{
	"FGR":  3,
	"CETS": 3,
	"CS":   2,
}

const dueLayout = "020106" // DDMMYY

// Clock supplies the current date so scoring stays deterministic in tests.
type Clock interface {
	Today() time.Time
}

type SystemClock struct{}

func (SystemClock) Today() time.Time {
	return time.Now()
}

// TagValue returns the weight of a tag, zero when absent or unrecognized.
func TagValue(tag string) int {
	return tagWeights[tag]
}

// PriorityValue decodes a two-character priority code such as "U2" or "N1".
// The direction letter contributes +1 (U) or -1 (N) and the digit is added
// on top. Absent or malformed codes contribute zero.
func PriorityValue(code string) int {
	if len(code) != 2 || code[1] < '0' || code[1] > '9' {
		return 0
	}
	direction := -1
	if code[0] == 'U' {
		direction = 1
	}
	return direction + int(code[1]-'0')
}

// DueValue buckets the distance to the due date: due within three days
// (or overdue) scores 3, within fifteen days 2, further out 1. A missing
// or unparseable code contributes zero.
func DueValue(due string, today time.Time) int {
	d, err := ParseDue(due)
	if err != nil {
		return 0
	}
	delta := int(d.Sub(dateOnly(today)).Hours() / 24)
	switch {
	case delta <= 3:
		return 3
	case delta <= 15:
		return 2
	default:
		return 1
	}
}

// Score is the total urgency rank: tag weight + priority value + due value.
// Pure function of its arguments.
func Score(tag, priority, due string, today time.Time) int {
	return TagValue(tag) + PriorityValue(priority) + DueValue(due, today)
}

// ParseDue parses a compact DDMMYY due code.
func ParseDue(due string) (time.Time, error) {
	return time.Parse(dueLayout, due)
}

// FormatDue renders a due code as DD/MM/YY for display. Malformed codes
// pass through verbatim so a bad stored date never breaks a listing.
func FormatDue(due string) string {
	d, err := ParseDue(due)
	if err != nil {
		return due
	}
	return d.Format("02/01/06")
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
