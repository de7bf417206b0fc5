package progress

import "strings"

// Status is the lifecycle state of a stage. Only the three constants below are
// valid; anything else is treated as malformed input.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Label returns the human readable status text, or "" for an invalid status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return ""
	}
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus normalizes free-form input ("InProgress", "In Progress",
// "in-progress", "COMPLETED") to a Status. Unrecognized values are returned
// as-is so callers can still detect them with Valid.
func ParseStatus(value string) Status {
	folded := statusFolder.Replace(strings.ToLower(strings.TrimSpace(value)))
	for _, status := range []Status{StatusPending, StatusInProgress, StatusCompleted} {
		if folded == statusFolder.Replace(string(status)) {
			return status
		}
	}
	return Status(strings.TrimSpace(value))
}

// statusFolder drops word separators so every spelling of a status compares
// equal.
var statusFolder = strings.NewReplacer(" ", "", "-", "", "_", "")

// Glyph is the marker category shown beside a stage status.
type Glyph int

const (
	GlyphNone Glyph = iota
	GlyphHourglassOutline
	GlyphSpinnerFilled
	GlyphCheckFilled
)

// GlyphFor maps a status to its marker. Invalid statuses map to GlyphNone.
func GlyphFor(status Status) Glyph {
	switch status {
	case StatusPending:
		return GlyphHourglassOutline
	case StatusInProgress:
		return GlyphSpinnerFilled
	case StatusCompleted:
		return GlyphCheckFilled
	default:
		return GlyphNone
	}
}

// Symbol returns the terminal glyph for g.
func (g Glyph) Symbol() string {
	switch g {
	case GlyphHourglassOutline:
		return "⧖"
	case GlyphSpinnerFilled:
		return "◉"
	case GlyphCheckFilled:
		return "✔"
	default:
		return ""
	}
}

func (g Glyph) String() string {
	switch g {
	case GlyphHourglassOutline:
		return "hourglass-outline"
	case GlyphSpinnerFilled:
		return "spinner-filled"
	case GlyphCheckFilled:
		return "check-filled"
	default:
		return "none"
	}
}
