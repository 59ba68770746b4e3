package period

import "time"

// Period tokens accepted by the history endpoint.
const (
	TokenDay   = "day"
	TokenWeek  = "week"
	TokenMonth = "month"
	TokenYear  = "year"
)

// Window is a resolved history window. SampleCount sizes the synthetic
// fallback when the store holds no real samples; it does not constrain
// real data.
type Window struct {
	Start       time.Time
	SampleCount int
}

// Resolve maps a symbolic period token onto a concrete window start.
// Unrecognized tokens resolve as "day".
func Resolve(token string, now time.Time) Window {
	switch token {
	case TokenWeek:
		return Window{Start: now.AddDate(0, 0, -7), SampleCount: 7}
	case TokenMonth:
		return Window{Start: now.AddDate(0, -1, 0), SampleCount: 30}
	case TokenYear:
		return Window{Start: now.AddDate(-1, 0, 0), SampleCount: 12}
	default:
		return Window{Start: now.Add(-24 * time.Hour), SampleCount: 24}
	}
}
