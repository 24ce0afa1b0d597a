// Package period works with calendar year+month labels like
// "January 2025", the granularity used by monthly summaries, budget
// checks, and recurring reconciliation.
package period

import "time"

// Layout is the label format for a period.
const Layout = "January 2006"

// All is the sentinel label that matches every period.
const All = "All"

// Of returns the label for a timestamp. The zero time (a null date) has
// no period and yields "".
func Of(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(Layout)
}

// Parse converts a label back to the first instant of its month.
func Parse(label string) (time.Time, bool) {
	ts, err := time.Parse(Layout, label)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Matches reports whether a timestamp falls in the labeled period. The
// empty label and All pass everything through; null dates match only
// pass-through labels.
func Matches(label string, ts time.Time) bool {
	if label == "" || label == All {
		return true
	}
	return Of(ts) == label
}
