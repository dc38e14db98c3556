// Package review holds the idea status workflow. The transition table lives
// in one place so the policy can change without touching handlers.
package review

import "github.com/mindnest/backend/internal/models"

// Transitions maps each status to the statuses an admin may move it to.
// funded and rejected are terminal under the current policy.
var Transitions = map[string][]string{
	models.StatusUnderReview:  {models.StatusUnderFunding, models.StatusFunded, models.StatusRejected},
	models.StatusUnderFunding: {models.StatusFunded, models.StatusRejected},
	models.StatusFunded:       {},
	models.StatusRejected:     {},
}

// Valid reports whether s is a known status value.
func Valid(s string) bool {
	_, ok := Transitions[s]
	return ok
}

// Allowed reports whether moving from one status to another is legal.
// A same-status transition is allowed and treated as a no-op by callers.
func Allowed(from, to string) bool {
	if !Valid(from) || !Valid(to) {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
