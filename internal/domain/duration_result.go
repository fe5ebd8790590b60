package domain

import (
	"math"
	"strconv"
)

// DurationResult describes the distance between a target instant and a
// reference instant in human terms.
type DurationResult struct {
	Overdue bool `json:"overdue"`
	Unit    Unit `json:"unit"`
	// Magnitude is target minus reference, expressed in Unit.
	Magnitude float64  `json:"magnitude"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
}

// Count is the whole number shown to users for the magnitude.
func (r DurationResult) Count() int64 {
	return int64(math.Abs(math.Floor(r.Magnitude)))
}

// Quantity renders the count and unit, e.g. "3 days" or "1 minute".
func (r DurationResult) Quantity() string {
	n := r.Count()
	word := r.Unit.Plural()
	if n == 1 {
		word = r.Unit.String()
	}
	return strconv.FormatInt(n, 10) + " " + word
}
