package result

import "github.com/google/uuid"

// Tally accumulates outcomes across a whole Run call. RunID lets a caller
// correlate a tally with the structured log lines the run emitted.
type Tally struct {
	RunID    uuid.UUID
	Passed   int
	Failed   int // Failed + Crashed
	Skipped  int
	Warnings int
}

// NewTally starts an empty tally tagged with a fresh run id.
func NewTally() *Tally {
	return &Tally{RunID: uuid.New()}
}

// Add folds one TestResult into the tally.
func (t *Tally) Add(r TestResult) {
	switch r.Status {
	case Success:
		t.Passed++
	case Failed, Crashed:
		t.Failed++
	case Skipped:
		t.Skipped++
	case Warning:
		t.Warnings++
	}
}

// Total is the number of results folded in so far.
func (t *Tally) Total() int {
	return t.Passed + t.Failed + t.Skipped + t.Warnings
}

// HasFailures reports whether the run should be considered failed overall.
func (t *Tally) HasFailures() bool {
	return t.Failed > 0
}
