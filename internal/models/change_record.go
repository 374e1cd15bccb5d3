package models

import "time"

// Outcome is the terminal state of one target within a run.
type Outcome string

const (
	OutcomeChanged   Outcome = "changed"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeError     Outcome = "error"
)

// ChangeRecord is one entry of the append-only change log.
type ChangeRecord struct {
	Timestamp  time.Time
	TargetName string
	Outcome    Outcome
	DiffText   string
}

// NotificationMessage exists only for the duration of a send attempt.
type NotificationMessage struct {
	TargetName string
	Body       string
}

// RunSummary aggregates per-target outcomes of one run.
type RunSummary struct {
	Total        int
	Changed      int
	Unchanged    int
	Skipped      int
	NotifyFailed int
	ChangedNames []string
}

// Record tallies a single target outcome.
func (s *RunSummary) Record(targetName string, outcome Outcome) {
	s.Total++
	switch outcome {
	case OutcomeChanged:
		s.Changed++
		s.ChangedNames = append(s.ChangedNames, targetName)
	case OutcomeUnchanged:
		s.Unchanged++
	default:
		s.Skipped++
	}
}
