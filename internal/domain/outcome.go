package domain

import "time"

type OutcomeKind string

const (
	OutcomeSuccess      OutcomeKind = "success"
	OutcomeAlreadyOwned OutcomeKind = "already_owned"
	OutcomeNotFound     OutcomeKind = "not_found"
	OutcomeFailed       OutcomeKind = "failed"
	OutcomeFatal        OutcomeKind = "fatal"
)

// Aborts reports whether the pipeline stops after an outcome of this kind.
func (k OutcomeKind) Aborts() bool {
	return k == OutcomeFatal
}

func (k OutcomeKind) IsError() bool {
	switch k {
	case OutcomeNotFound, OutcomeFailed, OutcomeFatal:
		return true
	default:
		return false
	}
}

type ImportOutcome struct {
	Kind       OutcomeKind
	Line       int
	Identifier string
	Filename   string
	Message    string
	Link       string
}

type ReportID string

type ImportReport struct {
	ID          ReportID
	StartedAt   time.Time
	FinishedAt  time.Time
	MarkPrivate bool
	Skipped     int
	Aborted     bool
	Outcomes    []ImportOutcome
}

func (r ImportReport) Count(kind OutcomeKind) int {
	count := 0
	for _, outcome := range r.Outcomes {
		if outcome.Kind == kind {
			count++
		}
	}
	return count
}
