package application

import (
	"time"

	"github.com/bnema/mfimport/internal/domain"
)

// ReportSummary is one row of the import history.
type ReportSummary struct {
	ID           domain.ReportID
	StartedAt    time.Time
	FinishedAt   time.Time
	Lines        int
	Succeeded    int
	AlreadyOwned int
	NotFound     int
	Failed       int
	Fatal        int
	Skipped      int
	Aborted      bool
}

func Summarize(report domain.ImportReport) ReportSummary {
	return ReportSummary{
		ID:           report.ID,
		StartedAt:    report.StartedAt,
		FinishedAt:   report.FinishedAt,
		Lines:        len(report.Outcomes),
		Succeeded:    report.Count(domain.OutcomeSuccess),
		AlreadyOwned: report.Count(domain.OutcomeAlreadyOwned),
		NotFound:     report.Count(domain.OutcomeNotFound),
		Failed:       report.Count(domain.OutcomeFailed),
		Fatal:        report.Count(domain.OutcomeFatal),
		Skipped:      report.Skipped,
		Aborted:      report.Aborted,
	}
}
