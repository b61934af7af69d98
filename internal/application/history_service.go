package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/bnema/mfimport/internal/domain"
	"github.com/bnema/mfimport/internal/ports"
)

type HistoryService struct {
	reports ports.ReportRepository
}

func NewHistoryService(reports ports.ReportRepository) *HistoryService {
	return &HistoryService{reports: reports}
}

// List returns the recorded runs, newest first, at most limit when limit is
// positive.
func (s *HistoryService) List(ctx context.Context, limit int) ([]ReportSummary, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list import reports: %w", err)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].StartedAt.After(reports[j].StartedAt)
	})
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}

	summaries := make([]ReportSummary, 0, len(reports))
	for _, report := range reports {
		summaries = append(summaries, Summarize(report))
	}
	return summaries, nil
}

func (s *HistoryService) Get(ctx context.Context, id domain.ReportID) (domain.ImportReport, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return domain.ImportReport{}, fmt.Errorf("get import report: %w", err)
	}
	return report, nil
}
