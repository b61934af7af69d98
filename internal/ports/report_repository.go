package ports

import (
	"context"

	"github.com/bnema/mfimport/internal/domain"
)

type ReportRepository interface {
	GetByID(ctx context.Context, id domain.ReportID) (domain.ImportReport, error)
	List(ctx context.Context) ([]domain.ImportReport, error)
	Save(ctx context.Context, report domain.ImportReport) error
}
