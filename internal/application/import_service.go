package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bnema/mfimport/internal/domain"
	"github.com/bnema/mfimport/internal/ports"
)

var ErrInvalidFileReference = errors.New("not a quick key or share link")

var quickKeyPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// OutcomeSink receives each outcome as soon as its line settles.
type OutcomeSink func(domain.ImportOutcome)

type ImportService struct {
	api        ports.FileAPI
	reports    ports.ReportRepository
	classifier *domain.LineClassifier
	host       string
	clock      ports.Clock
	logger     *zap.Logger
}

// NewImportService wires the pipeline. reports may be nil, in which case runs
// are not recorded.
func NewImportService(api ports.FileAPI, reports ports.ReportRepository, host string, clock ports.Clock, logger *zap.Logger) (*ImportService, error) {
	classifier, err := domain.NewLineClassifier(host)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ImportService{
		api:        api,
		reports:    reports,
		classifier: classifier,
		host:       host,
		clock:      clock,
		logger:     logger,
	}, nil
}

// Run processes cmd.Lines strictly in order. A fatal outcome stops the run and
// marks the report aborted. Cancelling ctx stops the run between lines and
// returns ctx.Err() with the partial, unsaved report.
func (s *ImportService) Run(ctx context.Context, cmd ImportCommand, sink OutcomeSink) (domain.ImportReport, error) {
	report := domain.ImportReport{
		ID:          domain.ReportID(uuid.NewString()),
		StartedAt:   s.clock.Now(),
		MarkPrivate: cmd.MarkPrivate,
	}
	emit := func(outcome domain.ImportOutcome) {
		report.Outcomes = append(report.Outcomes, outcome)
		s.logOutcome(outcome)
		if sink != nil {
			sink(outcome)
		}
	}

	for i, raw := range cmd.Lines {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = s.clock.Now()
			return report, err
		}

		number := i + 1
		text := strings.TrimSpace(raw)
		if text == "" {
			s.logger.Debug("skipping empty line", zap.Int("line", number))
			continue
		}

		line, err := s.classifier.Classify(number, text)
		if err != nil {
			s.logger.Debug("skipping unrecognized line", zap.Int("line", number), zap.Error(err))
			report.Skipped++
			continue
		}

		abort, err := s.importLine(ctx, line, cmd.MarkPrivate, emit)
		if err != nil {
			s.logger.Info("import interrupted", zap.Int("line", number), zap.Error(err))
			report.FinishedAt = s.clock.Now()
			return report, err
		}
		if abort {
			report.Aborted = true
			s.logger.Warn("import aborted", zap.Int("line", number), zap.Int("remaining", len(cmd.Lines)-number))
			break
		}
	}

	report.FinishedAt = s.clock.Now()
	if s.reports != nil {
		if err := s.reports.Save(ctx, report); err != nil {
			return report, fmt.Errorf("save import report: %w", err)
		}
	}
	return report, nil
}

// importLine runs one classified line and reports whether the run must stop.
// A non-nil error means ctx ended while the line was in flight; no outcome is
// emitted for a claim that never completed.
func (s *ImportService) importLine(ctx context.Context, line domain.ImportLine, markPrivate bool, emit OutcomeSink) (bool, error) {
	filename, size, hash := line.Filename, line.Size, line.SHA256

	if line.Kind == domain.LineShareLink {
		info, err := s.api.GetFileInfo(ctx, line.QuickKey)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return false, ctxErr
			}
			emit(domain.ImportOutcome{
				Kind:       domain.OutcomeFatal,
				Line:       line.Number,
				Identifier: line.QuickKey,
				Message:    ports.ErrorMessage(err),
			})
			return true, nil
		}
		filename, size, hash = info.Filename, info.Size, info.Hash
	}

	newKey, err := s.api.InstantUpload(ctx, filename, size, hash)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		kind := domain.OutcomeFatal
		switch {
		case line.Kind == domain.LineHashTriple && errors.Is(err, ports.ErrHashNotFound):
			kind = domain.OutcomeNotFound
		case errors.Is(err, ports.ErrRequestTimeout):
			kind = domain.OutcomeFailed
		}

		outcome := domain.ImportOutcome{
			Kind:       kind,
			Line:       line.Number,
			Identifier: line.Identifier(),
			Filename:   filename,
			Message:    ports.ErrorMessage(err),
		}
		emit(outcome)
		return kind.Aborts(), nil
	}

	if newKey == "" {
		emit(domain.ImportOutcome{
			Kind:       domain.OutcomeAlreadyOwned,
			Line:       line.Number,
			Identifier: filename,
			Filename:   filename,
		})
		return false, nil
	}

	abort := false
	var interrupted error
	if markPrivate {
		if err := s.api.SetPrivate(ctx, newKey); err != nil {
			if interrupted = ctx.Err(); interrupted == nil {
				emit(domain.ImportOutcome{
					Kind:       domain.OutcomeFatal,
					Line:       line.Number,
					Identifier: newKey,
					Filename:   filename,
					Message:    ports.ErrorMessage(err),
				})
				abort = true
			}
		}
	}

	// The claim went through even when the privacy update did not.
	emit(domain.ImportOutcome{
		Kind:       domain.OutcomeSuccess,
		Line:       line.Number,
		Identifier: newKey,
		Filename:   filename,
		Link:       s.FileLink(newKey),
	})
	return abort, interrupted
}

// FileLink is the public page of a quick key.
func (s *ImportService) FileLink(quickKey string) string {
	return fmt.Sprintf("https://%s/file/%s/", s.host, quickKey)
}

// Resolve looks up a file by bare quick key or share link.
func (s *ImportService) Resolve(ctx context.Context, ref string) (domain.FileInfo, error) {
	ref = strings.TrimSpace(ref)
	quickKey := ""
	if line, err := s.classifier.Classify(0, ref); err == nil && line.Kind == domain.LineShareLink {
		quickKey = line.QuickKey
	} else if quickKeyPattern.MatchString(ref) {
		quickKey = ref
	}
	if quickKey == "" {
		return domain.FileInfo{}, fmt.Errorf("%w: %q", ErrInvalidFileReference, ref)
	}

	info, err := s.api.GetFileInfo(ctx, quickKey)
	if err != nil {
		return domain.FileInfo{}, fmt.Errorf("resolve %s: %w", quickKey, err)
	}
	return info, nil
}

func (s *ImportService) logOutcome(outcome domain.ImportOutcome) {
	fields := []zap.Field{
		zap.Int("line", outcome.Line),
		zap.String("kind", string(outcome.Kind)),
		zap.String("quickkey", outcome.Identifier),
		zap.String("filename", outcome.Filename),
	}
	if outcome.Kind.IsError() {
		s.logger.Info("line failed", append(fields, zap.String("error", outcome.Message))...)
		return
	}
	s.logger.Info("line imported", fields...)
}
