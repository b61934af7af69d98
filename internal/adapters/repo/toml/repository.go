package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/mfimport/internal/domain"
	"github.com/bnema/mfimport/internal/ports"
)

const (
	historyPathKey    = "history.path"
	historyMaxKey     = "history.max_reports"
	historyFileMode   = 0o600
	historyDirMode    = 0o700
	historyConfigDir  = ".mfimport"
	historyConfigFile = "history.toml"
	tempFilePattern   = ".history-*.toml.tmp"

	defaultMaxReports = 200
)

// ReportRepository keeps import reports in one TOML file, oldest first.
// Writes go through a temp file and a rename.
type ReportRepository struct {
	historyPath string
	maxReports  int
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ReportRepository = (*ReportRepository)(nil)

func NewReportRepository(cfg *viper.Viper) (*ReportRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(historyPathKey, filepath.Join(homeDir, historyConfigDir, historyConfigFile))
	cfg.SetDefault(historyMaxKey, defaultMaxReports)

	historyPath := cfg.GetString(historyPathKey)
	if historyPath == "" {
		return nil, errors.New("history path is empty")
	}
	historyPath, err = normalizeHistoryPath(historyPath)
	if err != nil {
		return nil, err
	}

	maxReports := cfg.GetInt(historyMaxKey)
	if maxReports <= 0 {
		maxReports = defaultMaxReports
	}

	return &ReportRepository{historyPath: historyPath, maxReports: maxReports, mu: lockForPath(historyPath)}, nil
}

func (r *ReportRepository) Path() string {
	return r.historyPath
}

// Save replaces a report with the same ID or appends it, dropping the oldest
// reports beyond the configured maximum.
func (r *ReportRepository) Save(ctx context.Context, report domain.ImportReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(report)
	updated := false
	for i := range file.Reports {
		if file.Reports[i].ID == encoded.ID {
			file.Reports[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Reports = append(file.Reports, encoded)
	}
	if excess := len(file.Reports) - r.maxReports; excess > 0 {
		file.Reports = file.Reports[excess:]
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *ReportRepository) GetByID(ctx context.Context, id domain.ReportID) (domain.ImportReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.ImportReport{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.ImportReport{}, err
	}

	for _, entry := range file.Reports {
		if entry.ID == string(id) {
			return fromSchema(entry), nil
		}
	}

	return domain.ImportReport{}, domain.ErrReportNotFound
}

func (r *ReportRepository) List(ctx context.Context) ([]domain.ImportReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	reports := make([]domain.ImportReport, 0, len(file.Reports))
	for _, entry := range file.Reports {
		reports = append(reports, fromSchema(entry))
	}

	return reports, nil
}

func (r *ReportRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.historyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read history file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode history file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeHistoryPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve history path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *ReportRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.historyPath), historyDirMode); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.historyPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}
	if err := tempFile.Chmod(historyFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp history file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}
	if err := os.Rename(tempName, r.historyPath); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	cleanup = false

	return nil
}

func toSchema(report domain.ImportReport) reportSchema {
	outcomes := make([]outcomeSchema, 0, len(report.Outcomes))
	for _, outcome := range report.Outcomes {
		outcomes = append(outcomes, outcomeSchema{
			Kind:       string(outcome.Kind),
			Line:       outcome.Line,
			Identifier: outcome.Identifier,
			Filename:   outcome.Filename,
			Message:    outcome.Message,
			Link:       outcome.Link,
		})
	}

	return reportSchema{
		ID:          string(report.ID),
		StartedAt:   formatTime(report.StartedAt),
		FinishedAt:  formatTime(report.FinishedAt),
		MarkPrivate: report.MarkPrivate,
		Skipped:     report.Skipped,
		Aborted:     report.Aborted,
		Outcomes:    outcomes,
	}
}

func fromSchema(report reportSchema) domain.ImportReport {
	var outcomes []domain.ImportOutcome
	for _, outcome := range report.Outcomes {
		outcomes = append(outcomes, domain.ImportOutcome{
			Kind:       domain.OutcomeKind(outcome.Kind),
			Line:       outcome.Line,
			Identifier: outcome.Identifier,
			Filename:   outcome.Filename,
			Message:    outcome.Message,
			Link:       outcome.Link,
		})
	}

	return domain.ImportReport{
		ID:          domain.ReportID(report.ID),
		StartedAt:   parseTime(report.StartedAt),
		FinishedAt:  parseTime(report.FinishedAt),
		MarkPrivate: report.MarkPrivate,
		Skipped:     report.Skipped,
		Aborted:     report.Aborted,
		Outcomes:    outcomes,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
