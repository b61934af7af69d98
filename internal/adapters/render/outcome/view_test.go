package outcome

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mfimport/internal/application"
	"github.com/bnema/mfimport/internal/domain"
)

func TestLineRendersEveryKind(t *testing.T) {
	tests := []struct {
		name     string
		outcome  domain.ImportOutcome
		contains []string
	}{
		{
			name:     "success",
			outcome:  domain.ImportOutcome{Kind: domain.OutcomeSuccess, Line: 1, Identifier: "key1", Filename: "one.png", Link: "https://www.mediafire.com/file/key1/"},
			contains: []string{"1", "added", "one.png", "https://www.mediafire.com/file/key1/"},
		},
		{
			name:     "already owned",
			outcome:  domain.ImportOutcome{Kind: domain.OutcomeAlreadyOwned, Line: 2, Identifier: "two.png", Filename: "two.png"},
			contains: []string{"already owned", "two.png"},
		},
		{
			name:     "not found",
			outcome:  domain.ImportOutcome{Kind: domain.OutcomeNotFound, Line: 3, Identifier: "three.png", Message: "Unknown hash"},
			contains: []string{"not found", "three.png", "Unknown hash"},
		},
		{
			name:     "failed",
			outcome:  domain.ImportOutcome{Kind: domain.OutcomeFailed, Line: 4, Identifier: "slow.bin", Message: "request timed out"},
			contains: []string{"failed", "slow.bin", "request timed out"},
		},
		{
			name:     "fatal",
			outcome:  domain.ImportOutcome{Kind: domain.OutcomeFatal, Line: 5, Identifier: "abc123", Message: "Unknown or invalid QuickKey"},
			contains: []string{"error", "abc123", "Unknown or invalid QuickKey"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := Line(tt.outcome)
			for _, fragment := range tt.contains {
				assert.Contains(t, line, fragment)
			}
		})
	}
}

func TestReportShowsCountsAndAbortNotice(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	output, err := Report(domain.ImportReport{
		ID:         "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
		Skipped:    2,
		Aborted:    true,
		Outcomes: []domain.ImportOutcome{
			{Kind: domain.OutcomeSuccess},
			{Kind: domain.OutcomeNotFound},
			{Kind: domain.OutcomeFatal},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, output, "run: run-1")
	assert.Contains(t, output, "1/3 added")
	assert.Contains(t, output, "not found: 1")
	assert.Contains(t, output, "errors: 1")
	assert.Contains(t, output, "skipped: 2")
	assert.Contains(t, output, "took 1.5s")
	assert.Contains(t, output, AbortedNotice)
}

func TestReportWithoutAbort(t *testing.T) {
	output, err := Report(domain.ImportReport{ID: "run-2", Outcomes: []domain.ImportOutcome{{Kind: domain.OutcomeSuccess}}})
	require.NoError(t, err)
	assert.Contains(t, output, "1/1 added")
	assert.Contains(t, output, "[========================]")
	assert.NotContains(t, output, "aborted")
}

func TestHistory(t *testing.T) {
	output, err := History(nil)
	require.NoError(t, err)
	assert.Contains(t, output, "runs: 0")
	assert.Contains(t, output, "No imports recorded.")

	output, err = History([]application.ReportSummary{
		{ID: "run-1", StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), Lines: 4, Succeeded: 2, AlreadyOwned: 1, NotFound: 1, Aborted: true},
	})
	require.NoError(t, err)
	assert.Contains(t, output, "runs: 1")
	assert.Contains(t, output, "run-1")
	assert.Contains(t, output, "2 added, 1 owned, 1 not found, 0 failed, 0 errors")
	assert.Contains(t, output, "[aborted]")
}

func TestFileInfo(t *testing.T) {
	output, err := FileInfo(domain.FileInfo{QuickKey: "abc123", Filename: "movie.mkv", Size: 5 * 1024 * 1024, Hash: "ff"}, "https://www.mediafire.com/file/abc123/")
	require.NoError(t, err)
	assert.Contains(t, output, "movie.mkv")
	assert.Contains(t, output, "5.0 MiB")
	assert.Contains(t, output, "privacy:   unknown")
	assert.Contains(t, output, "https://www.mediafire.com/file/abc123/")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.0 KiB", formatSize(1024))
	assert.Equal(t, "1.5 GiB", formatSize(3*512*1024*1024))
}
