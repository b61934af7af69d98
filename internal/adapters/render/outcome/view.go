package outcome

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/mfimport/internal/application"
	"github.com/bnema/mfimport/internal/domain"
)

const AbortedNotice = "import aborted: remaining lines were not processed"

// Line renders a single outcome the moment it is reported.
func Line(outcome domain.ImportOutcome) string {
	return renderOutcome(outcome, newStyles())
}

func renderOutcome(outcome domain.ImportOutcome, s styles) string {
	prefix := s.header.Render(fmt.Sprintf("%4d", outcome.Line))

	switch outcome.Kind {
	case domain.OutcomeSuccess:
		return lipgloss.JoinHorizontal(lipgloss.Top,
			prefix, " ",
			s.success.Render("added"), " ",
			s.detail.Render(outcome.Filename), " ",
			s.link.Render(outcome.Link),
		)
	case domain.OutcomeAlreadyOwned:
		return lipgloss.JoinHorizontal(lipgloss.Top,
			prefix, " ",
			s.owned.Render("already owned"), " ",
			s.detail.Render(outcome.Filename),
		)
	case domain.OutcomeNotFound:
		return lipgloss.JoinHorizontal(lipgloss.Top,
			prefix, " ",
			s.notFound.Render("not found"), " ",
			s.detail.Render(outcome.Identifier),
			messageSuffix(outcome.Message, s),
		)
	case domain.OutcomeFailed:
		return lipgloss.JoinHorizontal(lipgloss.Top,
			prefix, " ",
			s.failed.Render("failed"), " ",
			s.detail.Render(outcome.Identifier),
			messageSuffix(outcome.Message, s),
		)
	default:
		return lipgloss.JoinHorizontal(lipgloss.Top,
			prefix, " ",
			s.fatal.Render("error"), " ",
			s.detail.Render(outcome.Identifier),
			messageSuffix(outcome.Message, s),
		)
	}
}

func messageSuffix(message string, s styles) string {
	if message == "" {
		return ""
	}
	return s.empty.Render(": " + message)
}

func renderReport(report domain.ImportReport, s styles) string {
	processed := len(report.Outcomes)
	added := report.Count(domain.OutcomeSuccess)

	lines := []string{
		s.title.Render("Import summary"),
		s.header.Render(fmt.Sprintf("run: %s", report.ID)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderProgressBar(added, processed, 24, s), " ",
			s.detail.Render(fmt.Sprintf("%d/%d added", added, processed)),
		),
		s.detail.Render(fmt.Sprintf("already owned: %d  not found: %d  failed: %d  errors: %d  skipped: %d",
			report.Count(domain.OutcomeAlreadyOwned),
			report.Count(domain.OutcomeNotFound),
			report.Count(domain.OutcomeFailed),
			report.Count(domain.OutcomeFatal),
			report.Skipped,
		)),
	}
	if !report.StartedAt.IsZero() && !report.FinishedAt.IsZero() {
		lines = append(lines, s.header.Render(fmt.Sprintf("took %s", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))))
	}
	if report.Aborted {
		lines = append(lines, s.aborted.Render(AbortedNotice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHistory(summaries []application.ReportSummary, s styles) string {
	lines := []string{
		s.title.Render("Import history"),
		s.header.Render(fmt.Sprintf("runs: %d", len(summaries))),
	}

	if len(summaries) == 0 {
		lines = append(lines, s.empty.Render("No imports recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, summary := range summaries {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			s.detail.Render(summary.StartedAt.Local().Format("2006-01-02 15:04")), " ",
			s.header.Render(string(summary.ID)), " ",
			renderProgressBar(summary.Succeeded, summary.Lines, 12, s), " ",
			s.detail.Render(fmt.Sprintf("%d added, %d owned, %d not found, %d failed, %d errors",
				summary.Succeeded, summary.AlreadyOwned, summary.NotFound, summary.Failed, summary.Fatal)),
		)
		if summary.Aborted {
			row += " " + s.aborted.Render("[aborted]")
		}
		lines = append(lines, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderFileInfo(info domain.FileInfo, link string, s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render(info.Filename),
		s.detail.Render("quick key: "+info.QuickKey),
		s.detail.Render("size:      "+formatSize(info.Size)),
		s.detail.Render("sha256:    "+info.Hash),
		s.detail.Render("privacy:   "+valueOr(info.Privacy, "unknown")),
		s.link.Render(link),
	)
}

func renderProgressBar(done, total, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := 0
	if total > 0 {
		filled = int(math.Round(float64(width) * float64(done) / float64(total)))
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func formatSize(size uint64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := uint64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
