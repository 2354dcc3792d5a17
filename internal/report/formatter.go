package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/zencompta/zencompta-engine/internal/model"
)

// CLIFormatter renders compliance reports for terminal display.
type CLIFormatter struct {
	styles *Styles
}

// NewCLIFormatter creates a CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{styles: NewStyles()}
}

// FormatSummary creates a high-level summary of the compliance report.
func (f *CLIFormatter) FormatSummary(report *model.ComplianceReport) string {
	if report == nil {
		return f.styles.Error.Render("No report available")
	}

	sections := []string{
		f.formatHeader(report),
		f.formatScore(report.ComplianceScore),
		f.formatSeverityBreakdown(report),
	}

	if len(report.ValidatorErrors) > 0 {
		sections = append(sections, f.formatValidatorErrors(report.ValidatorErrors))
	}
	if len(report.Recommendations) > 0 {
		sections = append(sections, f.formatRecommendations(report.Recommendations))
	}

	return strings.Join(sections, "\n\n")
}

// FormatFinding formats a single finding for detailed display.
func (f *CLIFormatter) FormatFinding(finding model.Finding) string {
	style := f.styles.ForSeverity(finding.Severity)

	label := finding.RuleID
	if label == "" {
		label = finding.Source
	}
	header := style.Bold(true).Render(fmt.Sprintf("%s [%s]", label, finding.Severity))

	parts := []string{
		header,
		f.styles.Normal.Render(finding.Message),
		f.styles.Subtle.Render(fmt.Sprintf("Score: %.2f | Category: %s", finding.Score, finding.Category)),
	}

	if len(finding.AffectedEntryIDs) > 0 {
		parts = append(parts, f.formatAffectedEntries(finding.AffectedEntryIDs))
	}
	if len(finding.Remediation) > 0 {
		lines := make([]string, 0, len(finding.Remediation)+1)
		lines = append(lines, f.styles.Info.Render("Remediation:"))
		for _, step := range finding.Remediation {
			lines = append(lines, "  "+f.styles.Normal.Render("• "+step))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n")
}

// FormatAlert formats an alert line for terminal display.
func (f *CLIFormatter) FormatAlert(alert model.Alert, now time.Time) string {
	style := f.styles.ForSeverity(alert.Severity)
	due := alert.DueDate.Format("2006-01-02")
	if alert.Overdue(now) {
		due = f.styles.Error.Render(due + " (overdue)")
	} else {
		due = f.styles.Subtle.Render(due)
	}
	return fmt.Sprintf("%s %s  due %s", style.Render(fmt.Sprintf("[%s]", alert.Severity)), alert.Title, due)
}

func (f *CLIFormatter) formatHeader(report *model.ComplianceReport) string {
	title := f.styles.Title.Render("Compliance Report")
	standard := f.styles.Subtitle.Render(fmt.Sprintf("Standard: %s", strings.ToUpper(string(report.Standard))))
	meta := f.styles.Subtle.Render(fmt.Sprintf("Generated: %s | %d rules, %d checks in %s",
		report.GeneratedAt.Format(time.RFC3339),
		report.RulesEvaluated,
		report.ChecksEvaluated,
		report.ProcessingTime.Round(time.Millisecond)))
	return fmt.Sprintf("%s\n%s\n%s", title, standard, meta)
}

func (f *CLIFormatter) formatScore(score float64) string {
	style := f.styles.ForScore(score)
	text := style.Render(fmt.Sprintf("Compliance Score: %.1f%%", score*100))
	bar := style.Render(f.styles.RenderProgressBar(score, 30))
	return fmt.Sprintf("%s\n%s", text, bar)
}

func (f *CLIFormatter) formatSeverityBreakdown(report *model.ComplianceReport) string {
	title := f.styles.Subtitle.Render("Findings:")

	severities := []model.Severity{
		model.SeverityCritical,
		model.SeverityError,
		model.SeverityWarning,
		model.SeverityInfo,
	}

	var lines []string
	for _, severity := range severities {
		count := report.SeverityDistribution[severity]
		if count == 0 {
			continue
		}
		style := f.styles.ForSeverity(severity)
		lines = append(lines, style.Render(fmt.Sprintf("%s: %d", severity, count)))
	}

	if len(lines) == 0 {
		return title + "\n" + f.styles.Success.Render("No findings")
	}
	return title + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatValidatorErrors(errs []string) string {
	title := f.styles.Warning.Render("Incomplete checks:")
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, f.styles.Subtle.Render("• "+err))
	}
	return title + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatRecommendations(recs []string) string {
	title := f.styles.Subtitle.Render("Recommendations:")
	limit := 10
	shown := recs
	if len(shown) > limit {
		shown = shown[:limit]
	}
	lines := make([]string, 0, len(shown)+1)
	for _, rec := range shown {
		bullet := f.styles.Info.Render("•")
		lines = append(lines, fmt.Sprintf("%s %s", bullet, f.styles.Normal.Render(rec)))
	}
	if len(recs) > limit {
		lines = append(lines, f.styles.Subtle.Render(fmt.Sprintf("... and %d more", len(recs)-limit)))
	}
	return title + "\n" + strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatAffectedEntries(ids []string) string {
	title := f.styles.Subtle.Render("Affected entries:")
	limit := 3
	shown := ids
	if len(shown) > limit {
		shown = shown[:limit]
	}
	lines := make([]string, 0, len(shown)+1)
	for _, id := range shown {
		lines = append(lines, f.styles.Subtle.Render("  • "+id))
	}
	if len(ids) > limit {
		lines = append(lines, f.styles.Subtle.Render(fmt.Sprintf("  ... and %d more", len(ids)-limit)))
	}
	return title + "\n" + strings.Join(lines, "\n")
}
