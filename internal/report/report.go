// Package report renders human readable run summaries.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"video_syncer/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type row struct {
	label string
	value string
}

// Ingest renders the summary block of an ingestion run.
func Ingest(stats *domain.IngestStats) string {
	index := mutedStyle.Render("unchanged")
	if stats.IndexUpdated {
		index = okStyle.Render("updated")
	}

	rows := []row{
		{"Fetched from feeds", fmt.Sprint(stats.Fetched)},
		{"Skipped (already known)", fmt.Sprint(stats.SkippedExisting)},
		{"Skipped (duplicate in batch)", fmt.Sprint(stats.SkippedDuplicate)},
		{"Skipped (live/upcoming)", fmt.Sprint(stats.SkippedLive)},
		{"Skipped (keywords)", fmt.Sprint(stats.SkippedKeywords)},
		{"Skipped (duration)", fmt.Sprint(stats.SkippedDuration)},
		{"Inserted", okStyle.Render(fmt.Sprint(stats.Inserted))},
		{"Insert errors", count(stats.InsertErrors)},
		{"Events published", fmt.Sprint(stats.Published)},
		{"Publish errors", count(stats.PublishErrors)},
		{"Total known IDs", fmt.Sprint(stats.TotalKnown)},
		{"ID index", index},
		{"Took", stats.Duration.Round(time.Millisecond).String()},
	}

	return panel("Ingest: "+stats.Pipeline, rows)
}

// Pointer renders the outcome of a pointer run.
func Pointer(result *domain.PointerResult) string {
	var outcome string
	switch result.Outcome {
	case domain.PointerUpdated:
		outcome = okStyle.Render("updated")
	case domain.PointerUnchanged:
		outcome = mutedStyle.Render("already up to date")
	default:
		outcome = warnStyle.Render("no matching video")
	}

	rows := []row{
		{"Outcome", outcome},
		{"Matches", fmt.Sprint(result.Matches)},
	}
	if result.Outcome != domain.PointerNotFound {
		rows = append(rows,
			row{"Video", result.VideoID},
			row{"Live", fmt.Sprint(result.Live)},
			row{"Title", result.Record.Title},
			row{"URL", result.Record.URL},
			row{"Image", result.Record.ImageURL},
		)
	}
	rows = append(rows, row{"Took", result.Duration.Round(time.Millisecond).String()})

	return panel("Pointer: "+result.Name, rows)
}

// Failure renders a job that ended with an error.
func Failure(job string, err error) string {
	return panel("Failed: "+job, []row{{"Error", errorStyle.Render(err.Error())}})
}

func count(n int) string {
	if n > 0 {
		return errorStyle.Render(fmt.Sprint(n))
	}
	return fmt.Sprint(n)
}

func panel(title string, rows []row) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.label))
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := mutedStyle.Render(r.label + strings.Repeat(" ", width-lipgloss.Width(r.label)))
		lines = append(lines, label+"  "+r.value)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), strings.Join(lines, "\n"))
	return panelStyle.Render(body)
}
