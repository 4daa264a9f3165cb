// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/rolodex/internal/csvio"
	"github.com/jonathan/rolodex/internal/pipeline"
	"github.com/jonathan/rolodex/internal/search"
	"github.com/jonathan/rolodex/internal/seed"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintActionCatalog outputs kind's stages and its next actions grouped by category.
func (p *Printer) PrintActionCatalog(kind pipeline.Kind) {
	stages := pipeline.Stages(kind)
	if stages == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("Stages:\n")
	def := pipeline.DefaultStage(kind)
	for i, s := range stages {
		sb.WriteString(fmt.Sprintf("  %d. %s", i+1, s))
		if s == def {
			sb.WriteString(" (default)")
		}
		sb.WriteString("\n")
	}

	byCategory := pipeline.ActionsByCategory(kind)
	for _, category := range pipeline.Categories(kind) {
		sb.WriteString(fmt.Sprintf("\n%s:\n", category))
		for _, label := range byCategory[category] {
			d, _ := pipeline.LookupAction(kind, label)
			if d.Stage == pipeline.StageUnchanged {
				sb.WriteString(fmt.Sprintf("  • %s\n", label))
				continue
			}
			sb.WriteString(fmt.Sprintf("  • %s → %s\n", label, d.Stage))
		}
	}

	title := "RELATIONSHIP PIPELINE ACTIONS"
	if kind == pipeline.KindCTO {
		title = "CTO CLUB ACTIONS"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSearchResults outputs the top search hits with their relevance scores.
func (p *Printer) PrintSearchResults(query string, results []search.Result) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Query: %q\n", query))
	if len(results) == 0 {
		sb.WriteString("No matches")
		p.printBox("SEARCH RESULTS", sb.String())
		return
	}
	sb.WriteString(fmt.Sprintf("Total matches: %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s [%s]\n", i+1, r.Title, r.Type))
		sb.WriteString(fmt.Sprintf("    Score: %d\n", r.Relevance))
		if r.Subtitle != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", r.Subtitle))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more results", len(results)-maxItemsToShow))
	}

	p.printBox("SEARCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImportResult outputs import counts and the rows that were skipped.
func (p *Printer) PrintImportResult(res *csvio.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Imported: %d\n", res.Imported))
	sb.WriteString(fmt.Sprintf("Created:  %d\n", res.Created))
	sb.WriteString(fmt.Sprintf("Updated:  %d\n", res.Updated))
	sb.WriteString(fmt.Sprintf("Skipped:  %d", res.Skipped))

	if len(res.Errors) > 0 {
		sb.WriteString("\n\n")
		count := min(len(res.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			re := res.Errors[i]
			sb.WriteString(fmt.Sprintf("⚠ line %d\n  %s", re.Line, re.Reason))
			if i < count-1 {
				sb.WriteString("\n")
			}
		}
		if len(res.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n... and %d more skipped rows", len(res.Errors)-maxItemsToShow))
		}
	}

	p.printBox("CONTACT IMPORT", sb.String())
}

// PrintSeedSummary outputs what a seed run wrote.
func (p *Printer) PrintSeedSummary(s seed.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Contacts:  %d\n", s.Contacts))
	sb.WriteString(fmt.Sprintf("Events:    %d (%d attendees)\n", s.Events, s.Attendees))
	sb.WriteString(fmt.Sprintf("Pipeline:  %d\n", s.Pipeline))
	sb.WriteString(fmt.Sprintf("CTO club:  %d\n", s.CTOClub))
	sb.WriteString(fmt.Sprintf("VIPs:      %d\n", s.VIPs))
	sb.WriteString(fmt.Sprintf("Projects:  %d (%d tasks)", s.Projects, s.Tasks))
	if s.Skipped > 0 {
		sb.WriteString(fmt.Sprintf("\n\n%d entries already present", s.Skipped))
	}

	p.printBox("SEED SUMMARY", sb.String())
}
