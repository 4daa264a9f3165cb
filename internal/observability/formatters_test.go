package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/rolodex/internal/csvio"
	"github.com/jonathan/rolodex/internal/pipeline"
	"github.com/jonathan/rolodex/internal/search"
	"github.com/jonathan/rolodex/internal/seed"
	"github.com/stretchr/testify/assert"
)

func assertBoxed(t *testing.T, output string) {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestPrintActionCatalog_Relationship(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintActionCatalog(pipeline.KindRelationship)
	output := buf.String()

	assert.Contains(t, output, "RELATIONSHIP PIPELINE ACTIONS")
	assert.Contains(t, output, "1. Initial Outreach (default)")
	assert.Contains(t, output, "Schedule coffee chat → Forming the Relationship")
	assertBoxed(t, output)
}

func TestPrintActionCatalog_CTO(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintActionCatalog(pipeline.KindCTO)
	output := buf.String()

	assert.Contains(t, output, "CTO CLUB ACTIONS")
	assert.Contains(t, output, "not started (default)")
	assert.Contains(t, output, pipeline.CategoryOnboarding+":")
	assert.NotContains(t, output, "Other (specify in notes) →")
	assertBoxed(t, output)
}

func TestPrintActionCatalog_UnknownKind(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintActionCatalog(pipeline.Kind("sales"))

	assert.Empty(t, buf.String())
}

func TestPrintSearchResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var results []search.Result
	for i := 0; i < 7; i++ {
		results = append(results, search.Result{
			Type:      search.TypeContact,
			Title:     fmt.Sprintf("Contact %d", i),
			Subtitle:  "Engines Ltd",
			Relevance: 200 - i,
		})
	}

	p.PrintSearchResults("eng", results)
	output := buf.String()

	assert.Contains(t, output, "SEARCH RESULTS")
	assert.Contains(t, output, "Total matches: 7")
	assert.Contains(t, output, "#1  Contact 0 [contact]")
	assert.Contains(t, output, "Score: 200")
	assert.NotContains(t, output, "Contact 5")
	assert.Contains(t, output, "... and 2 more results")
	assertBoxed(t, output)
}

func TestPrintSearchResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSearchResults("zz", nil)

	assert.Contains(t, buf.String(), "No matches")
}

func TestPrintImportResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintImportResult(&csvio.Result{
		Imported: 3,
		Created:  2,
		Updated:  1,
		Skipped:  1,
		Errors:   []csvio.RowError{{Line: 5, Reason: strings.Repeat("very long reason ", 6)}},
	})
	output := buf.String()

	assert.Contains(t, output, "CONTACT IMPORT")
	assert.Contains(t, output, "Created:  2")
	assert.Contains(t, output, "⚠ line 5")
	assert.Contains(t, output, "...")
	assertBoxed(t, output)
}

func TestPrintImportResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintImportResult(nil)

	assert.Empty(t, buf.String())
}

func TestPrintSeedSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSeedSummary(seed.Summary{Contacts: 3, Events: 1, Attendees: 2, Projects: 1, Tasks: 2, Skipped: 4})
	output := buf.String()

	assert.Contains(t, output, "SEED SUMMARY")
	assert.Contains(t, output, "Projects:  1 (2 tasks)")
	assert.Contains(t, output, "4 entries already present")
	assertBoxed(t, output)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "→→→...", truncate("→→→→→→→→", 6))
}
