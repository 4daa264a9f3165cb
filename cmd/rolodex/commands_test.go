package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/rolodex/internal/csvio"
	"github.com/jonathan/rolodex/internal/search"
	"github.com/jonathan/rolodex/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// execute runs the root command in-process and returns what it wrote to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestHashPassword_Argument(t *testing.T) {
	out, err := execute(t, "", "hash-password", "--cost", "10", "open sesame")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"), hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("open sesame")))
}

func TestHashPassword_Stdin(t *testing.T) {
	out, err := execute(t, "from stdin\r\n", "hash-password", "--cost", "10")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("from stdin")))
}

func TestHashPassword_Errors(t *testing.T) {
	_, err := execute(t, "", "hash-password", "--cost", "4", "pw")
	assert.ErrorContains(t, err, "out of range")

	_, err = execute(t, "\n", "hash-password", "--cost", "10")
	assert.ErrorContains(t, err, "must not be empty")
}

func TestSeed_ValidateOnly(t *testing.T) {
	demo := filepath.Join("..", "..", "internal", "seed", "testdata", "demo.json")
	out, err := execute(t, "", "seed", "--validate-only", "--file", demo)
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed")
}

func TestSeed_InvalidFile(t *testing.T) {
	_, err := execute(t, "", "seed", "--validate-only", "--file", filepath.Join("testdata", "missing.json"))
	assert.ErrorContains(t, err, "failed to read seed file")
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printResults(&buf, "ada", []search.Result{
		{Type: search.TypeContact, Title: "Ada Lovelace", Subtitle: "ada@example.com", Description: "CTO at Engines", Relevance: 180},
		{Type: search.TypeEvent, Title: "Ada Day", Relevance: 100},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "SCORE"))
	assert.Contains(t, lines[1], "Ada Lovelace")
	assert.Contains(t, lines[1], "ada@example.com  CTO at Engines")
	assert.Contains(t, lines[2], "event")

	buf.Reset()
	require.NoError(t, printResults(&buf, "zz", nil))
	assert.Equal(t, "No results for \"zz\"\n", buf.String())
}

func TestPrintImportResult(t *testing.T) {
	var buf bytes.Buffer
	printImportResult(&buf, &csvio.Result{
		Imported: 2, Created: 1, Updated: 1, Skipped: 1,
		Errors: []csvio.RowError{{Line: 4, Reason: "missing first name, last name and email"}},
	})
	assert.Equal(t,
		"Imported 2 contacts (1 new, 1 updated), skipped 1 rows\n"+
			"  line 4: missing first name, last name and email\n",
		buf.String())
}

func TestPrintSeedSummary(t *testing.T) {
	var buf bytes.Buffer
	printSeedSummary(&buf, seed.Summary{Contacts: 3, Events: 1, Attendees: 2, Skipped: 1})
	assert.Contains(t, buf.String(), "Events:    1 (2 attendees)")
	assert.Contains(t, buf.String(), "Skipped:   1 already present")
}

func TestActions(t *testing.T) {
	out, err := execute(t, "", "actions")
	require.NoError(t, err)
	assert.Contains(t, out, "RELATIONSHIP PIPELINE ACTIONS")
	assert.Contains(t, out, "CTO CLUB ACTIONS")

	out, err = execute(t, "", "actions", "cto")
	require.NoError(t, err)
	assert.NotContains(t, out, "RELATIONSHIP PIPELINE ACTIONS")
	assert.Contains(t, out, "Send club invitation → in progress")

	_, err = execute(t, "", "actions", "sales")
	assert.ErrorContains(t, err, "unknown pipeline")
}
