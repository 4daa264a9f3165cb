package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jonathan/rolodex/internal/observability"
	"github.com/jonathan/rolodex/internal/search"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search contacts, events and pipeline entries",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	query := strings.Join(args, " ")
	results, err := search.Global(ctx, e.db, query, e.cfg.PageSize)
	if err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSearchResults(query, results)
		return nil
	}
	return printResults(cmd.OutOrStdout(), query, results)
}

func printResults(w io.Writer, query string, results []search.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintf(w, "No results for %q\n", query)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tTYPE\tTITLE\tDETAIL")
	for _, r := range results {
		detail := r.Subtitle
		if r.Description != "" {
			detail = strings.TrimSpace(detail + "  " + r.Description)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Relevance, r.Type, r.Title, detail)
	}
	return tw.Flush()
}
