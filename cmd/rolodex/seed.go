package main

import (
	"fmt"
	"io"

	"github.com/jonathan/rolodex/internal/observability"
	"github.com/jonathan/rolodex/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedFile     string
	seedValidate bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data from a JSON seed file",
	Long: "Validate a seed file against the seed schema and write its contacts, events, pipeline entries, " +
		"VIPs and projects. Contacts are matched by email, so re-running a seed updates them in place.",
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to the seed JSON file")
	seedCmd.Flags().BoolVar(&seedValidate, "validate-only", false, "Validate the file without touching the database")
	_ = seedCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	f, err := seed.Load(seedFile)
	if err != nil {
		return err
	}
	if seedValidate {
		fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", seedFile)
		return nil
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	summary, err := seed.Apply(ctx, e.db, f, e.logger)
	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSeedSummary(summary)
	} else {
		printSeedSummary(cmd.OutOrStdout(), summary)
	}
	if err != nil {
		return fmt.Errorf("seed stopped early: %w", err)
	}
	e.logger.Info("seed applied", zap.String("file", seedFile), zap.Int("skipped", summary.Skipped))
	return nil
}

func printSeedSummary(w io.Writer, s seed.Summary) {
	fmt.Fprintf(w, "Contacts:  %d\n", s.Contacts)
	fmt.Fprintf(w, "Events:    %d (%d attendees)\n", s.Events, s.Attendees)
	fmt.Fprintf(w, "Pipeline:  %d\n", s.Pipeline)
	fmt.Fprintf(w, "CTO club:  %d\n", s.CTOClub)
	fmt.Fprintf(w, "VIPs:      %d\n", s.VIPs)
	fmt.Fprintf(w, "Projects:  %d (%d tasks)\n", s.Projects, s.Tasks)
	if s.Skipped > 0 {
		fmt.Fprintf(w, "Skipped:   %d already present\n", s.Skipped)
	}
}
