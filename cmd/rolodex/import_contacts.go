package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/rolodex/internal/csvio"
	"github.com/jonathan/rolodex/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importFile    string
	importWorkers int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import contacts from a CSV file",
	Long: "Upsert contacts from a CSV file by email. Column names are matched loosely " +
		`("First Name", "E-mail Address", "Organization", ...). Rows without a name or email are skipped and reported.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to the CSV file (- for stdin)")
	importCmd.Flags().IntVar(&importWorkers, "workers", csvio.DefaultWorkers, "Concurrent database writers")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	in := io.Reader(cmd.InOrStdin())
	if importFile != "-" {
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		in = f
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := csvio.Import(ctx, in, e.db, importWorkers)
	if err != nil {
		return err
	}
	e.logger.Info("contacts imported",
		zap.String("file", importFile),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("skipped", res.Skipped))
	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintImportResult(res)
		return nil
	}
	printImportResult(cmd.OutOrStdout(), res)
	return nil
}

func printImportResult(w io.Writer, res *csvio.Result) {
	fmt.Fprintf(w, "Imported %d contacts (%d new, %d updated), skipped %d rows\n",
		res.Imported, res.Created, res.Updated, res.Skipped)
	for _, re := range res.Errors {
		fmt.Fprintf(w, "  line %d: %s\n", re.Line, re.Reason)
	}
}
