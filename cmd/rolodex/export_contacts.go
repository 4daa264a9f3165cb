package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/rolodex/internal/csvio"
	"github.com/jonathan/rolodex/internal/db"
	"github.com/spf13/cobra"
)

var (
	exportOut   string
	exportType  string
	exportLimit int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export contacts to CSV",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "Output path (- for stdout)")
	exportCmd.Flags().StringVar(&exportType, "type", "", "Only export contacts of this type")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 10000, "Maximum contacts to export")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) (err error) {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	contacts, err := e.db.ListContacts(ctx, db.ContactFilters{ContactType: exportType, Limit: exportLimit})
	if err != nil {
		return err
	}

	out := io.Writer(cmd.OutOrStdout())
	if exportOut != "-" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		out = f
	}

	if err := csvio.WriteContacts(out, contacts); err != nil {
		return err
	}
	if exportOut != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d contacts to %s\n", len(contacts), exportOut)
	}
	return nil
}
