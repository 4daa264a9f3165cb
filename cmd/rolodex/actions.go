package main

import (
	"fmt"

	"github.com/jonathan/rolodex/internal/observability"
	"github.com/jonathan/rolodex/internal/pipeline"
	"github.com/spf13/cobra"
)

var actionsCmd = &cobra.Command{
	Use:       "actions [relationship|cto]",
	Short:     "Show pipeline stages and the next-action catalog",
	Long:      "Show each pipeline's stages and the catalog of next actions with the stage each one moves an entry to.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(pipeline.KindRelationship), string(pipeline.KindCTO)},
	RunE:      runActions,
}

func init() {
	rootCmd.AddCommand(actionsCmd)
}

func runActions(cmd *cobra.Command, args []string) error {
	kinds := pipeline.Kinds()
	if len(args) == 1 {
		kind := pipeline.Kind(args[0])
		if !pipeline.IsValidKind(kind) {
			return fmt.Errorf("unknown pipeline %q (want relationship or cto)", args[0])
		}
		kinds = []pipeline.Kind{kind}
	}

	p := observability.NewPrinter(cmd.OutOrStdout())
	for _, kind := range kinds {
		p.PrintActionCatalog(kind)
	}
	return nil
}
