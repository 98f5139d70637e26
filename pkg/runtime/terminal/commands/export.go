package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/milv-tools/rvu-atlas/pkg/runtime/terminal/export"
)

type ExportCmd struct {
	flags  sourceFlags
	outDir string
}

// NewExportCmd writes the six dashboard view tables as CSV files, the
// format the executive dashboard's chart layer consumes.
func NewExportCmd() *cobra.Command {
	ec := &ExportCmd{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Aggregate an exam source and write the dashboard view CSVs",
		RunE:  ec.run,
	}

	ec.flags.register(cmd)
	cmd.Flags().StringVar(&ec.outDir, "out", ".", "Directory to write the view files into")
	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	snapshot, err := ec.flags.snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to build dashboard snapshot: %w", err)
	}

	exporter := export.NewExporter(ec.outDir)
	if err := exporter.Handle(snapshot); err != nil {
		return fmt.Errorf("failed to export views: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote 6 view files to %s\n", ec.outDir)
	return nil
}
