package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/milv-tools/rvu-atlas/pkg/models/domain"
	"github.com/milv-tools/rvu-atlas/pkg/services/dashboard"
	"github.com/milv-tools/rvu-atlas/pkg/services/dataset"
)

// sourceFlags are shared by every command that reads an exam source.
type sourceFlags struct {
	source   string
	format   string
	timezone string
	maxRate  float64
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", "", "Path to the exam source (csv, xlsx, or duckdb file)")
	cmd.Flags().StringVar(&f.format, "format", "", "Source format; inferred from the extension when empty")
	cmd.Flags().StringVar(&f.timezone, "timezone", "", "Timezone for interpreting timestamps (default UTC)")
	cmd.Flags().Float64Var(&f.maxRate, "max-exclusion-rate", 1.0, "Abort when excluded/total exceeds this rate")

	_ = cmd.MarkFlagRequired("source")
}

func (f *sourceFlags) snapshot(ctx context.Context) (*domain.DashboardSnapshot, error) {
	loc := time.UTC
	if f.timezone != "" {
		var err error
		loc, err = time.LoadLocation(f.timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", f.timezone, err)
		}
	}

	reader, err := dashboard.NewSourceReader(dashboard.SourceConfig{
		Path:   f.source,
		Format: f.format,
	})
	if err != nil {
		return nil, err
	}

	loader := dataset.NewLoader(
		dataset.WithLocation(loc),
		dataset.WithMaxExclusionRate(f.maxRate),
	)

	ctrl := dashboard.NewController(loader, reader)
	return ctrl.Refresh(ctx)
}

type snapshotHandler interface {
	Handle(snapshot *domain.DashboardSnapshot) error
}

type AnalyzeCmd struct {
	flags    sourceFlags
	reporter snapshotHandler
}

func NewAnalyzeCmd(reporter snapshotHandler) *cobra.Command {
	ac := &AnalyzeCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Aggregate an exam source and print the productivity report",
		RunE:  ac.run,
	}

	ac.flags.register(cmd)
	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	snapshot, err := ac.flags.snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to build dashboard snapshot: %w", err)
	}

	return ac.reporter.Handle(snapshot)
}
