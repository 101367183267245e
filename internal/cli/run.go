package cli

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/chess99/mp-lens-sub000/internal/analyzer"
	"github.com/chess99/mp-lens-sub000/internal/fileutil"
	"github.com/chess99/mp-lens-sub000/internal/logger"
	"github.com/spf13/cobra"
)

func RunUnused(cmd *cobra.Command, args []string) error {
	asJSON, err := OptionalBoolFlag(cmd, "json")
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := runAnalysis(cmd, args, asJSON)
	if err != nil {
		return err
	}

	summary := NewUnusedSummary(result, time.Since(start).Milliseconds())
	return PrintUnusedSummary(cmd.OutOrStdout(), summary, asJSON)
}

func RunGraph(cmd *cobra.Command, args []string) error {
	output, err := OptionalStringFlag(cmd, "output")
	if err != nil {
		return err
	}
	result, err := runAnalysis(cmd, args, output == "")
	if err != nil {
		return err
	}
	if output == "" {
		return fileutil.PrintJSON(cmd.OutOrStdout(), result.Structure)
	}

	var buf bytes.Buffer
	if err := fileutil.PrintJSON(&buf, result.Structure); err != nil {
		return err
	}
	wrote, err := fileutil.WriteIfChanged(output, buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to write graph to %s: %w", output, err)
	}
	if wrote {
		fmt.Fprintf(cmd.OutOrStdout(), "graph: wrote %s (%d nodes, %d links)\n", output, len(result.Structure.Nodes), len(result.Structure.Links))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "graph: %s unchanged\n", output)
	}
	return nil
}

func runAnalysis(cmd *cobra.Command, args []string, asJSON bool) (*analyzer.Result, error) {
	opts, err := LoadOptions(cmd, args)
	if err != nil {
		return nil, err
	}
	verbose, err := OptionalBoolFlag(cmd, "verbose")
	if err != nil {
		return nil, err
	}

	log := logger.NewDefaultLogger(cmd.ErrOrStderr(), verbose)
	progress := newExtractProgressReporter("extract", asJSON)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := analyzer.New(opts, log).
		WithProgress(progress.Update).
		Analyze(ctx)
	if err != nil {
		progress.Abort()
		return nil, err
	}
	progress.Done(result.Scanned)
	if n := len(result.Issues); n > 0 {
		log.Logf("%d files could not be fully analysed; their references were skipped", n)
	}
	return result, nil
}
