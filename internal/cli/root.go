package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mplens",
		Short: "Find files a mini-program never loads",
		Long: `mplens reads a mini-program's app manifest, follows every page, component,
import, stylesheet, template and asset reference, and reports the files
that nothing reachable from the entry points refers to.`,
		SilenceUsage: true,
	}

	unusedCmd := &cobra.Command{
		Use:   "unused [path]",
		Short: "List files that are not reachable from any entry point",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunUnused,
	}
	addAnalysisFlags(unusedCmd)
	unusedCmd.Flags().Bool("json", false, "Print machine-readable result")

	graphCmd := &cobra.Command{
		Use:   "graph [path]",
		Short: "Print the project structure graph as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunGraph,
	}
	addAnalysisFlags(graphCmd)
	graphCmd.Flags().StringP("output", "o", "", "Write the graph to this file instead of stdout")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mplens %s\n", version)
		},
	}

	rootCmd.AddCommand(
		unusedCmd,
		graphCmd,
		versionCmd,
	)

	return rootCmd
}
