package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/TrevorS/hclust/cmd/hclust/commands"
	"github.com/TrevorS/hclust/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "hclust",
	Short: "hclust - hierarchical agglomerative clustering",
	Long: `hclust - hierarchical agglomerative clustering with R-compatible output.

Available commands:
  cluster - Build a dendrogram from CSV observations or a dist vector
  methods - List supported linkages and distances

Settings come from defaults, an optional TOML file (--config), HCLUST_*
environment variables (e.g. HCLUST_CLUSTER_LINKAGE) and flags, in that
order of precedence.

Examples:
  hclust cluster points.csv
  hclust cluster -l single -d manhattan --format table points.csv
  hclust methods`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLog, _ := cmd.Flags().GetBool("json-log")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(jsonLog, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "TOML config file")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v, -vv)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Write logs as JSON")

	rootCmd.AddCommand(commands.ClusterCmd)
	rootCmd.AddCommand(commands.MethodsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
