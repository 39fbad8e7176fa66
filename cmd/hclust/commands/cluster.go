package commands

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TrevorS/hclust"
	"github.com/TrevorS/hclust/internal/config"
	"github.com/TrevorS/hclust/internal/logger"
)

// ClusterCmd clusters observations read from a file or stdin.
var ClusterCmd = newClusterCmd()

// clusterFlagKeys maps config keys to the cluster command's flags.
var clusterFlagKeys = map[string]string{
	"cluster.linkage":    "linkage",
	"cluster.distance":   "distance",
	"cluster.p":          "p",
	"cluster.workers":    "workers",
	"cluster.precompute": "precompute",
	"input.kind":         "input",
	"input.header":       "header",
	"output.format":      "format",
}

func newClusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster [file]",
		Short: "Build a dendrogram from observations or dissimilarities",
		Long: `Build a hierarchical clustering dendrogram.

With --input rows (default) each CSV record is one observation. With
--input dist the input is the strictly lower triangle of the dissimilarity
matrix packed column by column, as R's dist() stores it; values may be
separated by commas or whitespace.

The result is R's hclust triple: merge, height and order.

Examples:
  hclust cluster points.csv --linkage average --distance manhattan
  hclust cluster --input dist --linkage complete < d.txt
  hclust cluster points.csv --cut 3 --format table`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCluster,
	}

	defaults := hclust.DefaultConfig()
	cmd.Flags().String("input", config.InputRows, "Input kind: rows or dist")
	cmd.Flags().Bool("header", false, "Skip the first CSV record")
	cmd.Flags().StringP("linkage", "l", string(defaults.Linkage), "Linkage: ward, average, single, complete")
	cmd.Flags().StringP("distance", "d", string(defaults.Distance), "Distance for row input: euclidean, manhattan, maximum, minkowski")
	cmd.Flags().Float64("p", defaults.P, "Minkowski power (>= 1)")
	cmd.Flags().IntP("workers", "w", 0, "Worker goroutines (0 = one per CPU)")
	cmd.Flags().Bool("precompute", false, "Compute all pairwise distances first, then cluster the matrix")
	cmd.Flags().StringP("format", "f", config.FormatJSON, "Output format: json, yaml, table")
	cmd.Flags().Int("cut", 0, "Also report memberships for this many groups")
	return cmd
}

func runCluster(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	v, err := config.New(configFile)
	if err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags(), clusterFlagKeys); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	cut, _ := cmd.Flags().GetInt("cut")

	in, name, closeIn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeIn()

	log := logger.Logger.With(zap.String("source", name))
	d, err := cluster(in, cfg, log)
	if err != nil {
		return err
	}

	res := result{Dendrogram: *d}
	if cut > 0 {
		if res.Groups, err = d.Cut(cut); err != nil {
			return err
		}
	}
	log.Info("dendrogram built",
		zap.Int("n", d.N()),
		zap.String("linkage", string(d.Linkage)),
	)
	return writeResult(cmd.OutOrStdout(), cfg.Output.Format, res)
}

// cluster reads the input described by cfg and clusters it.
func cluster(in io.Reader, cfg *config.Config, log *zap.Logger) (*hclust.Dendrogram, error) {
	lib := cfg.Library(log)

	if cfg.Input.Kind == config.InputDist {
		dist, n, err := readPacked(in)
		if err != nil {
			return nil, err
		}
		log.Info("read dissimilarities", zap.Int("n", n), zap.Int("values", len(dist)))
		return hclust.ClusterDistances(dist, n, lib)
	}

	rows, err := readRows(in, cfg.Input.Header)
	if err != nil {
		return nil, err
	}
	n, dims := rows.Dims()
	log.Info("read observations", zap.Int("n", n), zap.Int("dims", dims))

	if !cfg.Cluster.Precompute {
		return hclust.ClusterMatrix(rows, lib)
	}
	dist, err := hclust.PairwiseDistances(rows.RawMatrix().Data, n, dims, lib.Distance, lib.P, lib.Workers)
	if err != nil {
		return nil, err
	}
	d, err := hclust.ClusterDistances(dist, n, lib)
	if err != nil {
		return nil, err
	}
	d.Distance = lib.Distance
	return d, nil
}

// openInput returns the named file, or stdin for no argument or "-".
func openInput(cmd *cobra.Command, args []string) (io.Reader, string, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), "stdin", func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", nil, errors.Wrapf(err, "failed to open %s", args[0])
	}
	return f, args[0], func() { _ = f.Close() }, nil
}
