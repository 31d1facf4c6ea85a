package aspecter

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thaumlab/aspecter/pkg/export"
	"github.com/thaumlab/aspecter/pkg/search"
)

var connectCmd = &cobra.Command{
	Use:   "connect <begin> <end>",
	Short: "Rank the paths connecting two aspects",
	Long: `Connect enumerates every simple path between two aspects over the recipe
graph and prints them ranked by weight, heaviest first. A path's weight
grows with the quantities already held along it.`,
	Args: cobra.ExactArgs(2),
	RunE: runConnect,
}

var (
	connectMaxPaths   int
	connectMaxLength  int
	connectShowWeight bool
	connectExportDir  string
)

func init() {
	rootCmd.AddCommand(connectCmd)

	connectCmd.Flags().IntVar(&connectMaxPaths, "max-paths", 0, "Maximum number of paths to return (0 = unlimited)")
	connectCmd.Flags().IntVar(&connectMaxLength, "max-path-length", 0, "Maximum aspects per path (0 = unlimited)")
	connectCmd.Flags().BoolVar(&connectShowWeight, "weights", false, "Print per-aspect weights")
	connectCmd.Flags().StringVar(&connectExportDir, "export-dir", "", "Also write the ranked paths as Parquet under this directory")
}

func runConnect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, cfg, cleanup, err := newLoadedClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := &search.Options{
		MaxPaths:      cfg.Search.MaxPaths,
		MaxPathLength: cfg.Search.MaxPathLength,
	}
	if cmd.Flags().Changed("max-paths") {
		opts.MaxPaths = connectMaxPaths
	}
	if cmd.Flags().Changed("max-path-length") {
		opts.MaxPathLength = connectMaxLength
	}

	ranked, err := client.RecommendWithOptions(ctx, args[0], args[1], opts)
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		fmt.Printf("No path connects %s and %s\n", args[0], args[1])
		return nil
	}

	for i, r := range ranked {
		fmt.Printf("%3d. %-50s weight=%.6f len=%d\n", i+1, r.Path.Key(), r.FinalWeight, r.Path.Len())
		if connectShowWeight {
			for j, name := range r.Path.Aspects {
				fmt.Printf("       %-20s %.6f\n", name, r.Weights[j])
			}
		}
	}

	if connectExportDir != "" {
		writer, err := export.NewParquetGraphWriter(connectExportDir)
		if err != nil {
			return err
		}
		path, err := writer.WritePaths(ranked)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %d ranked paths to %s\n", len(ranked), path)
	}
	return nil
}
