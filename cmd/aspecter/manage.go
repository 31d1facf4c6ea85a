package aspecter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thaumlab/aspecter/pkg/config"
	"github.com/thaumlab/aspecter/pkg/store"
)

var setHoldingCmd = &cobra.Command{
	Use:   "set-holding <aspect> <quantity>",
	Short: "Set the held quantity for an aspect",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		qty, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[1], err)
		}

		client, _, cleanup, err := newLoadedClient(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.SetHolding(ctx, args[0], qty); err != nil {
			return err
		}
		fmt.Printf("%s = %g\n", args[0], qty)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <pack.yaml> ...",
	Short: "Import content packs into the store",
	Long: `Import reads YAML content packs declaring aspects, recipes and optional
holdings and writes them into the configured store. Aspects without their
own mod tag get the pack's name.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger, flush := newLogger(cfg)
		defer flush()

		st, err := openStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()

		for _, path := range args {
			pack, err := store.ReadPackFile(path)
			if err != nil {
				return err
			}
			if err := pack.Import(ctx, st); err != nil {
				return fmt.Errorf("importing %s: %w", path, err)
			}
			logger.Info("Imported content pack",
				"pack", pack.Name,
				"aspects", len(pack.Aspects),
				"recipes", len(pack.Recipes),
				"holdings", len(pack.Holdings))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setHoldingCmd)
	rootCmd.AddCommand(importCmd)
}
