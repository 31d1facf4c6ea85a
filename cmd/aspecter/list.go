package aspecter

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var aspectsCmd = &cobra.Command{
	Use:   "aspects",
	Short: "List the loaded aspects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, _, cleanup, err := newLoadedClient(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		aspects, err := client.Aspects()
		if err != nil {
			return err
		}
		for _, a := range aspects {
			fmt.Printf("%-20s mod=%-15s base=%g\n", a.Name, a.Mod, a.BaseValue)
		}
		return nil
	},
}

var recipesCmd = &cobra.Command{
	Use:   "recipes [aspect]",
	Short: "List recipes, optionally for a single aspect",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, _, cleanup, err := newLoadedClient(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		recipes, err := client.Recipes()
		if err != nil {
			return err
		}
		for _, r := range recipes {
			if len(args) == 1 && r.Name != args[0] {
				continue
			}
			fmt.Println(r.String())
		}
		return nil
	},
}

var modsCmd = &cobra.Command{
	Use:   "mods",
	Short: "List the provenance tags of the loaded aspects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, _, cleanup, err := newLoadedClient(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		mods, err := client.Mods()
		if err != nil {
			return err
		}
		for _, m := range mods {
			fmt.Println(m)
		}
		return nil
	},
}

var primariesCmd = &cobra.Command{
	Use:   "primaries",
	Short: "List the primary aspects (those without recipes)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, _, cleanup, err := newLoadedClient(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		primaries, err := client.Primaries()
		if err != nil {
			return err
		}
		for _, p := range primaries {
			fmt.Println(p)
		}
		return nil
	},
}

var holdingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "List held quantities per aspect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, _, cleanup, err := newLoadedClient(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		holdings, err := client.Holdings()
		if err != nil {
			return err
		}
		names := make([]string, 0, len(holdings))
		for name := range holdings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%-20s %g\n", name, holdings[name])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aspectsCmd)
	rootCmd.AddCommand(recipesCmd)
	rootCmd.AddCommand(modsCmd)
	rootCmd.AddCommand(primariesCmd)
	rootCmd.AddCommand(holdingsCmd)
}
