package aspecter

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var crackCmd = &cobra.Command{
	Use:   "crack <aspect>[=quantity] ...",
	Short: "Decompose aspects into their primary aspects",
	Long: `Crack expands composite aspects through their recipes down to the primary
aspects they are ultimately made of. Quantities default to 1 and can be
given per aspect, e.g.:

  aspecter crack Potentia Lux=3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCrack,
}

func init() {
	rootCmd.AddCommand(crackCmd)
}

func runCrack(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	quantities := make(map[string]float64, len(args))
	for _, arg := range args {
		name, qtyStr, found := strings.Cut(arg, "=")
		qty := 1.0
		if found {
			var err error
			qty, err = strconv.ParseFloat(qtyStr, 64)
			if err != nil {
				return fmt.Errorf("invalid quantity in %q: %w", arg, err)
			}
		}
		quantities[name] += qty
	}

	client, _, cleanup, err := newLoadedClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	primaries, err := client.Crack(quantities)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(primaries))
	for name := range primaries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%-20s %g\n", name, primaries[name])
	}
	return nil
}
