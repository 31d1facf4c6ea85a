package aspecter

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thaumlab/aspecter/pkg/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Export the loaded graph to Parquet files",
	Long: `Export writes the loaded aspects, recipes and holdings as Parquet files
under the given directory, for analysis in external tooling.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, _, cleanup, err := newLoadedClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	writer, err := export.NewParquetGraphWriter(args[0])
	if err != nil {
		return err
	}

	aspects, err := client.Aspects()
	if err != nil {
		return err
	}
	path, err := writer.WriteAspects(aspects)
	if err != nil {
		return err
	}
	fmt.Println("Wrote", path)

	recipes, err := client.Recipes()
	if err != nil {
		return err
	}
	if path, err = writer.WriteRecipes(recipes); err != nil {
		return err
	}
	fmt.Println("Wrote", path)

	holdings, err := client.Holdings()
	if err != nil {
		return err
	}
	if path, err = writer.WriteHoldings(holdings); err != nil {
		return err
	}
	fmt.Println("Wrote", path)

	return nil
}
