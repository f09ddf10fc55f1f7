package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xiaofuou6/chaos-card-machine/internal/output"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cats"},
	Short:   "List known categories",
	Long: `Lists the category registry in the order categories were first used.
Uncategorized is implicit and never listed.`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	_, tr, store, err := openTracker()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // read-only

	categories := tr.Categories()

	switch outputFormat() {
	case output.FormatJSON:
		if categories == nil {
			categories = []string{}
		}
		return output.JSON(os.Stdout, categories)
	case output.FormatCompact:
		fmt.Fprintln(os.Stdout, joinOrDash(categories))
	default:
		output.CategoryList(os.Stdout, categories)
	}
	return nil
}
