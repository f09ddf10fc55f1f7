package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xiaofuou6/chaos-card-machine/internal/activity"
	"github.com/xiaofuou6/chaos-card-machine/internal/output"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent activity",
	Long: `Shows the newest entries of the activity log: task mutations, daily
resets and draw sessions.`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	logCmd.Flags().IntP("limit", "n", 20, "number of entries to show (0 for all)") //nolint:mnd // default page
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	entries, err := activity.New(cfg.Dir()).Tail(limit)
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		if entries == nil {
			entries = []activity.Entry{}
		}
		return output.JSON(os.Stdout, entries)
	case output.FormatCompact:
		for _, e := range entries {
			fmt.Fprintf(os.Stdout, "%s %s #%d %s\n",
				e.Timestamp.Format("2006-01-02 15:04"), e.Action, e.TaskID, e.Detail)
		}
	default:
		output.ActivityTable(os.Stdout, entries)
	}
	return nil
}
