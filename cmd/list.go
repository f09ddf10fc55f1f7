package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xiaofuou6/chaos-card-machine/internal/board"
	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/output"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists the tasks of one tab: pending (default), completed or stalled.
Stalled tasks only ever appear in the stalled tab. Filters, sorting and
grouping apply within the tab.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("tab", "t", string(tracker.Pending), "tab to show (pending, completed, stalled)")
	listCmd.Flags().StringSlice("kind", nil, "filter by kind (comma-separated)")
	listCmd.Flags().StringSlice("priority", nil, "filter by priority (comma-separated)")
	listCmd.Flags().StringSlice("energy", nil, "filter by energy (comma-separated)")
	listCmd.Flags().StringSlice("category", nil, "filter by category (comma-separated)")
	listCmd.Flags().Int("max", 0, "only tasks that take at most this many minutes")
	listCmd.Flags().StringP("search", "s", "", "search tasks by name, category, or stall reason (case-insensitive)")
	listCmd.Flags().String("sort", board.FieldID, "sort field ("+strings.Join(board.ValidSortFields(), ", ")+")")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.Flags().String("group-by", "", "group results by field ("+strings.Join(board.ValidGroupByFields(), ", ")+")")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	tabArg, _ := cmd.Flags().GetString("tab")
	tab, err := tracker.ParseTab(tabArg)
	if err != nil {
		return err
	}

	filter, err := listFilter(cmd)
	if err != nil {
		return err
	}
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")
	groupBy, _ := cmd.Flags().GetString("group-by")

	if groupBy != "" && !slices.Contains(board.ValidGroupByFields(), groupBy) {
		return clierr.Newf(clierr.InvalidInput, "invalid --group-by field %q; valid: %s",
			groupBy, strings.Join(board.ValidGroupByFields(), ", "))
	}

	opts := board.ListOptions{Filter: filter, SortBy: sortBy, Reverse: reverse, Limit: limit}
	if err := opts.Validate(); err != nil {
		return err
	}

	_, tr, store, err := openTracker()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // read-only

	tasks := board.List(tr.View(tab), opts)

	if groupBy != "" {
		return outputGroupedList(tasks, groupBy)
	}
	return outputTaskList(tasks)
}

// listFilter parses the filter flags, rejecting unknown kinds and levels.
func listFilter(cmd *cobra.Command) (board.FilterOptions, error) {
	var f board.FilterOptions

	kinds, _ := cmd.Flags().GetStringSlice("kind")
	for _, k := range kinds {
		kind, ok := task.ParseKind(k)
		if !ok {
			return f, task.ValidateKind(k)
		}
		f.Kinds = append(f.Kinds, kind)
	}

	levels := func(flag, code string) ([]task.Level, error) {
		values, _ := cmd.Flags().GetStringSlice(flag)
		var out []task.Level
		for _, v := range values {
			l, ok := task.ParseLevel(v)
			if !ok {
				return nil, task.ValidateLevel(code, flag, v)
			}
			out = append(out, l)
		}
		return out, nil
	}
	var err error
	if f.Priorities, err = levels("priority", clierr.InvalidPriority); err != nil {
		return f, err
	}
	if f.Energies, err = levels("energy", clierr.InvalidEnergy); err != nil {
		return f, err
	}

	f.Categories, _ = cmd.Flags().GetStringSlice("category")
	f.MaxMinutes, _ = cmd.Flags().GetInt("max")
	f.Search, _ = cmd.Flags().GetString("search")
	return f, nil
}

func outputGroupedList(tasks []task.Task, groupBy string) error {
	grouped := board.GroupBy(tasks, groupBy)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, grouped)
	}
	output.GroupedTable(os.Stdout, grouped)
	return nil
}

func outputTaskList(tasks []task.Task) error {
	format := outputFormat()
	if format == output.FormatJSON {
		if tasks == nil {
			tasks = []task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, tasks)
		return nil
	}

	output.TaskTable(os.Stdout, tasks)
	return nil
}
