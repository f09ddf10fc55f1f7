package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/output"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
)

var editCmd = &cobra.Command{
	Use:   "edit ID[,ID,...]",
	Short: "Edit a task",
	Long: `Modifies fields of an existing task. Only specified fields are changed;
completion and stall state are kept. --reason only applies to stalled tasks.
Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("name", "", "new name")
	editCmd.Flags().String("reason", "", "new stall reason (stalled tasks only)")
	taskFlags(editCmd.Flags())
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ids, err := task.ParseIDs(args[0])
	if err != nil {
		return err
	}

	_, tr, store, err := openTracker()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // writes are flushed per save

	// Single ID: full output.
	if len(ids) == 1 {
		t, err := executeEdit(tr, ids[0], cmd)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		output.Messagef(os.Stdout, "Updated task #%d: %s", t.ID, t.Name)
		return nil
	}

	return runBatch(ids, func(id int64) error {
		_, err := executeEdit(tr, id, cmd)
		return err
	})
}

// executeEdit merges the flags over the task's current fields and saves.
func executeEdit(tr *tracker.Tracker, id int64, cmd *cobra.Command) (task.Task, error) {
	current, err := tr.Get(id)
	if err != nil {
		return task.Task{}, err
	}

	in := task.InputFrom(current)
	changed := applyTaskFlags(cmd, &in)
	if cmd.Flags().Changed("name") {
		in.Name, _ = cmd.Flags().GetString("name")
		changed = true
	}
	if cmd.Flags().Changed("reason") {
		in.StallReason, _ = cmd.Flags().GetString("reason")
		changed = true
	}
	if !changed {
		return task.Task{}, clierr.New(clierr.NoChanges, "no changes specified")
	}

	return tr.Edit(id, in)
}
