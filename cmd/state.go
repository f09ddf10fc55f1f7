package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/xiaofuou6/chaos-card-machine/internal/output"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
)

// stateCommand describes a single-task mutation that accepts a comma-separated
// ID list.
type stateCommand struct {
	use     string
	aliases []string
	short   string
	long    string
	verb    string // past tense for the confirmation message
	apply   func(cmd *cobra.Command, tr *tracker.Tracker, id int64) (task.Task, error)
	flags   func(cmd *cobra.Command)
}

var stateCommands = []stateCommand{
	{
		use:   "toggle",
		short: "Toggle a task between pending and completed",
		long: `Flips the completion flag. One-off tasks toggle completed; recurring tasks
toggle completed-today, which the daily reset clears.`,
		verb: "Toggled",
		apply: func(_ *cobra.Command, tr *tracker.Tracker, id int64) (task.Task, error) {
			return tr.Toggle(id)
		},
	},
	{
		use:     "undo",
		aliases: []string{"reopen"},
		short:   "Mark a completed task as not done",
		verb:    "Reopened",
		apply: func(_ *cobra.Command, tr *tracker.Tracker, id int64) (task.Task, error) {
			return tr.Undo(id)
		},
	},
	{
		use:   "done",
		short: "Mark a task as done",
		verb:  "Completed",
		apply: func(_ *cobra.Command, tr *tracker.Tracker, id int64) (task.Task, error) {
			return tr.MarkDone(id)
		},
	},
	{
		use:   "stall",
		short: "Stall or resume a task",
		long: `Toggles the stalled flag. Stalled tasks leave the pending and completed tabs
and are never drawn. With --reason the task is stalled (or kept stalled) with
that reason; resuming clears the reason.`,
		verb: "Updated",
		apply: func(cmd *cobra.Command, tr *tracker.Tracker, id int64) (task.Task, error) {
			if cmd.Flags().Changed("reason") {
				reason, _ := cmd.Flags().GetString("reason")
				return tr.SetStallReason(id, reason)
			}
			return tr.Stall(id)
		},
		flags: func(cmd *cobra.Command) {
			cmd.Flags().StringP("reason", "r", "", "stall with this reason")
		},
	},
}

func init() {
	for _, sc := range stateCommands {
		rootCmd.AddCommand(sc.command())
	}
}

func (sc stateCommand) command() *cobra.Command {
	c := &cobra.Command{
		Use:     sc.use + " ID[,ID,...]",
		Aliases: sc.aliases,
		Short:   sc.short,
		Long:    sc.long,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sc.run(cmd, args[0])
		},
	}
	if c.Long == "" {
		c.Long = sc.short + "."
	}
	c.Long += "\nMultiple IDs can be provided as a comma-separated list."
	if sc.flags != nil {
		sc.flags(c)
	}
	return c
}

func (sc stateCommand) run(cmd *cobra.Command, arg string) error {
	ids, err := task.ParseIDs(arg)
	if err != nil {
		return err
	}

	_, tr, store, err := openTracker()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // writes are flushed per save

	if len(ids) > 1 {
		return runBatch(ids, func(id int64) error {
			_, err := sc.apply(cmd, tr, id)
			return err
		})
	}

	t, err := sc.apply(cmd, tr, ids[0])
	if err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "%s task #%d: %s (%s)", sc.verb, t.ID, t.Name, stateLabel(t))
	return nil
}

// stateLabel names the tab a task now shows up in.
func stateLabel(t task.Task) string {
	for _, tab := range tracker.Tabs {
		if tab.Contains(t) {
			return string(tab)
		}
	}
	return string(tracker.Pending)
}
