package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/output"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID[,ID,...]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Removes a task permanently. Prompts for confirmation in interactive mode.
Multiple IDs can be provided as a comma-separated list (requires --yes).`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := task.ParseIDs(args[0])
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")

	// Batch mode requires --yes.
	if len(ids) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq,
			"batch delete requires --yes")
	}

	_, tr, store, err := openTracker()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // writes are flushed per save

	if len(ids) == 1 {
		return deleteSingleTask(tr, ids[0], yes)
	}

	return runBatch(ids, func(id int64) error {
		_, err := tr.Delete(id)
		return err
	})
}

// deleteSingleTask handles a single task delete with confirmation and output.
func deleteSingleTask(tr *tracker.Tracker, id int64, yes bool) error {
	t, err := tr.Get(id)
	if err != nil {
		return err
	}

	// Require confirmation in TTY mode unless --yes.
	if !yes {
		ok, err := confirm(fmt.Sprintf("Delete task #%d %q?", t.ID, t.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	if _, err := tr.Delete(id); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "deleted",
			"id":     t.ID,
			"name":   t.Name,
		})
	}

	output.Messagef(os.Stdout, "Deleted task #%d: %s", t.ID, t.Name)
	return nil
}

// confirm asks a yes/no question on stderr. It fails when stdin is not a
// terminal so scripts must pass --yes.
func confirm(question string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // fd fits in int
		return false, clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
