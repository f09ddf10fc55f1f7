package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/output"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add [NAME]",
	Aliases: []string{"create"},
	Short:   "Add a new task",
	Long: `Adds a task with the given name. Unset fields take the defaults from config.yml.

The name can be provided as a positional argument or via --name.
Durations must be one of the configured presets; use --custom for any other
number of minutes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("name", "", "task name (alternative to positional argument)")
	taskFlags(addCmd.Flags())
	rootCmd.AddCommand(addCmd)
}

// taskFlags registers the field flags shared by add and edit.
func taskFlags(fs *pflag.FlagSet) {
	fs.String("kind", "", "task kind (once, regular)")
	fs.String("duration", "", "duration preset in minutes")
	fs.String("custom", "", "custom duration in minutes (overrides --duration)")
	fs.String("priority", "", "priority (low, medium, high)")
	fs.String("energy", "", "energy needed (low, medium, high)")
	fs.String("category", "", "category")
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "type":
			name = "kind"
		case "cat":
			name = "category"
		}
		return pflag.NormalizedName(name)
	})
}

// applyTaskFlags overrides the fields of in with the flags the user set.
// It reports whether any field flag was given.
func applyTaskFlags(cmd *cobra.Command, in *task.Input) bool {
	changed := false
	set := func(flag string, dst *string) {
		if cmd.Flags().Changed(flag) {
			*dst, _ = cmd.Flags().GetString(flag)
			changed = true
		}
	}
	set("kind", &in.Kind)
	set("duration", &in.Duration)
	set("priority", &in.Priority)
	set("energy", &in.Energy)
	set("category", &in.Category)
	if cmd.Flags().Changed("custom") {
		in.Duration = task.CustomDuration
		in.CustomDuration, _ = cmd.Flags().GetString("custom")
		changed = true
	}
	return changed
}

func runAdd(cmd *cobra.Command, args []string) error {
	name, err := resolveAddName(cmd, args)
	if err != nil {
		return err
	}

	cfg, tr, store, err := openTracker()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // writes are flushed per save

	in := cfg.DefaultInput()
	in.Name = name
	applyTaskFlags(cmd, &in)

	t, err := tr.Add(in)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Added task #%d: %s", t.ID, t.Name)
	output.Messagef(os.Stdout, "  %s | %s | priority %s | energy %s | %s",
		t.Kind, output.FormatMinutes(t.Duration), t.Priority, t.Energy, t.Category)
	return nil
}

// resolveAddName returns the task name from either the positional arg or --name flag.
func resolveAddName(cmd *cobra.Command, args []string) (string, error) {
	flagName, _ := cmd.Flags().GetString("name")
	hasPositional := len(args) > 0
	hasFlag := flagName != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"name provided both as argument and --name flag; use one or the other")
	case hasPositional:
		return args[0], nil
	case hasFlag:
		return flagName, nil
	default:
		return "", task.ValidateName()
	}
}

// joinOrDash joins values for display, or returns "--" when there are none.
func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "--"
	}
	return strings.Join(values, ", ")
}
