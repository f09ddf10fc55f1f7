package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xiaofuou6/chaos-card-machine/internal/config"
	"github.com/xiaofuou6/chaos-card-machine/internal/draw"
	"github.com/xiaofuou6/chaos-card-machine/internal/output"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw a random task that fits your free time",
	Long: `Draws a random task whose duration fits --time minutes. Stalled and
completed tasks are never drawn; recurring tasks already done today only with
--allow-completed.

On a terminal an interactive prompt follows: c completes the task, r redraws
(a limited number of times per draw), q abandons. Otherwise the draw is printed
and the command exits.`,
	Args: cobra.NoArgs,
	RunE: runDraw,
}

func init() {
	drawCmd.Flags().IntP("time", "t", 0, "available minutes (required)")
	drawCmd.Flags().Bool("allow-completed", false, "include recurring tasks already done today")
	drawCmd.Flags().String("priority", draw.All, "priority filter (all, low, medium, high)")
	drawCmd.Flags().String("energy", draw.All, "energy filter (all, low, medium, high)")
	drawCmd.Flags().String("category", draw.All, "category filter")
	drawCmd.Flags().Uint64("seed", 0, "random seed for a reproducible draw")
	drawCmd.Flags().Bool("no-interactive", false, "print the draw and exit even on a terminal")
	_ = drawCmd.MarkFlagRequired("time")
	rootCmd.AddCommand(drawCmd)
}

// newSession builds a draw session over tr. A zero seed is replaced by the
// current time.
func newSession(cfg *config.Config, tr *tracker.Tracker, seed uint64) *draw.Session {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec // sign is irrelevant for a seed
	}
	return draw.NewSession(tr, draw.NewRand(seed), cfg.Draw.Redraws).
		WithRecorder(activityLog(cfg))
}

func drawCriteria(cmd *cobra.Command, cfg *config.Config) (draw.Criteria, error) {
	minutes, _ := cmd.Flags().GetInt("time")
	priority, _ := cmd.Flags().GetString("priority")
	energy, _ := cmd.Flags().GetString("energy")
	category, _ := cmd.Flags().GetString("category")

	filter, err := draw.ParseFilter(priority, energy, category)
	if err != nil {
		return draw.Criteria{}, err
	}

	allow := cfg.Draw.AllowCompleted
	if cmd.Flags().Changed("allow-completed") {
		allow, _ = cmd.Flags().GetBool("allow-completed")
	}

	c := draw.Criteria{AvailableTime: minutes, AllowCompleted: allow, Filter: filter}
	return c, c.Validate()
}

func runDraw(cmd *cobra.Command, _ []string) error {
	cfg, tr, store, err := openTracker()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // writes are flushed per save

	c, err := drawCriteria(cmd, cfg)
	if err != nil {
		return err
	}

	seed, _ := cmd.Flags().GetUint64("seed")
	session := newSession(cfg, tr, seed)
	t, err := session.Draw(c)
	if err != nil {
		return err
	}

	noInteractive, _ := cmd.Flags().GetBool("no-interactive")
	interactive := !noInteractive && outputFormat() != output.FormatJSON &&
		term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int

	if !interactive {
		return printDraw(session, t)
	}
	return drawLoop(session, os.Stdin, os.Stdout, os.Stderr)
}

// drawResult is the JSON form of a draw.
type drawResult struct {
	Session    string        `json:"session"`
	Task       task.Task     `json:"task"`
	Remaining  int           `json:"redraws_remaining"`
	Candidates int           `json:"candidates"`
	Criteria   draw.Criteria `json:"criteria"`
}

func printDraw(s *draw.Session, t task.Task) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, drawResult{
			Session:    s.ID(),
			Task:       t,
			Remaining:  s.Remaining(),
			Candidates: len(s.Candidates()),
			Criteria:   s.Criteria(),
		})
	}
	if outputFormat() == output.FormatCompact {
		output.TaskCompact(os.Stdout, []task.Task{t})
		return nil
	}
	output.DrawCard(os.Stdout, t, -1)
	return nil
}

// drawLoop reads one command per line until the draw is completed or
// abandoned. Redraw failures go to errOut and the current card is kept.
func drawLoop(s *draw.Session, in io.Reader, out, errOut io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		cur, ok := s.Current()
		if !ok {
			return nil
		}
		output.DrawCard(out, cur, s.Remaining())
		fmt.Fprintf(out, "[c]omplete  [r]edraw (%d left)  [q]uit > ", s.Remaining())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			s.Abandon()
			fmt.Fprintln(out)
			return nil
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "c", "complete", "done":
			t, err := s.Complete()
			if err != nil {
				return err
			}
			output.Messagef(out, "Completed task #%d: %s", t.ID, t.Name)
			return nil
		case "r", "redraw":
			if _, err := s.Redraw(); err != nil {
				fmt.Fprintln(errOut, err)
			}
		case "q", "quit", "abandon":
			s.Abandon()
			return nil
		default:
			fmt.Fprintln(errOut, "Unknown command; use c, r or q.")
		}
	}
}
