package task

import (
	"strconv"
	"strings"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
)

// CustomDuration is the duration choice that defers to Input.CustomDuration.
const CustomDuration = "custom"

// DefaultDuration is used when a custom duration is not a positive integer.
const DefaultDuration = 30

// DefaultDurations are the preset duration choices, in minutes.
var DefaultDurations = []int{5, 10, 15, 30, 45, 60, 90, 120}

// Input is the raw, user-supplied form of a task. Add and Edit validate it
// into Fields before touching any state.
type Input struct {
	Name           string
	Kind           string
	Duration       string // a preset in minutes, or CustomDuration
	CustomDuration string
	Priority       string
	Energy         string
	Category       string
	StallReason    string // only applied by Edit, and only to stalled tasks
}

// Fields is a validated Input.
type Fields struct {
	Name        string
	Kind        Kind
	Duration    int
	Priority    Level
	Energy      Level
	Category    string
	StallReason string
}

// InputFrom returns the Input that reproduces t, so callers can override a
// few fields and hand the result to Edit.
func InputFrom(t Task) Input {
	return Input{
		Name:           t.Name,
		Kind:           string(t.Kind),
		Duration:       CustomDuration,
		CustomDuration: strconv.Itoa(t.Duration),
		Priority:       string(t.Priority),
		Energy:         string(t.Energy),
		Category:       t.Category,
		StallReason:    t.StallReason,
	}
}

// Validate checks every field and resolves the duration against presets.
func (in Input) Validate(presets []int) (Fields, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Fields{}, ValidateName()
	}
	kind, ok := ParseKind(in.Kind)
	if !ok {
		return Fields{}, ValidateKind(in.Kind)
	}
	priority, ok := ParseLevel(in.Priority)
	if !ok {
		return Fields{}, ValidateLevel(clierr.InvalidPriority, "priority", in.Priority)
	}
	energy, ok := ParseLevel(in.Energy)
	if !ok {
		return Fields{}, ValidateLevel(clierr.InvalidEnergy, "energy", in.Energy)
	}
	duration, err := ResolveDuration(in.Duration, in.CustomDuration, presets)
	if err != nil {
		return Fields{}, err
	}
	return Fields{
		Name:        name,
		Kind:        kind,
		Duration:    duration,
		Priority:    priority,
		Energy:      energy,
		Category:    NormalizeCategory(in.Category),
		StallReason: strings.TrimSpace(in.StallReason),
	}, nil
}

// ResolveDuration turns a duration choice into minutes. A preset must be one
// of presets; CustomDuration parses custom and falls back to DefaultDuration
// when it is not a positive integer.
func ResolveDuration(choice, custom string, presets []int) (int, error) {
	choice = strings.TrimSpace(choice)
	if strings.EqualFold(choice, CustomDuration) {
		n, err := strconv.Atoi(strings.TrimSpace(custom))
		if err != nil || n <= 0 {
			return DefaultDuration, nil
		}
		return n, nil
	}

	n, err := strconv.Atoi(choice)
	if err != nil {
		return 0, ValidateDuration(choice, presets)
	}
	for _, p := range presets {
		if p == n {
			return n, nil
		}
	}
	return 0, ValidateDuration(choice, presets)
}

// ValidateName returns the error for an empty task name.
func ValidateName() *clierr.Error {
	return clierr.New(clierr.InvalidName, "task name is required")
}

// ValidateKind returns the error for an unknown task kind.
func ValidateKind(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidKind, "invalid task type %q", input).
		WithDetails(map[string]any{
			"type":    input,
			"allowed": []string{string(OneOff), string(Recurring)},
		})
}

// ValidateLevel returns the error for an unknown priority or energy level.
func ValidateLevel(code, field, input string) *clierr.Error {
	return clierr.Newf(code, "invalid %s %q", field, input).
		WithDetails(map[string]any{
			field:     input,
			"allowed": Levels,
		})
}

// ValidateDuration returns the error for a duration choice outside the presets.
func ValidateDuration(input string, presets []int) *clierr.Error {
	return clierr.Newf(clierr.InvalidDuration, "invalid duration %q (use a preset or %q)", input, CustomDuration).
		WithDetails(map[string]any{
			"duration": input,
			"allowed":  presets,
		})
}

// ValidateTaskID returns the error for unparseable task ID input.
func ValidateTaskID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// NotFound returns the error for an unknown task ID.
func NotFound(id int64) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: #%d", id).
		WithDetails(map[string]any{"id": id})
}
