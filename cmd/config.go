package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/config"
	"github.com/xiaofuou6/chaos-card-machine/internal/output"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key. Values set here
// are checked again by Config.Validate before saving.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func stringAccessor(field func(*config.Config) *string) configAccessor {
	return configAccessor{
		get:      func(c *config.Config) any { return *field(c) },
		set:      func(c *config.Config, v string) error { *field(c) = v; return nil },
		writable: true,
	}
}

func intAccessor(key string, field func(*config.Config) *int) configAccessor {
	return configAccessor{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return clierr.Newf(clierr.InvalidInput, "invalid %s %q: must be an integer", key, v)
			}
			*field(c) = n
			return nil
		},
		writable: true,
	}
}

func minutesAccessor(key string, field func(*config.Config) *[]int) configAccessor {
	return configAccessor{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v string) error {
			values, err := parseMinutes(v)
			if err != nil {
				return clierr.Newf(clierr.InvalidInput, "invalid %s %q: %v", key, v, err)
			}
			*field(c) = values
			return nil
		},
		writable: true,
	}
}

func levelAccessor(key string, field func(*config.Config) *string) configAccessor {
	return configAccessor{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v string) error {
			level, ok := task.ParseLevel(v)
			if !ok {
				return clierr.Newf(clierr.InvalidInput,
					"invalid %s %q; allowed: low, medium, high", key, v)
			}
			*field(c) = string(level)
			return nil
		},
		writable: true,
	}
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"name":            stringAccessor(func(c *config.Config) *string { return &c.Name }),
		"storage.backend": {get: func(c *config.Config) any { return c.Storage.Backend }},
		"storage.path":    {get: func(c *config.Config) any { return c.StoragePath() }},
		"defaults.kind": {
			get: func(c *config.Config) any { return c.Defaults.Kind },
			set: func(c *config.Config, v string) error {
				kind, ok := task.ParseKind(v)
				if !ok {
					return task.ValidateKind(v)
				}
				c.Defaults.Kind = string(kind)
				return nil
			},
			writable: true,
		},
		"defaults.duration": stringAccessor(func(c *config.Config) *string { return &c.Defaults.Duration }),
		"defaults.priority": levelAccessor("defaults.priority", func(c *config.Config) *string { return &c.Defaults.Priority }),
		"defaults.energy":   levelAccessor("defaults.energy", func(c *config.Config) *string { return &c.Defaults.Energy }),
		"defaults.category": stringAccessor(func(c *config.Config) *string { return &c.Defaults.Category }),
		"durations":         minutesAccessor("durations", func(c *config.Config) *[]int { return &c.Durations }),
		"draw.redraws":      intAccessor("draw.redraws", func(c *config.Config) *int { return &c.Draw.Redraws }),
		"draw.time_options": minutesAccessor("draw.time_options", func(c *config.Config) *[]int { return &c.Draw.TimeOptions }),
		"draw.allow_completed": {
			get: func(c *config.Config) any { return c.Draw.AllowCompleted },
			set: func(c *config.Config, v string) error {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidInput, "invalid draw.allow_completed %q: must be true or false", v)
				}
				c.Draw.AllowCompleted = b
				return nil
			},
			writable: true,
		},
		"tui.shuffle_ms": intAccessor("tui.shuffle_ms", func(c *config.Config) *int { return &c.TUI.ShuffleMS }),
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"name",
		"storage.backend",
		"storage.path",
		"defaults.kind",
		"defaults.duration",
		"defaults.priority",
		"defaults.energy",
		"defaults.category",
		"durations",
		"draw.redraws",
		"draw.time_options",
		"draw.allow_completed",
		"tui.shuffle_ms",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	// Table mode: key-value pairs.
	for _, key := range allConfigKeys() {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-22s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return unknownConfigKey(key)
	}

	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return unknownConfigKey(key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func unknownConfigKey(key string) error {
	keys := allConfigKeys()
	slices.Sort(keys)
	return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key).
		WithDetails(map[string]any{"allowed": keys})
}

// parseMinutes parses a comma-separated list of minutes.
func parseMinutes(v string) ([]int, error) {
	parts := strings.Split(v, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", p)
		}
		values = append(values, n)
	}
	return values, nil
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []string:
		return joinOrDash(v)
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.Itoa(n)
		}
		return joinOrDash(parts)
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
