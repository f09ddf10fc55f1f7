package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/kv"
	"github.com/xiaofuou6/chaos-card-machine/internal/task"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no chaoscard data directory found (run 'chaoscard init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the data directory configuration.
type Config struct {
	Version   int            `yaml:"version"`
	Name      string         `yaml:"name"`
	Storage   StorageConfig  `yaml:"storage"`
	Defaults  DefaultsConfig `yaml:"defaults"`
	Durations []int          `yaml:"durations"`
	Draw      DrawConfig     `yaml:"draw"`
	TUI       TUIConfig      `yaml:"tui"`

	// dir is the absolute path to the data directory (not serialized).
	dir string `yaml:"-"`
}

// StorageConfig selects the kv backend.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"` // relative to the data directory
}

// DefaultsConfig holds default values for new tasks.
type DefaultsConfig struct {
	Kind     string `yaml:"kind"`
	Duration string `yaml:"duration"`
	Priority string `yaml:"priority"`
	Energy   string `yaml:"energy"`
	Category string `yaml:"category,omitempty"`
}

// DrawConfig holds the random draw settings.
type DrawConfig struct {
	Redraws        int   `yaml:"redraws"`
	TimeOptions    []int `yaml:"time_options"`
	AllowCompleted bool  `yaml:"allow_completed"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	ShuffleMS int `yaml:"shuffle_ms"`
}

// Dir returns the absolute path to the data directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the data directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// StoragePath returns where the backend keeps its data: the data directory
// itself for the dir backend, a database file for SQLite.
func (c *Config) StoragePath() string {
	path := c.Storage.Path
	if path == "" && c.Storage.Backend == kv.BackendSQLite {
		path = DefaultDBFile
	}
	if path == "" {
		return c.dir
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.dir, path)
}

// WatchPaths returns the directories whose changes mean the stored data
// changed: the data directory, plus the database directory when it differs.
func (c *Config) WatchPaths() []string {
	paths := []string{c.dir}
	if c.Storage.Backend == kv.BackendSQLite {
		if dbDir := filepath.Dir(c.StoragePath()); dbDir != c.dir {
			paths = append(paths, dbDir)
		}
	}
	return paths
}

// OpenStore opens the configured kv backend.
func (c *Config) OpenStore() (kv.Backend, error) {
	return kv.Open(c.Storage.Backend, c.StoragePath())
}

// DefaultInput returns a task.Input prefilled with the configured defaults.
func (c *Config) DefaultInput() task.Input {
	return task.Input{
		Kind:     c.Defaults.Kind,
		Duration: c.Defaults.Duration,
		Priority: c.Defaults.Priority,
		Energy:   c.Defaults.Energy,
		Category: c.Defaults.Category,
	}
}

// ShuffleDuration returns how long the TUI shuffle animation runs.
func (c *Config) ShuffleDuration() time.Duration {
	return time.Duration(c.TUI.ShuffleMS) * time.Millisecond
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	return &Config{
		Version: CurrentVersion,
		Name:    name,
		Storage: StorageConfig{Backend: kv.BackendDir},
		Defaults: DefaultsConfig{
			Kind:     DefaultKind,
			Duration: DefaultDuration,
			Priority: DefaultPriority,
			Energy:   DefaultEnergy,
		},
		Durations: slices.Clone(DefaultDurations),
		Draw: DrawConfig{
			Redraws:     DefaultRedraws,
			TimeOptions: slices.Clone(DefaultTimeOptions),
		},
		TUI: TUIConfig{ShuffleMS: DefaultShuffleMS},
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if !slices.Contains(kv.Backends, c.Storage.Backend) {
		return fmt.Errorf("%w: unknown storage.backend %q", ErrInvalid, c.Storage.Backend)
	}
	if err := validateMinutes("durations", c.Durations); err != nil {
		return err
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	if c.Draw.Redraws < 0 {
		return fmt.Errorf("%w: draw.redraws must be >= 0", ErrInvalid)
	}
	if err := validateMinutes("draw.time_options", c.Draw.TimeOptions); err != nil {
		return err
	}
	if c.TUI.ShuffleMS < 0 {
		return fmt.Errorf("%w: tui.shuffle_ms must be >= 0", ErrInvalid)
	}
	return nil
}

func (c *Config) validateDefaults() error {
	if _, ok := task.ParseKind(c.Defaults.Kind); !ok {
		return fmt.Errorf("%w: defaults.kind %q is not once or regular", ErrInvalid, c.Defaults.Kind)
	}
	if _, ok := task.ParseLevel(c.Defaults.Priority); !ok {
		return fmt.Errorf("%w: defaults.priority %q is not low, medium or high", ErrInvalid, c.Defaults.Priority)
	}
	if _, ok := task.ParseLevel(c.Defaults.Energy); !ok {
		return fmt.Errorf("%w: defaults.energy %q is not low, medium or high", ErrInvalid, c.Defaults.Energy)
	}
	if _, err := task.ResolveDuration(c.Defaults.Duration, "", c.Durations); err != nil {
		return fmt.Errorf("%w: defaults.duration %q is not in durations", ErrInvalid, c.Defaults.Duration)
	}
	return nil
}

func validateMinutes(field string, values []int) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalid, field)
	}
	seen := make(map[int]bool, len(values))
	for _, v := range values {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive minutes, got %d", ErrInvalid, field, v)
		}
		if seen[v] {
			return fmt.Errorf("%w: %s contains duplicate %d", ErrInvalid, field, v)
		}
		seen[v] = true
	}
	return nil
}

// Init creates a new data directory with default settings and the given
// backend. It refuses to overwrite an existing config.
func Init(dir, name, backend string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault(name)
	cfg.SetDir(absDir)
	if backend != "" {
		cfg.Storage.Backend = backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(cfg.ConfigPath()); err == nil {
		return nil, clierr.Newf(clierr.StoreAlreadyExists, "already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given data directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a data directory
// containing config.yml. Returns the absolute path to the data directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the data directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.StoreNotFound,
				"no chaoscard data directory found (run 'chaoscard init' to create one)")
		}
		dir = parent
	}
}
