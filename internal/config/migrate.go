package config

import (
	"fmt"
	"slices"
)

// migrate upgrades a config from its current version to CurrentVersion.
// Each migration function transforms the config one version forward.
// Returns an error if the config version is newer than what this binary supports.
func migrate(cfg *Config) error {
	if cfg.Version == CurrentVersion {
		return nil
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf(
			"%w: config version %d is newer than supported version %d (upgrade chaoscard)",
			ErrInvalid, cfg.Version, CurrentVersion,
		)
	}
	if cfg.Version < 1 {
		return fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	}

	for cfg.Version < CurrentVersion {
		fn, ok := migrations[cfg.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		if err := fn(cfg); err != nil {
			return fmt.Errorf("migrating config from v%d: %w", cfg.Version, err)
		}
	}

	return nil
}

// migrations maps each version to the function that migrates it to the next version.
// The migration function must increment cfg.Version after a successful migration.
var migrations = map[int]func(*Config) error{
	1: migrateV1ToV2,
}

// migrateV1ToV2 adds the draw and tui sections. v1 configs had a fixed
// redraw budget and no shuffle setting.
func migrateV1ToV2(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	if cfg.Draw.Redraws == 0 {
		cfg.Draw.Redraws = DefaultRedraws
	}
	if len(cfg.Draw.TimeOptions) == 0 {
		cfg.Draw.TimeOptions = slices.Clone(DefaultTimeOptions)
	}
	if cfg.TUI.ShuffleMS == 0 {
		cfg.TUI.ShuffleMS = DefaultShuffleMS
	}
	if len(cfg.Durations) == 0 {
		cfg.Durations = slices.Clone(DefaultDurations)
	}
	cfg.Version = 2
	return nil
}
