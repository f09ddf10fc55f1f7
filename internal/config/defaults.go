// Package config handles the chaoscard data directory configuration.
package config

const (
	// DefaultDir is the data directory name looked up from the working directory.
	DefaultDir = ".chaoscard"
	// DefaultName is the name given to a data directory created without one.
	DefaultName = "chaoscard"
	// DefaultDBFile is the SQLite database file used when storage.path is empty.
	DefaultDBFile = "chaoscard.db"

	// DefaultKind is the default kind for new tasks.
	DefaultKind = "once"
	// DefaultDuration is the default duration choice for new tasks.
	DefaultDuration = "15"
	// DefaultPriority is the default priority for new tasks.
	DefaultPriority = "high"
	// DefaultEnergy is the default energy for new tasks.
	DefaultEnergy = "high"
	// DefaultRedraws is the redraw budget of each draw.
	DefaultRedraws = 5
	// DefaultShuffleMS is how long the TUI shuffles the card fan.
	DefaultShuffleMS = 1200

	// ConfigFileName is the name of the config file within the data directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)

// Default slice values for a new config (slices cannot be const).
var (
	DefaultDurations   = []int{5, 10, 15, 30, 45, 60, 90, 120}
	DefaultTimeOptions = []int{15, 30, 60, 120}
)
