package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xiaofuou6/chaos-card-machine/internal/config"
	"github.com/xiaofuou6/chaos-card-machine/internal/kv"
	"github.com/xiaofuou6/chaos-card-machine/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new data directory",
	Long: `Creates a data directory with config.yml. Tasks are stored next to it
(dir backend) or in a SQLite database (sqlite backend).`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "", "tracker name (defaults to current directory name)")
	initCmd.Flags().String("backend", kv.BackendDir, "storage backend ("+strings.Join(kv.Backends, ", ")+")")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = os.Getenv(EnvDir)
	}
	if dir == "" {
		dir = config.DefaultDir
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		name = filepath.Base(cwd)
	}

	backend, _ := cmd.Flags().GetString("backend")
	cfg, err := config.Init(dir, name, backend)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status":  "initialized",
			"dir":     cfg.Dir(),
			"name":    cfg.Name,
			"config":  cfg.ConfigPath(),
			"backend": cfg.Storage.Backend,
			"storage": cfg.StoragePath(),
		})
	}

	output.Messagef(os.Stdout, "Initialized %q in %s", cfg.Name, cfg.Dir())
	output.Messagef(os.Stdout, "  Config:  %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Storage: %s (%s)", cfg.StoragePath(), cfg.Storage.Backend)
	output.Messagef(os.Stdout, "  Hint:    Add a task with: chaoscard add \"Read a chapter\" --duration 30")
	return nil
}
