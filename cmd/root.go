package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/careerpilot/internal/app"
	"github.com/abhisek/careerpilot/internal/auth"
	"github.com/abhisek/careerpilot/internal/catalog"
	"github.com/abhisek/careerpilot/internal/config"
	"github.com/abhisek/careerpilot/internal/roadmap"
	"github.com/abhisek/careerpilot/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "careerpilot",
	Short: "Career guidance in your terminal",
	Long:  "CareerPilot helps you explore career tracks and skill gaps, and walk interactive career roadmaps.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CAREERPILOT_DB env var)")
	rootCmd.Flags().Duration("delay", 0, "Simulated auth latency (overrides CAREERPILOT_AUTH_DELAY env var)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if f := cmd.Flags().Lookup("delay"); f != nil && f.Changed {
		d, _ := cmd.Flags().GetDuration("delay")
		if d < 0 {
			return config.Config{}, fmt.Errorf("--delay must not be negative, got %s", d)
		}
		cfg.AuthDelay = d
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the database named by the flags and environment.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openDB(cfg)
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "careerpilot")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	deps := app.Deps{SkipSplash: cfg.SkipSplash}
	if deps.Catalog, err = catalog.Default(); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if deps.Roadmap, err = roadmap.Default(); err != nil {
		return fmt.Errorf("load roadmap: %w", err)
	}

	// The app runs without persistence when the database cannot be opened.
	st, err := openDB(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
		fmt.Fprintln(os.Stderr, "Activity and roadmap progress will not be saved.")
	} else {
		defer st.Close()
		deps.Activity = st.ActivityRepo()
		deps.Progress = st.ProgressRepo()
	}

	opts := append(app.AuthOptions(deps.Activity),
		auth.WithDelay(cfg.AuthDelay),
		auth.WithAccount(cfg.DemoAccount),
	)
	deps.Auth = auth.NewManager(opts...)

	log.Printf("starting careerpilot %s", version)
	return app.Run(cmd.Context(), deps)
}

func openDB(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
