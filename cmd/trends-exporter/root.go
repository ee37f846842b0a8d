package main

import (
	"fmt"
	"os"

	"trends-exporter/internal/config"
	"trends-exporter/internal/logger"
	"trends-exporter/internal/trends"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Running it without a subcommand opens the GUI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends-exporter",
		Short: "Export trending searches per region to CSV",
		Long: `trends-exporter fetches the currently trending searches for a set of regions,
merges them into one table (one column per region) and writes it to
google_trends_<YYYYMMDD_HHMMSS>.csv in the chosen folder.

Run without arguments to open the desktop form.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			return runGUI(rt)
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to a YAML config file (default: XDG config dir)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewRegionsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtimeDeps bundles what every command needs after flag parsing.
type runtimeDeps struct {
	cfg        *config.Config
	configPath string
	log        logger.Logger
}

func loadRuntime(cmd *cobra.Command) (*runtimeDeps, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	manager := config.NewManager()
	cfg, err := manager.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Logger.Level
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Options{
		Level:  level,
		Format: cfg.Logger.Format,
		Output: cmd.ErrOrStderr(),
	})

	return &runtimeDeps{cfg: cfg, configPath: manager.Path(), log: log}, nil
}

func newProvider(rt *runtimeDeps) *trends.GoogleClient {
	return trends.NewGoogleClient(trends.GoogleConfig{
		Endpoint:  rt.cfg.Provider.Endpoint,
		Language:  rt.cfg.Provider.Language,
		Timeout:   rt.cfg.Provider.Timeout(),
		MaxTerms:  rt.cfg.Provider.MaxTerms,
		UserAgent: rt.cfg.Provider.UserAgent,
	}, rt.log)
}
