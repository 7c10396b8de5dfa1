// Package cli wires the cobra command tree. The bare command starts the
// interactive TUI; subcommands drive the same state core for scripts.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"bookdeck/internal/api"
	"bookdeck/internal/config"
	"bookdeck/internal/logger"
	"bookdeck/internal/state"
	"bookdeck/internal/tui"
)

type App struct {
	APIBase string
	JSON    bool
}

func (a *App) loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if strings.TrimSpace(a.APIBase) != "" {
		cfg.APIBase = strings.TrimSpace(a.APIBase)
	}
	return cfg, nil
}

func (a *App) orchestrator() (state.Orchestrator, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return state.Orchestrator{}, err
	}
	return state.Orchestrator{API: api.New(cfg.APIBase)}, nil
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "bookdeck",
		Short:        "Terminal client for a paginated book collection",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  bookdeck

  # Scriptable commands
  bookdeck list --page 2
  bookdeck add --title "Dune" --author "Frank Herbert" --year 1965 --genre "Science fiction" --status to-read
  bookdeck rm 4f1c0d4e --yes
  bookdeck stats
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIBase, "api", "", "base URL of the book service (overrides config)")
	cmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "print machine-readable JSON")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	return cmd
}

func runTUI(app *App) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()
	return tui.Run(cfg, log)
}
