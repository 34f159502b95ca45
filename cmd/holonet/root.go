package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/holonet/internal/adapter"
	"github.com/mmcdole/holonet/internal/adapter/source/swapi"
	"github.com/mmcdole/holonet/internal/i18n"
	"github.com/mmcdole/holonet/internal/metrics"
	"github.com/mmcdole/holonet/internal/search"
	"github.com/mmcdole/holonet/internal/session"
	"github.com/mmcdole/holonet/internal/store"
	"github.com/mmcdole/holonet/internal/tui"
)

// Global flag values.
var (
	flagConfig  string
	flagBaseURL string
	flagLocale  string
)

var rootCmd = &cobra.Command{
	Use:   "holonet",
	Short: "Browse the Star Wars catalog from the terminal",
	Long: `holonet is a terminal browser for the Star Wars catalog API.
It lists films, people, planets, species, starships and vehicles,
and follows the relations between them.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBrowser,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.config/holonet/config.yaml)")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "catalog API base URL (overrides config)")
	rootCmd.Flags().StringVar(&flagLocale, "locale", "", "UI locale, e.g. en-US or nl-NL (overrides config)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(fakeAPICmd)
}

// loadConfig reads the config file named by --config, or the default one
func loadConfig() (*adapter.Config, error) {
	cfg, err := adapter.LoadConfig(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// setupLogger returns the file logger, or a null logger when the log file
// cannot be opened
func setupLogger(cfg *adapter.Config) (*slog.Logger, io.Closer) {
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		return adapter.NullLogger(), io.NopCloser(nil)
	}
	return logger, closer
}

// sessionPath returns the expanded session database path
func sessionPath(cfg *adapter.Config) (string, error) {
	return adapter.ExpandPath(cfg.Session.Path)
}

// pickLocale prefers the flag, then the saved choice, then config, then
// the environment
func pickLocale(cfg *adapter.Config, sess *session.Store) *i18n.Translator {
	saved, _ := sess.Locale()
	return i18n.New(i18n.Match(flagLocale, saved, cfg.UI.Locale, i18n.EnvLocale()))
}

func runBrowser(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("holonet needs an interactive terminal")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagBaseURL != "" {
		cfg.API.BaseURL = flagBaseURL
	}

	logger, logCloser := setupLogger(cfg)
	defer logCloser.Close()
	slog.SetDefault(logger)
	logger.Info("starting holonet", "version", Version, "base_url", cfg.API.BaseURL)

	path, err := sessionPath(cfg)
	if err != nil {
		return err
	}
	sess, err := session.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer sess.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rec := metrics.NewRecorder()
	if cfg.Metrics.Listen != "" {
		go func() {
			if err := rec.Serve(ctx, cfg.Metrics.Listen, logger); err != nil {
				logger.Error("metrics listener stopped", "error", err)
			}
		}()
	}

	client, err := swapi.NewClient(cfg.API.BaseURL, logger,
		swapi.WithTimeout(cfg.API.Timeout),
		swapi.WithObserver(rec),
	)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	reg, err := store.NewRegistry(store.Sources{
		Films:     client.Films(),
		People:    client.People(),
		Planets:   client.Planets(),
		Species:   client.Species(),
		Starships: client.Starships(),
		Vehicles:  client.Vehicles(),
	}, store.Options{
		TTL:         cfg.Cache.TTL,
		RowsPerPage: cfg.UI.RowsPerPage,
		Logger:      logger,
		Observer:    rec,
	})
	if err != nil {
		return fmt.Errorf("failed to create stores: %w", err)
	}

	model := tui.NewModel(reg, tui.Options{
		Session:            sess,
		Translator:         pickLocale(cfg, sess),
		Jump:               search.NewService(search.DefaultLimit, logger),
		RelatedRowsPerPage: cfg.UI.RelatedRowsPerPage,
		Logger:             logger,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	logger.Info("starting TUI")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
