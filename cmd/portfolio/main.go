// Command portfolio runs the portfolio site in the terminal and manages its
// feature flags.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wilbur182/portfolio/internal/app"
	"github.com/wilbur182/portfolio/internal/config"
	"github.com/wilbur182/portfolio/internal/features"
	"github.com/wilbur182/portfolio/internal/keymap"
	"github.com/wilbur182/portfolio/internal/markdown"
	"github.com/wilbur182/portfolio/internal/plugin"
	"github.com/wilbur182/portfolio/internal/plugins/crew"
	"github.com/wilbur182/portfolio/internal/plugins/notes"
	"github.com/wilbur182/portfolio/internal/plugins/pages"
	"github.com/wilbur182/portfolio/internal/storage"
	"github.com/wilbur182/portfolio/internal/styles"
	"github.com/wilbur182/portfolio/internal/version"
)

const logFile = "portfolio.log"

var (
	configPath string
	debugLog   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := version.Effective(version.Version)
	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Portfolio site in the terminal",
		Version:      v,
		SilenceUsage: true,
		RunE:         runSite,
	}
	tmpl := "portfolio version {{.Version}}\n"
	if version.IsDevelopment(v) {
		tmpl = "portfolio version {{.Version}} (development build)\n"
	}
	root.SetVersionTemplate(tmpl)
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/portfolio/config.json)")
	root.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable debug logging")
	root.AddCommand(newFlagsCmd(), newStorageCmd(), newConfigCmd())
	return root
}

// session holds everything a command needs, opened from the config.
type session struct {
	cfg     *config.Config
	storage storage.Storage
	flags   *features.Context
	logger  *slog.Logger
}

func (s *session) Close() {
	if s.storage == nil {
		return
	}
	if err := s.storage.Close(); err != nil {
		s.logger.Warn("closing storage", "err", err)
	}
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if debugLog {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// openSession loads config, opens storage and resolves flags. Storage that
// cannot be opened leaves the session with defaults and environment only.
func openSession(logger *slog.Logger) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	st, err := storage.Open(cfg.Storage.Backend, cfg.StorageDir(), logger)
	if err != nil {
		logger.Warn("storage unavailable, changes will not persist", "backend", cfg.Storage.Backend, "err", err)
		st = nil
	}

	// A store over nil storage reads nothing and reports every save as
	// unavailable.
	flags := features.NewContext(features.Options{
		Env:    features.NewEnvResolver(cfg.Features.EnvPrefix),
		Store:  features.NewStore(st),
		Logger: logger,
	})
	return &session{cfg: cfg, storage: st, flags: flags, logger: logger}, nil
}

// runSite runs the TUI, or prints the flag table when stdout is not a
// terminal.
func runSite(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		s, err := openSession(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		defer s.Close()
		return printFlagTable(cmd.OutOrStdout(), s)
	}

	// The TUI owns the terminal; logs go to a file next to the config.
	logOut := io.Discard
	if dir := config.ConfigDir(); dir != "" {
		if err := os.MkdirAll(dir, 0755); err == nil {
			if f, err := os.OpenFile(filepath.Join(dir, logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
				defer f.Close()
				logOut = f
			}
		}
	}
	logger := newLogger(logOut)

	s, err := openSession(logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.cfg.UI.Theme != "" && !styles.IsValidTheme(s.cfg.UI.Theme) {
		logger.Warn("unknown theme, using default", "theme", s.cfg.UI.Theme, "available", styles.ListThemes())
	}
	styles.ApplyTheme(s.cfg.UI.Theme)

	registry := plugin.NewRegistry(&plugin.Context{
		Config:   s.cfg,
		Flags:    s.flags,
		Storage:  s.storage,
		Markdown: markdown.NewRenderer(logger),
		Logger:   logger,
	})

	registry.Register(pages.About())
	registry.Register(pages.Work())
	registry.Register(pages.Consulting())
	registry.Register(notes.New())
	registry.Register(crew.New())
	for id, reason := range registry.Unavailable() {
		logger.Warn("page unavailable", "id", id, "reason", reason)
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, action := range s.cfg.Keymap.Overrides {
		if !km.SetUserOverride(key, keymap.Action(action)) {
			logger.Warn("ignoring key override for unknown action", "key", key, "action", action)
		}
	}

	logger.Info("starting", "version", version.Effective(version.Version), "deployment", s.cfg.Deployment)
	p := tea.NewProgram(app.New(registry, km, s.flags, s.cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
