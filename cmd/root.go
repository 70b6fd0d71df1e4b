package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackwu/notepad/config"
	"github.com/jackwu/notepad/history"
	"github.com/jackwu/notepad/model"
	"github.com/jackwu/notepad/textfile"
	"github.com/jackwu/notepad/tui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	logFile    string
	lineEnding string
	noHistory  bool
	version    = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "notepad [file]",
	Short: "A minimal terminal text editor",
	Long: `A minimal text editor for plain text documents.

Opens the given file, or an empty untitled document. Unsaved changes are
never lost silently: New, Open, Exit and closing the window all ask first.

Keys:
  Ctrl+N  new          Ctrl+S     save
  Ctrl+O  open         F12/Alt+S  save as
  Ctrl+R  open recent  Ctrl+Q     exit
  F10/Esc menu         F1         about`,
	Args:         cobra.MaximumNArgs(1),
	Version:      version,
	SilenceUsage: true,
	RunE:         runEditor,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/notepad/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of the configured one")
	rootCmd.Flags().StringVar(&lineEnding, "line-ending", "", "line ending for new documents (crlf or lf)")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not read or update the recent-files list")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and applies the flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("line-ending") {
		cfg.LineEnding = lineEnding
	}
	if flags.Changed("no-history") && noHistory {
		cfg.History.Disabled = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg.LogFile, verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	store := textfile.OS{}
	session, err := openSession(store, cfg, args)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Store:           store,
		Defaults:        defaultsFrom(cfg),
		Filter:          cfg.Filter(),
		ShowLineNumbers: cfg.ShowLineNumbers,
		Version:         version,
		StartDir:        ".",
	}
	if session.Path() != "" {
		opts.StartDir = filepath.Dir(session.Path())
	}

	if !cfg.History.Disabled {
		h, err := history.Open(cfg.History.Path, cfg.History.Limit)
		if err != nil {
			log.Warn().Err(err).Msg("recent files unavailable")
		} else {
			defer h.Close()
			opts.Recent = h
			if session.Path() != "" {
				if err := h.Record(session.Path(), session.ID); err != nil {
					log.Warn().Err(err).Msg("history update failed")
				}
			}
		}
	}

	log.Info().Str("session", session.ID).Str("path", session.Path()).Msg("starting editor")
	p := tea.NewProgram(tui.NewModel(session, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}

func defaultsFrom(cfg *config.Config) model.Defaults {
	return model.Defaults{Name: cfg.DefaultName, LineEnding: cfg.NewlineStyle()}
}

// openSession creates the startup session. A file argument is loaded; one
// that does not exist yet gives an empty document bound to that path.
func openSession(store textfile.Store, cfg *config.Config, args []string) (*model.Session, error) {
	session := model.NewSession(store, defaultsFrom(cfg))
	if len(args) == 0 {
		return session, nil
	}
	path := args[0]
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		session.Bind(path)
		return session, nil
	}
	if err := session.Open(path); err != nil {
		return nil, err
	}
	return session, nil
}
