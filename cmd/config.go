package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jackwu/notepad/config"
	"github.com/jackwu/notepad/history"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the editor configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file and create the data files",
	Long: `Write the default config file (unless it exists, see --force), then
create the recent-files database and the log file it points to.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd.OutOrStdout(), configFile(), forceInit)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", configFile(), data)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
}

func configFile() string {
	if configPath != "" {
		return configPath
	}
	return config.Path()
}

func reportOK(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, okStyle.Render("[ok]"), fmt.Sprintf(format, args...))
}

func reportFail(w io.Writer, err error) error {
	fmt.Fprintln(w, failStyle.Render("[fail]"), err)
	return err
}

// runInit performs first-time setup, reporting each step on w.
func runInit(w io.Writer, path string, force bool) error {
	cfg := config.Default()

	_, err := os.Stat(path)
	switch {
	case err == nil && !force:
		loaded, err := config.Load(path)
		if err != nil {
			return reportFail(w, err)
		}
		cfg = loaded
		reportOK(w, "config exists at %s (use --force to overwrite)", path)
	case err == nil || errors.Is(err, os.ErrNotExist):
		if err := config.Save(path, cfg); err != nil {
			return reportFail(w, fmt.Errorf("cannot write config: %w", err))
		}
		reportOK(w, "config written to %s", path)
	default:
		return reportFail(w, err)
	}

	if cfg.History.Disabled {
		reportOK(w, "recent files disabled")
	} else {
		h, err := history.Open(cfg.History.Path, cfg.History.Limit)
		if err != nil {
			return reportFail(w, err)
		}
		h.Close()
		reportOK(w, "recent files stored in %s", cfg.History.Path)
	}

	f, err := openLogFile(cfg.LogFile)
	if err != nil {
		return reportFail(w, err)
	}
	f.Close()
	reportOK(w, "logging to %s", cfg.LogFile)
	return nil
}
