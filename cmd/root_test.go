package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackwu/notepad/config"
	"github.com/jackwu/notepad/model"
	"github.com/jackwu/notepad/textfile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// writeTestConfig writes a config that keeps every data file inside a
// temporary directory.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.LogFile = filepath.Join(dir, "logs", "notepad.log")
	cfg.History.Path = filepath.Join(dir, "data", "history.db")
	path := filepath.Join(dir, "config.yaml")
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		wantOut string
	}{
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantOut: version,
		},
		{
			name:    "help flag",
			args:    []string{"--help"},
			wantOut: "notepad [file]",
		},
		{
			name:    "too many files",
			args:    []string{"a.txt", "b.txt"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetArgs(tt.args)
			var stdout, stderr bytes.Buffer
			rootCmd.SetOut(&stdout)
			rootCmd.SetErr(&stderr)

			err := rootCmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("rootCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantOut != "" && !strings.Contains(stdout.String(), tt.wantOut) {
				t.Errorf("output %q does not contain %q", stdout.String(), tt.wantOut)
			}
		})
	}
}

func TestOpenSession(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(existing, []byte("a\nb"), 0644); err != nil {
		t.Fatal(err)
	}
	unreadable := filepath.Join(dir, "subdir.txt")
	if err := os.Mkdir(unreadable, 0755); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantPath    string
		wantContent string
		wantEnding  textfile.LineEnding
	}{
		{"no file", nil, false, "", "", textfile.CRLF},
		{"existing file", []string{existing}, false, existing, "a\nb", textfile.LF},
		{"missing file", []string{filepath.Join(dir, "new.txt")}, false, filepath.Join(dir, "new.txt"), "", textfile.CRLF},
		{"directory", []string{unreadable}, true, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := openSession(textfile.OS{}, cfg, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("openSession() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if s.Path() != tt.wantPath || s.Content() != tt.wantContent {
				t.Errorf("Path() = %q, Content() = %q", s.Path(), s.Content())
			}
			if s.LineEnding() != tt.wantEnding {
				t.Errorf("LineEnding() = %v, want %v", s.LineEnding(), tt.wantEnding)
			}
			if s.State() != model.Clean {
				t.Error("startup session should be clean")
			}
		})
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	configPath = writeTestConfig(t)
	t.Cleanup(func() {
		configPath, lineEnding, logFile, noHistory = "", "", "", false
	})

	c := &cobra.Command{}
	c.Flags().StringVar(&logFile, "log-file", "", "")
	c.Flags().StringVar(&lineEnding, "line-ending", "", "")
	c.Flags().BoolVar(&noHistory, "no-history", false, "")
	for name, value := range map[string]string{"line-ending": "lf", "no-history": "true"} {
		if err := c.Flags().Set(name, value); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := loadConfig(c)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.NewlineStyle() != textfile.LF {
		t.Errorf("NewlineStyle() = %v, want LF", cfg.NewlineStyle())
	}
	if !cfg.History.Disabled {
		t.Error("--no-history should disable history")
	}

	if err := c.Flags().Set("line-ending", "cr"); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(c); err == nil {
		t.Error("loadConfig() should reject an invalid --line-ending")
	}
}

func TestSetupLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "notepad.log")
	closeLog, err := setupLogging(path, true)
	if err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	log.Debug().Str("component", "test").Msg("hello log")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello log") {
		t.Errorf("log file = %q", data)
	}
}

func TestConfigInit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")

	var out bytes.Buffer
	if err := runInit(&out, path, false); err != nil {
		t.Fatalf("runInit() error = %v\n%s", err, out.String())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config not written: %v", err)
	}
	if strings.Contains(out.String(), "[fail]") || strings.Count(out.String(), "[ok]") != 3 {
		t.Errorf("unexpected report:\n%s", out.String())
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cfg.History.Path); err != nil {
		t.Errorf("history database not created: %v", err)
	}

	out.Reset()
	if err := runInit(&out, path, false); err != nil {
		t.Fatalf("second runInit() error = %v", err)
	}
	if !strings.Contains(out.String(), "config exists") {
		t.Errorf("second run should keep the config:\n%s", out.String())
	}
}

func TestConfigShow(t *testing.T) {
	path := writeTestConfig(t)
	t.Cleanup(func() { configPath = "" })

	rootCmd.SetArgs([]string{"config", "show", "--config", path})
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(stdout.String(), "line_ending: crlf") {
		t.Errorf("output:\n%s", stdout.String())
	}
}
