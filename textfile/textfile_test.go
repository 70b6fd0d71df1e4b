package textfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLineEnding(t *testing.T) {
	tests := []struct {
		in      string
		want    LineEnding
		wantErr bool
	}{
		{"crlf", CRLF, false},
		{"CRLF", CRLF, false},
		{" lf ", LF, false},
		{"cr", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLineEnding(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLineEnding(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLineEnding(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fallback LineEnding
		want     LineEnding
	}{
		{"crlf", "a\r\nb", LF, CRLF},
		{"lf", "a\nb", CRLF, LF},
		{"mixed prefers crlf", "a\nb\r\nc", LF, CRLF},
		{"single line uses fallback", "abc", CRLF, CRLF},
		{"empty uses fallback", "", LF, LF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLineEnding(tt.text, tt.fallback); got != tt.want {
				t.Errorf("DetectLineEnding(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLineEndingConversion(t *testing.T) {
	if got := ToLF("line1\r\nline2\r\n"); got != "line1\nline2\n" {
		t.Errorf("ToLF() = %q", got)
	}
	if got := FromLF("line1\nline2", CRLF); got != "line1\r\nline2" {
		t.Errorf("FromLF(CRLF) = %q", got)
	}
	// already-CRLF input must not grow a second carriage return
	if got := FromLF("a\r\nb\nc", CRLF); got != "a\r\nb\r\nc" {
		t.Errorf("FromLF(mixed) = %q", got)
	}
	if got := FromLF("a\nb", LF); got != "a\nb" {
		t.Errorf("FromLF(LF) = %q", got)
	}
}

func TestFilter(t *testing.T) {
	f := Filter{Extensions: []string{".txt"}}

	tests := []struct {
		name      string
		allows    bool
		withExtTo string
	}{
		{"notes.txt", true, "notes.txt"},
		{"NOTES.TXT", true, "NOTES.TXT"},
		{"notes", false, "notes.txt"},
		{"notes.md", false, "notes.md.txt"},
		{"", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Allows(tt.name); got != tt.allows {
				t.Errorf("Allows(%q) = %v, want %v", tt.name, got, tt.allows)
			}
			if got := f.WithExtension(tt.name); got != tt.withExtTo {
				t.Errorf("WithExtension(%q) = %q, want %q", tt.name, got, tt.withExtTo)
			}
		})
	}

	if !(Filter{}).Allows("anything.bin") {
		t.Error("empty filter should allow every file")
	}
	if got := f.Describe(); !strings.Contains(got, "*.txt") {
		t.Errorf("Describe() = %q, want it to mention *.txt", got)
	}
}

func TestOSStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	content := "line1\r\nline2"

	var s OS
	if err := s.WriteFile(path, content); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := s.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got != content {
		t.Errorf("ReadFile() = %q, want %q", got, content)
	}

	// overwrite replaces the whole file
	if err := s.WriteFile(path, "x"); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "x" {
		t.Errorf("file content = %q, want %q", data, "x")
	}
}

func TestOSStoreErrors(t *testing.T) {
	dir := t.TempDir()
	var s OS

	_, err := s.ReadFile(filepath.Join(dir, "missing.txt"))
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("ReadFile() error = %v, want *FileError", err)
	}
	if fe.Op != "read" {
		t.Errorf("FileError.Op = %q, want read", fe.Op)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("FileError should unwrap to os.ErrNotExist")
	}

	err = s.WriteFile(filepath.Join(dir, "no", "such", "dir.txt"), "x")
	if !errors.As(err, &fe) || fe.Op != "write" {
		t.Errorf("WriteFile() error = %v, want write *FileError", err)
	}
}
