package textfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LineEnding is the newline sequence a document is stored with.
type LineEnding string

const (
	CRLF LineEnding = "\r\n"
	LF   LineEnding = "\n"
)

// ParseLineEnding maps a config value ("crlf" or "lf") to a LineEnding.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crlf":
		return CRLF, nil
	case "lf":
		return LF, nil
	default:
		return "", fmt.Errorf("unknown line ending %q (want crlf or lf)", s)
	}
}

func (le LineEnding) String() string {
	switch le {
	case CRLF:
		return "CRLF"
	case LF:
		return "LF"
	default:
		return "?"
	}
}

// Store reads and overwrites whole text files.
type Store interface {
	ReadFile(path string) (string, error)
	WriteFile(path, content string) error
}

// FileError records a failed read or write.
type FileError struct {
	Op   string // "read", "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// OS is a Store backed by the local file system. Writes replace the whole
// file in place.
type OS struct{}

func (OS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}

func (OS) WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// DetectLineEnding reports the newline style of s. Text without any newline
// gets the fallback.
func DetectLineEnding(s string, fallback LineEnding) LineEnding {
	if strings.Contains(s, "\r\n") {
		return CRLF
	}
	if strings.Contains(s, "\n") {
		return LF
	}
	return fallback
}

// ToLF converts CRLF newlines to LF.
func ToLF(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// FromLF converts LF-separated text to the given line ending.
func FromLF(s string, le LineEnding) string {
	if le != CRLF {
		return s
	}
	return strings.ReplaceAll(ToLF(s), "\n", "\r\n")
}

// Filter restricts file pickers to text documents.
type Filter struct {
	Extensions []string // e.g. ".txt"
}

// Allows reports whether name carries one of the filter's extensions.
func (f Filter) Allows(name string) bool {
	if len(f.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range f.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// WithExtension returns name with the filter's first extension appended when
// name is not already a text document.
func (f Filter) WithExtension(name string) string {
	if name == "" || len(f.Extensions) == 0 || f.Allows(name) {
		return name
	}
	return name + f.Extensions[0]
}

// Describe renders the filter the way a file dialog labels it.
func (f Filter) Describe() string {
	if len(f.Extensions) == 0 {
		return "All files (*)"
	}
	globs := make([]string, len(f.Extensions))
	for i, e := range f.Extensions {
		globs[i] = "*" + e
	}
	return "Text documents (" + strings.Join(globs, ", ") + ")"
}
