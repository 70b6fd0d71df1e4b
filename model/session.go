package model

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackwu/notepad/textfile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultName is the display name of a document that was never saved.
const DefaultName = "Untitled.txt"

// State is the sync state of a session.
type State int

const (
	Clean State = iota // content matches the last persisted version
	Dirty              // content has edits that were not persisted
)

func (s State) String() string {
	if s == Clean {
		return "clean"
	}
	return "dirty"
}

// Defaults configure new sessions.
type Defaults struct {
	Name       string              // placeholder display name
	LineEnding textfile.LineEnding // newline style for documents that were never loaded
}

// Session tracks one open document: where it lives, what it is called and
// whether the text in memory has been persisted.
type Session struct {
	ID string

	path        string
	displayName string
	inSync      bool
	content     string
	lineEnding  textfile.LineEnding

	defaults Defaults
	store    textfile.Store
	pending  *CloseRequest
	logger   zerolog.Logger
}

// NewSession returns an empty, clean session that has never been saved.
func NewSession(store textfile.Store, defaults Defaults) *Session {
	if defaults.Name == "" {
		defaults.Name = DefaultName
	}
	if defaults.LineEnding == "" {
		defaults.LineEnding = textfile.CRLF
	}
	id := uuid.NewString()
	return &Session{
		ID:          id,
		displayName: defaults.Name,
		inSync:      true,
		lineEnding:  defaults.LineEnding,
		defaults:    defaults,
		store:       store,
		logger:      log.With().Str("component", "model.Session").Str("session", id).Logger(),
	}
}

func (s *Session) Path() string                    { return s.path }
func (s *Session) DisplayName() string             { return s.displayName }
func (s *Session) InSync() bool                    { return s.inSync }
func (s *Session) Content() string                 { return s.content }
func (s *Session) LineEnding() textfile.LineEnding { return s.lineEnding }

// State reports Clean or Dirty.
func (s *Session) State() State {
	if s.inSync {
		return Clean
	}
	return Dirty
}

// EditorText is the content with LF newlines, as the editing widget holds it.
func (s *Session) EditorText() string {
	return textfile.ToLF(s.content)
}

// CharCount is the length of the content in characters. A CRLF newline
// counts as two.
func (s *Session) CharCount() int {
	return utf8.RuneCountInString(s.content)
}

// SuggestedName is offered by the save picker: the current path when the
// document has one, else the placeholder name.
func (s *Session) SuggestedName() string {
	if s.path != "" {
		return s.path
	}
	return s.defaults.Name
}

// RecordEdit takes the editor's text after a change, marks the session dirty
// and returns the character count to display.
func (s *Session) RecordEdit(text string) int {
	s.content = textfile.FromLF(text, s.lineEnding)
	if s.inSync {
		s.logger.Debug().Msg("document modified")
	}
	s.inSync = false
	return s.CharCount()
}

// Persist writes the content to target, or to the session's path when target
// is empty. ErrNoPath is returned when neither exists; the caller has to ask
// for a path first. A failed write leaves the session untouched.
func (s *Session) Persist(target string) error {
	dest := target
	if dest == "" {
		dest = s.path
	}
	if dest == "" {
		return ErrNoPath
	}
	if err := s.store.WriteFile(dest, s.content); err != nil {
		s.logger.Error().Err(err).Str("path", dest).Msg("persist failed")
		return &PersistError{Path: dest, Err: err}
	}
	s.bind(dest)
	s.inSync = true
	s.logger.Info().Str("path", dest).Int("chars", s.CharCount()).Msg("document saved")
	return nil
}

// Load replaces the content with text read from sourcePath.
func (s *Session) Load(sourcePath, content string) {
	s.content = content
	s.lineEnding = textfile.DetectLineEnding(content, s.defaults.LineEnding)
	s.bind(sourcePath)
	s.inSync = true
	s.logger.Info().Str("path", sourcePath).Str("line_ending", s.lineEnding.String()).Msg("document loaded")
}

// Open reads sourcePath through the store and loads it. A failed read leaves
// the session untouched.
func (s *Session) Open(sourcePath string) error {
	content, err := s.store.ReadFile(sourcePath)
	if err != nil {
		s.logger.Error().Err(err).Str("path", sourcePath).Msg("load failed")
		return &LoadError{Path: sourcePath, Err: err}
	}
	s.Load(sourcePath, content)
	return nil
}

// Bind attaches a path to an empty session without reading or writing it,
// for documents named on the command line that do not exist yet.
func (s *Session) Bind(path string) {
	s.bind(path)
}

func (s *Session) bind(path string) {
	s.path = path
	s.displayName = filepath.Base(path)
}
