package model

// Choice is the user's answer to the save-changes prompt.
type Choice int

const (
	ChoiceSave Choice = iota
	ChoiceDiscard
	ChoiceCancel
)

var choiceNames = [...]string{"Save", "Discard", "Cancel"}

func (c Choice) String() string {
	if c < 0 || int(c) >= len(choiceNames) {
		return "Unknown"
	}
	return choiceNames[c]
}

// Choices lists the prompt's answers in display order.
func Choices() []Choice {
	return []Choice{ChoiceSave, ChoiceDiscard, ChoiceCancel}
}

// Outcome is the result of a close request.
type Outcome int

const (
	Pending Outcome = iota
	Approved
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Approved:
		return "approved"
	case Denied:
		return "denied"
	default:
		return "pending"
	}
}

type closeStep int

const (
	stepDone closeStep = iota
	stepChoice
	stepPath
)

// CloseRequest is one run of the unsaved-changes check that precedes New,
// Open, Exit and closing the window. A clean session approves at once; a
// dirty one waits for a Choice and possibly a save path.
type CloseRequest struct {
	session          *Session
	allowWindowClose bool
	outcome          Outcome
	step             closeStep
	err              error
}

// BeginClose starts a close request, or returns the one already waiting for
// the user.
func (s *Session) BeginClose(allowWindowClose bool) *CloseRequest {
	if s.pending != nil {
		return s.pending
	}
	r := &CloseRequest{session: s, allowWindowClose: allowWindowClose}
	if s.inSync {
		r.outcome = Approved
		return r
	}
	r.step = stepChoice
	s.pending = r
	s.logger.Debug().Bool("close_window", allowWindowClose).Msg("close request needs confirmation")
	return r
}

// Pending returns the close request waiting for the user, if any.
func (s *Session) Pending() *CloseRequest {
	return s.pending
}

func (r *CloseRequest) Outcome() Outcome  { return r.outcome }
func (r *CloseRequest) Err() error        { return r.err }
func (r *CloseRequest) NeedsChoice() bool { return r.step == stepChoice }
func (r *CloseRequest) NeedsPath() bool   { return r.step == stepPath }
func (r *CloseRequest) AllowsClose() bool { return r.allowWindowClose }
func (r *CloseRequest) Session() *Session { return r.session }
func (r *CloseRequest) Done() bool        { return r.step == stepDone }
func (r *CloseRequest) SuggestedName() string {
	return r.session.SuggestedName()
}

// CloseWindow reports whether the window should close now.
func (r *CloseRequest) CloseWindow() bool {
	return r.outcome == Approved && r.allowWindowClose
}

// Choose answers the save-changes prompt.
func (r *CloseRequest) Choose(c Choice) {
	if r.step != stepChoice {
		return
	}
	switch c {
	case ChoiceSave:
		if r.session.path == "" {
			r.step = stepPath
			return
		}
		r.save("")
	case ChoiceDiscard:
		// The buffer is abandoned, so there is nothing left to save.
		r.session.inSync = true
		r.finish(Approved)
	default:
		r.finish(Denied)
	}
}

// ProvidePath saves to path after Choose(ChoiceSave) asked for one.
func (r *CloseRequest) ProvidePath(path string) {
	if r.step != stepPath {
		return
	}
	if path == "" {
		r.finish(Denied)
		return
	}
	r.save(path)
}

// CancelPath abandons the save path prompt, which denies the request.
func (r *CloseRequest) CancelPath() {
	if r.step != stepPath {
		return
	}
	r.finish(Denied)
}

func (r *CloseRequest) save(path string) {
	if err := r.session.Persist(path); err != nil {
		r.err = err
		r.finish(Denied)
		return
	}
	r.finish(Approved)
}

func (r *CloseRequest) finish(o Outcome) {
	r.outcome = o
	r.step = stepDone
	if r.session.pending == r {
		r.session.pending = nil
	}
	r.session.logger.Debug().Str("outcome", o.String()).Bool("close_window", r.CloseWindow()).Msg("close request resolved")
}

// Prompter answers a close request synchronously.
type Prompter interface {
	// ConfirmSave asks whether to save changes to the named document.
	ConfirmSave(name string) Choice
	// SavePath asks where to save; ok is false when the user cancels.
	SavePath(suggested string) (path string, ok bool)
}

// RequestClose runs a whole close request against p. It reports whether the
// request was approved; err is the save failure behind a denial, if any.
func (s *Session) RequestClose(allowWindowClose bool, p Prompter) (approved bool, err error) {
	r := s.BeginClose(allowWindowClose)
	if r.NeedsChoice() {
		r.Choose(p.ConfirmSave(s.displayName))
	}
	if r.NeedsPath() {
		if path, ok := p.SavePath(r.SuggestedName()); ok {
			r.ProvidePath(path)
		} else {
			r.CancelPath()
		}
	}
	return r.Outcome() == Approved, r.Err()
}
