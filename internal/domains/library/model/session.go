package model

// SessionState is where an editing session sits in the draft/publish lifecycle.
type SessionState string

const (
	StateNoDraft   SessionState = "no_draft"
	StateDrafted   SessionState = "drafted"
	StatePublished SessionState = "published"
)

// Session is the explicit editing context: the save code the current form is bound to.
// The zero value is a session without a draft.
type Session struct {
	DraftCode string
}

// NewSession binds a session to code (after trimming). A blank code yields an unbound session.
func NewSession(code string) *Session {
	return &Session{DraftCode: NormalizeCode(code)}
}

func (s *Session) HasDraft() bool {
	return s != nil && s.DraftCode != ""
}

// Bind points the session at code.
func (s *Session) Bind(code string) {
	s.DraftCode = code
}
