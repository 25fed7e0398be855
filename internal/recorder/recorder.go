// Package recorder persists chat turns as per-session append-only JSON Lines
// files for later offline evaluation.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Record is one persisted turn. The dialog field mirrors the transcript
// format the evaluation tooling expects.
type Record struct {
	Dialog string `json:"dialog"`
	Usage  int    `json:"usage"`
}

// SessionRecorder appends turn records to one file per session, named by the
// session identifier. Files are never rewritten or compacted.
type SessionRecorder struct {
	path string
}

// New creates a recorder for a session. The log directory is created if
// needed; failure to do so is a PersistenceError.
func New(logDir, sessionID string) (*SessionRecorder, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, &PersistenceError{Message: fmt.Sprintf("failed to create log directory %s", logDir), Cause: err}
	}
	return &SessionRecorder{
		path: filepath.Join(logDir, fmt.Sprintf("session_%s.jsonl", sessionID)),
	}, nil
}

// Path returns the session log file location.
func (r *SessionRecorder) Path() string { return r.path }

// Record appends one turn. The chat turn itself has already succeeded by the
// time this runs; callers report a PersistenceError but never unwind the turn.
func (r *SessionRecorder) Record(userTurn, botReply string, tokensUsed int) error {
	line, err := json.Marshal(Record{
		Dialog: fmt.Sprintf("User: %s\nBot: %s", userTurn, botReply),
		Usage:  tokensUsed,
	})
	if err != nil {
		return &PersistenceError{Message: "failed to encode turn record", Cause: err}
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &PersistenceError{Message: fmt.Sprintf("failed to open session log %s", r.path), Cause: err}
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return &PersistenceError{Message: fmt.Sprintf("failed to append to session log %s", r.path), Cause: err}
	}
	return nil
}
