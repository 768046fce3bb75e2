// Package session owns the client-side authenticated-session state.
//
// The state machine has exactly two states: anonymous and authenticated.
// Logging in moves to authenticated, logging out back to anonymous; nothing
// else transitions. The session survives process restarts in a single named
// slot, a JSON file written atomically.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"billsplit/internal/collab"
	"billsplit/internal/errs"
	"billsplit/internal/models"
)

// Manager holds the current session and its persistent slot. It is the only
// writer of the slot; components that need the caller identity receive the
// session value explicitly rather than reading ambient state.
type Manager struct {
	path    string
	service collab.Collaborator
	current *models.Session
}

// NewManager creates a Manager over the slot at path, restoring a persisted
// session if one exists. A corrupt slot is discarded rather than failing.
func NewManager(path string, service collab.Collaborator) *Manager {
	m := &Manager{path: path, service: service}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Could not read session slot", "path", path, "error", err)
		}
		return m
	}

	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil || s.Username == "" {
		slog.Warn("Discarding corrupt session slot", "path", path)
		return m
	}
	m.current = &s
	return m
}

// Current returns the active session, or nil when anonymous.
func (m *Manager) Current() *models.Session {
	return m.current
}

// Login delegates the credential check to the collaborator and, on success,
// stores the returned identity and role flag. The admin flag is whatever the
// collaborator said it is.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.Session, error) {
	if username == "" || password == "" {
		return nil, errs.New(errs.KindValidation, "username and password required")
	}

	reply, err := m.service.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	s := &models.Session{Username: reply.Username, IsAdmin: reply.IsAdmin, Token: reply.Token}
	if err := m.persist(s); err != nil {
		return nil, err
	}
	m.current = s
	return s, nil
}

// Logout clears the session unconditionally. Calling it while anonymous is a
// no-op.
func (m *Manager) Logout() error {
	m.current = nil
	if err := os.Remove(m.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear session slot: %w", err)
	}
	return nil
}

// persist writes the session to the slot atomically via a temp file rename.
func (m *Manager) persist(s *models.Session) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write session slot: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("failed to replace session slot: %w", err)
	}
	return nil
}
