// Package roster maintains the client's view of the user list.
//
// The list is sourced fresh from the collaborator on every call; nothing is
// cached here beyond the current render cycle.
package roster

import (
	"context"

	"billsplit/internal/collab"
	"billsplit/internal/errs"
	"billsplit/internal/models"
)

// Store reads and mutates the user roster through the collaborator.
type Store struct {
	service collab.Collaborator
}

// New creates a roster store over the given collaborator.
func New(service collab.Collaborator) *Store {
	return &Store{service: service}
}

// List returns all usernames, fresh from the collaborator.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.service.ListUsers(ctx)
}

// ParticipantOption is one entry of the participant-selection view.
type ParticipantOption struct {
	Username string
	// Selected marks options checked by default.
	Selected bool
	// Locked options cannot be deselected. The caller's own entry is
	// locked so the creator is always a participant.
	Locked bool
}

// ParticipantOptions derives the participant-selection view for the given
// caller: the admin account is excluded, and the caller's own username is
// pre-selected and locked.
func (s *Store) ParticipantOptions(ctx context.Context, session *models.Session) ([]ParticipantOption, error) {
	if session == nil {
		return nil, errs.New(errs.KindValidation, "not logged in")
	}

	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]ParticipantOption, 0, len(users))
	for _, u := range users {
		if u == models.AdminUsername {
			continue
		}
		self := u == session.Username
		options = append(options, ParticipantOption{Username: u, Selected: self, Locked: self})
	}
	return options, nil
}

// Add creates a new user. Gated locally on the admin role hint; the
// collaborator re-checks regardless.
func (s *Store) Add(ctx context.Context, session *models.Session, username, password string) error {
	if session == nil || !session.IsAdmin {
		return errs.New(errs.KindAuthorization, "admin login required")
	}
	if username == "" || password == "" {
		return errs.New(errs.KindValidation, "username and password required")
	}
	return s.service.AddUser(ctx, session, username, password)
}

// Delete removes a user. The reserved admin account is rejected locally;
// everything else is the collaborator's decision.
func (s *Store) Delete(ctx context.Context, session *models.Session, username string) error {
	if session == nil || !session.IsAdmin {
		return errs.New(errs.KindAuthorization, "admin login required")
	}
	if username == "" {
		return errs.New(errs.KindValidation, "username required")
	}
	if username == models.AdminUsername {
		return errs.New(errs.KindConflict, "cannot delete admin")
	}
	return s.service.DeleteUser(ctx, session, username)
}
