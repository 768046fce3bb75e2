package service

import (
	"context"
	"errors"
	"log/slog"

	"billsplit/internal/auth"
	"billsplit/internal/errs"
	"billsplit/internal/models"
	"billsplit/internal/storage"
)

// UserService manages the user roster.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// List returns every username, sorted.
func (s *UserService) List(ctx context.Context) ([]string, error) {
	return s.store.ListUsernames(ctx)
}

// Add creates a new regular user. Only admins may call this; the admin
// identity is re-checked against the database.
func (s *UserService) Add(ctx context.Context, admin, username, password string) error {
	if admin == "" || username == "" || password == "" {
		return errs.New(errs.KindValidation, "admin, username and password required")
	}
	if err := requireAdmin(ctx, s.store, admin); err != nil {
		return err
	}

	if _, err := s.store.GetUserByUsername(ctx, username); err == nil {
		return errs.New(errs.KindConflict, "user exists")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{Username: username, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		slog.Error("Add user failed", "username", username, "error", err)
		return err
	}

	slog.Info("User added", "username", username, "by", admin)
	return nil
}

// Delete removes a user from the roster. The reserved admin account is
// protected. Usernames on historical bill shares are left in place.
func (s *UserService) Delete(ctx context.Context, admin, username string) error {
	if admin == "" || username == "" {
		return errs.New(errs.KindValidation, "admin and username required")
	}
	if username == models.AdminUsername {
		return errs.New(errs.KindConflict, "cannot delete admin")
	}
	if err := requireAdmin(ctx, s.store, admin); err != nil {
		return err
	}

	if err := s.store.DeleteUser(ctx, username); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.Newf(errs.KindNotFound, "user %q not found", username)
		}
		slog.Error("Delete user failed", "username", username, "error", err)
		return err
	}

	slog.Info("User deleted", "username", username, "by", admin)
	return nil
}
