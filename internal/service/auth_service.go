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

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	store      storage.Store
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// LoginResult is what a successful credential check yields: the identity, the
// role flag as stored server-side, and a bearer token for subsequent requests.
type LoginResult struct {
	Username string
	IsAdmin  bool
	Token    string
}

// NewAuthService creates a new authentication service.
func NewAuthService(store storage.Store, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:      store,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Login checks the credentials against the stored bcrypt hash. The admin flag
// in the result is read from the database, never computed by the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, errs.New(errs.KindValidation, "username and password required")
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Login failed", "username", username, "reason", "unknown user")
			return nil, errs.New(errs.KindAuth, "invalid credentials")
		}
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		s.logger.Warn("Login failed", "username", username, "reason", "bad password")
		return nil, errs.New(errs.KindAuth, "invalid credentials")
	}

	token, err := s.jwtManager.Generate(user.Username, user.IsAdmin)
	if err != nil {
		s.logger.Error("Failed to generate token", "username", username, "error", err)
		return nil, err
	}

	s.logger.Info("User logged in", "username", user.Username, "is_admin", user.IsAdmin)
	return &LoginResult{Username: user.Username, IsAdmin: user.IsAdmin, Token: token}, nil
}

// requireAdmin verifies that the named caller exists and carries the admin
// flag in the database. Client-side role hints are never trusted.
func requireAdmin(ctx context.Context, store storage.Store, username string) error {
	if username == "" {
		return errs.New(errs.KindAuthorization, "not authorized")
	}
	user, err := store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.New(errs.KindAuthorization, "not authorized")
		}
		return err
	}
	if !user.IsAdmin {
		return errs.New(errs.KindAuthorization, "not authorized")
	}
	return nil
}

// EnsureAdminUser seeds the reserved admin account if it does not exist yet.
func EnsureAdminUser(ctx context.Context, store storage.Store, password string) error {
	_, err := store.GetUserByUsername(ctx, models.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := &models.User{Username: models.AdminUsername, PasswordHash: hash, IsAdmin: true}
	if err := store.CreateUser(ctx, user); err != nil {
		return err
	}
	slog.Info("Seeded admin user")
	return nil
}
