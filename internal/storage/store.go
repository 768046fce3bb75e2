// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"billsplit/internal/models"
)

// Sentinel errors returned by Store implementations so the service layer can
// classify failures without knowing the backend.
var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyPaid = errors.New("already paid")
)

// Store defines the interface for user and bill persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. The user.ID field is populated by the
	// store if empty.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by username.
	// Returns ErrNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// ListUsernames returns every username, sorted.
	ListUsernames(ctx context.Context) ([]string, error)

	// DeleteUser removes a user by username. Historical bill shares keep the
	// username. Returns ErrNotFound if no such user exists.
	DeleteUser(ctx context.Context, username string) error

	// CreateBill persists a bill together with its shares.
	// ID fields are populated by the store if empty.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill with its full ordered share list.
	// Returns ErrNotFound if no such bill exists.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// ListBills returns all bills, newest first, each with its shares.
	ListBills(ctx context.Context) ([]*models.Bill, error)

	// ListBillsForUser returns the bills on which username holds a share,
	// newest first.
	ListBillsForUser(ctx context.Context, username string) ([]*models.Bill, error)

	// MarkSharePaid settles username's share on the given bill at the given
	// time. Returns ErrNotFound if the share does not exist and
	// ErrAlreadyPaid if it was settled before, including by a racing call.
	MarkSharePaid(ctx context.Context, billID, username string, paidAt int64) error

	// DeleteBill removes a bill and all its shares.
	// Returns ErrNotFound if no such bill exists.
	DeleteBill(ctx context.Context, billID string) error

	// Close releases any resources held by the store.
	Close() error
}
