// Package coordinator applies the act-then-refresh protocol to every
// mutation: issue the request, and on success reload the affected collection
// from the collaborator before any derived view updates. Nothing is ever
// patched optimistically, so the rendered view always reflects
// collaborator-confirmed state. On failure the cached collections stay
// untouched and the collaborator's message is surfaced as-is.
package coordinator

import (
	"context"
	"errors"

	"billsplit/internal/collab"
	"billsplit/internal/errs"
	"billsplit/internal/models"
	"billsplit/internal/roster"
)

// ErrCancelled is returned when the user declines a confirmation prompt.
// The prompt is the sole cancellation point of a destructive action.
var ErrCancelled = errors.New("cancelled")

// Confirmer asks the user to confirm a destructive action before it is
// issued.
type Confirmer func(prompt string) bool

// Coordinator issues mutations and keeps the loaded collections consistent
// with the collaborator.
type Coordinator struct {
	service collab.Collaborator
	roster  *roster.Store
	confirm Confirmer

	users []string
	bills []*models.Bill
}

// New creates a Coordinator. confirm gates destructive actions; a nil
// confirmer approves everything.
func New(service collab.Collaborator, rosterStore *roster.Store, confirm Confirmer) *Coordinator {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	return &Coordinator{service: service, roster: rosterStore, confirm: confirm}
}

// Users returns the last loaded roster.
func (c *Coordinator) Users() []string { return c.users }

// Bills returns the last loaded bill collection.
func (c *Coordinator) Bills() []*models.Bill { return c.bills }

// RefreshUsers reloads the roster from the collaborator.
func (c *Coordinator) RefreshUsers(ctx context.Context) error {
	users, err := c.roster.List(ctx)
	if err != nil {
		return err
	}
	c.users = users
	return nil
}

// RefreshBills reloads the caller's bill collection from the collaborator.
func (c *Coordinator) RefreshBills(ctx context.Context, session *models.Session) error {
	if session == nil {
		return errs.New(errs.KindAuthorization, "login required")
	}
	bills, err := c.service.ListBills(ctx, session)
	if err != nil {
		return err
	}
	c.bills = bills
	return nil
}

// CreateBill validates locally, issues the creation in the caller's own name
// and reloads the bill collection.
func (c *Coordinator) CreateBill(ctx context.Context, session *models.Session, amount float64, date, description string, participants []string, discount bool) (*models.Bill, error) {
	if session == nil {
		return nil, errs.New(errs.KindAuthorization, "login required")
	}
	if amount <= 0 {
		return nil, errs.New(errs.KindValidation, "amount must be positive")
	}
	if len(participants) == 0 {
		return nil, errs.New(errs.KindValidation, "select at least one participant")
	}

	bill, err := c.service.CreateBill(ctx, session, collab.CreateBillRequest{
		Creator:      session.Username,
		Amount:       amount,
		Date:         date,
		Description:  description,
		Participants: participants,
		Discount:     discount,
	})
	if err != nil {
		return nil, err
	}

	if err := c.RefreshBills(ctx, session); err != nil {
		return nil, err
	}
	return bill, nil
}

// MarkPaid settles the caller's own share and reloads the bill collection.
func (c *Coordinator) MarkPaid(ctx context.Context, session *models.Session, billID string) (*models.Bill, error) {
	if session == nil {
		return nil, errs.New(errs.KindAuthorization, "login required")
	}
	if billID == "" {
		return nil, errs.New(errs.KindValidation, "bill id required")
	}

	bill, err := c.service.MarkPaid(ctx, session, billID)
	if err != nil {
		return nil, err
	}

	if err := c.RefreshBills(ctx, session); err != nil {
		return nil, err
	}
	return bill, nil
}

// AddUser creates a roster entry and reloads the roster.
func (c *Coordinator) AddUser(ctx context.Context, session *models.Session, username, password string) error {
	if err := c.roster.Add(ctx, session, username, password); err != nil {
		return err
	}
	return c.RefreshUsers(ctx)
}

// DeleteUser confirms, deletes a roster entry and reloads the roster.
func (c *Coordinator) DeleteUser(ctx context.Context, session *models.Session, username string) error {
	if !c.confirm("Are you sure you want to delete " + username + "?") {
		return ErrCancelled
	}
	if err := c.roster.Delete(ctx, session, username); err != nil {
		return err
	}
	return c.RefreshUsers(ctx)
}

// DeleteBill confirms, deletes a bill and reloads the bill collection.
// Admin authorization is deliberately not checked here: it is the
// collaborator's call, and its rejection is surfaced without touching the
// loaded bills.
func (c *Coordinator) DeleteBill(ctx context.Context, session *models.Session, billID string) error {
	if session == nil {
		return errs.New(errs.KindAuthorization, "login required")
	}
	if billID == "" {
		return errs.New(errs.KindValidation, "bill id required")
	}
	if !c.confirm("Delete this bill?") {
		return ErrCancelled
	}

	if err := c.service.DeleteBill(ctx, session, billID); err != nil {
		return err
	}
	return c.RefreshBills(ctx, session)
}
