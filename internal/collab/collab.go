// Package collab defines the collaborator contract and its HTTP client.
//
// The collaborator is the external service that persists users and bills and
// enforces authorization. The client core talks to it exclusively through
// this request/response interface and never patches local state on its own.
package collab

import (
	"context"

	"billsplit/internal/models"
)

// LoginReply is the success payload of a login call. The admin flag is
// computed by the collaborator; the client never derives it.
type LoginReply struct {
	Username string
	IsAdmin  bool
	Token    string
}

// CreateBillRequest carries the client-supplied fields of a new bill.
// The due timestamp is assigned by the collaborator.
type CreateBillRequest struct {
	Creator      string   `json:"creator"`
	Amount       float64  `json:"amount"`
	Date         string   `json:"date"`
	Description  string   `json:"description"`
	Participants []string `json:"participants"`
	Discount     bool     `json:"discount"`
}

// Collaborator is the fixed contract with the backing service. Errors
// returned by implementations carry a kind from the errs package; messages
// are surfaced to the user verbatim.
type Collaborator interface {
	Login(ctx context.Context, username, password string) (*LoginReply, error)
	ListUsers(ctx context.Context) ([]string, error)
	AddUser(ctx context.Context, session *models.Session, username, password string) error
	DeleteUser(ctx context.Context, session *models.Session, username string) error
	CreateBill(ctx context.Context, session *models.Session, req CreateBillRequest) (*models.Bill, error)
	ListBills(ctx context.Context, session *models.Session) ([]*models.Bill, error)
	MarkPaid(ctx context.Context, session *models.Session, billID string) (*models.Bill, error)
	DeleteBill(ctx context.Context, session *models.Session, billID string) error
}
