package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"billsplit/internal/errs"
	"billsplit/internal/models"
	"billsplit/internal/split"
	"billsplit/internal/storage"
)

// DueAfter is how long after creation a bill's shares fall due.
const DueAfter = 24 * time.Hour

// BillService implements bill creation, listing, payment and deletion.
type BillService struct {
	store storage.Store
}

// NewBillService creates a new BillService with the given storage backend.
func NewBillService(store storage.Store) *BillService {
	return &BillService{store: store}
}

// CreateBillInput carries the client-supplied fields of a new bill.
// DueAt is deliberately absent: it is assigned here, never by the caller.
type CreateBillInput struct {
	Creator      string
	Amount       float64
	Date         string
	Description  string
	Participants []string
	Discount     bool
}

// Create validates the input, distributes the shares and persists the bill.
// Admin users are stripped from the participant set, and the creator always
// receives a share even when not named. All shares start unpaid.
func (s *BillService) Create(ctx context.Context, in CreateBillInput) (*models.Bill, error) {
	if in.Creator == "" {
		return nil, errs.New(errs.KindValidation, "creator required")
	}
	if in.Amount <= 0 {
		return nil, errs.New(errs.KindValidation, "amount must be positive")
	}
	if len(in.Participants) == 0 {
		return nil, errs.New(errs.KindValidation, "at least one participant required")
	}

	participants, err := s.dropAdmins(ctx, in.Participants)
	if err != nil {
		return nil, err
	}

	amounts, err := split.Distribute(in.Amount, in.Creator, participants, in.Discount)
	if err != nil {
		return nil, errs.New(errs.KindValidation, err.Error())
	}

	now := time.Now()
	bill := &models.Bill{
		Creator:     in.Creator,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
		Discount:    in.Discount,
		CreatedAt:   now.Unix(),
		DueAt:       now.Add(DueAfter).Unix(),
		Shares:      make([]models.Share, len(amounts)),
	}
	for i, a := range amounts {
		bill.Shares[i] = models.Share{Username: a.Username, Amount: a.Amount}
	}

	if err := s.store.CreateBill(ctx, bill); err != nil {
		slog.Error("CreateBill failed", "creator", in.Creator, "error", err)
		return nil, err
	}

	slog.Info("Bill created",
		"bill_id", bill.ID,
		"creator", bill.Creator,
		"amount", bill.Amount,
		"discount", bill.Discount,
		"shares", len(bill.Shares),
	)
	return bill, nil
}

// dropAdmins removes admin users from a participant list. Unknown names pass
// through; they fail later only if share distribution rejects them.
func (s *BillService) dropAdmins(ctx context.Context, participants []string) ([]string, error) {
	out := make([]string, 0, len(participants))
	for _, p := range participants {
		if p == models.AdminUsername {
			continue
		}
		user, err := s.store.GetUserByUsername(ctx, p)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				out = append(out, p)
				continue
			}
			return nil, err
		}
		if user.IsAdmin {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// ListFor returns the bills visible to username: everything for admins,
// otherwise only bills the user holds a share on. Newest first.
func (s *BillService) ListFor(ctx context.Context, username string) ([]*models.Bill, error) {
	if username == "" {
		return nil, errs.New(errs.KindValidation, "username required")
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if user != nil && user.IsAdmin {
		return s.store.ListBills(ctx)
	}
	return s.store.ListBillsForUser(ctx, username)
}

// Get returns a single bill with its shares.
func (s *BillService) Get(ctx context.Context, billID string) (*models.Bill, error) {
	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errs.New(errs.KindNotFound, "bill not found")
		}
		return nil, err
	}
	return bill, nil
}

// Pay settles username's own share on a bill. The transition is irreversible
// and a second attempt fails with a conflict.
func (s *BillService) Pay(ctx context.Context, billID, username string) (*models.Bill, error) {
	if billID == "" || username == "" {
		return nil, errs.New(errs.KindValidation, "bill id and username required")
	}

	if err := s.store.MarkSharePaid(ctx, billID, username, time.Now().Unix()); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, errs.New(errs.KindNotFound, "share not found")
		case errors.Is(err, storage.ErrAlreadyPaid):
			return nil, errs.New(errs.KindConflict, "already paid")
		default:
			slog.Error("Pay failed", "bill_id", billID, "username", username, "error", err)
			return nil, err
		}
	}

	slog.Info("Share paid", "bill_id", billID, "username", username)
	return s.Get(ctx, billID)
}

// Delete removes a bill and its shares. Admin-only; the admin identity is
// re-checked against the database.
func (s *BillService) Delete(ctx context.Context, admin, billID string) error {
	if admin == "" || billID == "" {
		return errs.New(errs.KindValidation, "admin and bill id required")
	}
	if err := requireAdmin(ctx, s.store, admin); err != nil {
		return err
	}

	if err := s.store.DeleteBill(ctx, billID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.New(errs.KindNotFound, "bill not found")
		}
		slog.Error("DeleteBill failed", "bill_id", billID, "error", err)
		return err
	}

	slog.Info("Bill deleted", "bill_id", billID, "by", admin)
	return nil
}
