package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"billsplit/internal/models"
	"billsplit/internal/storage"
)

// CreateBill persists a bill and its shares in one transaction.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bills (id, creator, amount, date, description, discount, created_at, due_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.Creator, bill.Amount, bill.Date, bill.Description,
		bill.Discount, bill.CreatedAt, bill.DueAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for i := range bill.Shares {
		share := &bill.Shares[i]
		if share.ID == "" {
			share.ID = uuid.New().String()
		}

		var paidAt interface{}
		if share.PaidAt != 0 {
			paidAt = share.PaidAt
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO bill_shares (id, bill_id, username, share_amount, is_paid, paid_at, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			share.ID, bill.ID, share.Username, share.Amount, share.IsPaid, paidAt, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetBill retrieves a bill by ID, including its ordered share list.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, creator, amount, date, description, discount, created_at, due_at
		 FROM bills WHERE id = ?`,
		billID,
	).Scan(&bill.ID, &bill.Creator, &bill.Amount, &bill.Date, &bill.Description,
		&bill.Discount, &bill.CreatedAt, &bill.DueAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if err := s.loadShares(ctx, bill); err != nil {
		return nil, err
	}

	return bill, nil
}

// ListBills returns every bill, newest first.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]*models.Bill, error) {
	return s.queryBills(ctx,
		`SELECT id, creator, amount, date, description, discount, created_at, due_at
		 FROM bills ORDER BY created_at DESC, id`)
}

// ListBillsForUser returns the bills on which username holds a share, newest first.
func (s *SQLiteStore) ListBillsForUser(ctx context.Context, username string) ([]*models.Bill, error) {
	return s.queryBills(ctx,
		`SELECT id, creator, amount, date, description, discount, created_at, due_at
		 FROM bills
		 WHERE id IN (SELECT bill_id FROM bill_shares WHERE username = ?)
		 ORDER BY created_at DESC, id`,
		username)
}

func (s *SQLiteStore) queryBills(ctx context.Context, query string, args ...interface{}) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		if err := rows.Scan(&bill.ID, &bill.Creator, &bill.Amount, &bill.Date,
			&bill.Description, &bill.Discount, &bill.CreatedAt, &bill.DueAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	for _, bill := range bills {
		if err := s.loadShares(ctx, bill); err != nil {
			return nil, err
		}
	}

	return bills, nil
}

func (s *SQLiteStore) loadShares(ctx context.Context, bill *models.Bill) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, share_amount, is_paid, paid_at
		 FROM bill_shares WHERE bill_id = ? ORDER BY position`,
		bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var share models.Share
		var paidAt sql.NullInt64
		if err := rows.Scan(&share.ID, &share.Username, &share.Amount, &share.IsPaid, &paidAt); err != nil {
			return fmt.Errorf("failed to scan share: %w", err)
		}
		if paidAt.Valid {
			share.PaidAt = paidAt.Int64
		}
		bill.Shares = append(bill.Shares, share)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shares: %w", err)
	}

	return nil
}

// MarkSharePaid settles username's share on the given bill. The update is
// guarded on is_paid = 0 so a racing second call loses with ErrAlreadyPaid.
func (s *SQLiteStore) MarkSharePaid(ctx context.Context, billID, username string, paidAt int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE bill_shares SET is_paid = 1, paid_at = ?
		 WHERE bill_id = ? AND username = ? AND is_paid = 0`,
		paidAt, billID, username,
	)
	if err != nil {
		return fmt.Errorf("failed to mark share paid: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Nothing updated: either the share is already paid or it never existed.
	var isPaid bool
	err = s.db.QueryRowContext(ctx,
		"SELECT is_paid FROM bill_shares WHERE bill_id = ? AND username = ?",
		billID, username,
	).Scan(&isPaid)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("share of %q on bill %s: %w", username, billID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check share: %w", err)
	}
	return fmt.Errorf("share of %q on bill %s: %w", username, billID, storage.ErrAlreadyPaid)
}

// DeleteBill removes a bill; its shares go with it via the foreign key cascade.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}

	return nil
}
