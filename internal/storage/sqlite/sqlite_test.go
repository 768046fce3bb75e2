package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"billsplit/internal/models"
	"billsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "billsplit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID and timestamp", func(t *testing.T) {
		user := &models.User{Username: "alice", PasswordHash: "x"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetUserByUsername round-trips", func(t *testing.T) {
		user := &models.User{Username: "bob", PasswordHash: "h", IsAdmin: true}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUserByUsername(ctx, "bob")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got.Username != "bob" || got.PasswordHash != "h" || !got.IsAdmin {
			t.Errorf("got %+v, want bob with admin flag", got)
		}
	})

	t.Run("GetUserByUsername unknown user", func(t *testing.T) {
		_, err := store.GetUserByUsername(ctx, "nobody")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		if err := store.CreateUser(ctx, &models.User{Username: "alice", PasswordHash: "y"}); err == nil {
			t.Error("Expected duplicate insert to fail")
		}
	})

	t.Run("ListUsernames is sorted", func(t *testing.T) {
		names, err := store.ListUsernames(ctx)
		if err != nil {
			t.Fatalf("ListUsernames failed: %v", err)
		}
		if len(names) != 2 || names[0] != "alice" || names[1] != "bob" {
			t.Errorf("got %v, want [alice bob]", names)
		}
	})

	t.Run("DeleteUser removes the user", func(t *testing.T) {
		if err := store.DeleteUser(ctx, "bob"); err != nil {
			t.Fatalf("DeleteUser failed: %v", err)
		}
		if err := store.DeleteUser(ctx, "bob"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second delete: got %v, want ErrNotFound", err)
		}
	})
}

func TestBills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	newBill := func() *models.Bill {
		return &models.Bill{
			Creator:     "alice",
			Amount:      30,
			Date:        "2026-08-30",
			Description: "groceries",
			DueAt:       time.Now().Add(24 * time.Hour).Unix(),
			Shares: []models.Share{
				{Username: "alice", Amount: 10},
				{Username: "bob", Amount: 10},
				{Username: "carol", Amount: 10},
			},
		}
	}

	t.Run("CreateBill and GetBill preserve share order", func(t *testing.T) {
		bill := newBill()
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		if bill.ID == "" {
			t.Error("Expected bill ID to be generated")
		}

		got, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		want := []string{"alice", "bob", "carol"}
		if len(got.Shares) != len(want) {
			t.Fatalf("got %d shares, want %d", len(got.Shares), len(want))
		}
		for i, name := range want {
			if got.Shares[i].Username != name {
				t.Errorf("share[%d] = %s, want %s", i, got.Shares[i].Username, name)
			}
			if got.Shares[i].IsPaid {
				t.Errorf("share[%d] unexpectedly paid", i)
			}
		}
	})

	t.Run("ListBillsForUser filters by share ownership", func(t *testing.T) {
		other := &models.Bill{
			Creator: "dave", Amount: 10, Date: "2026-08-29",
			Shares: []models.Share{{Username: "dave", Amount: 10}},
		}
		if err := store.CreateBill(ctx, other); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		bills, err := store.ListBillsForUser(ctx, "bob")
		if err != nil {
			t.Fatalf("ListBillsForUser failed: %v", err)
		}
		for _, b := range bills {
			if b.ShareFor("bob") == nil {
				t.Errorf("bill %s returned for bob without a share", b.ID)
			}
		}

		all, err := store.ListBills(ctx)
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		if len(all) != len(bills)+1 {
			t.Errorf("ListBills returned %d bills, want %d", len(all), len(bills)+1)
		}
	})

	t.Run("MarkSharePaid is one-shot", func(t *testing.T) {
		bill := newBill()
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		if err := store.MarkSharePaid(ctx, bill.ID, "bob", time.Now().Unix()); err != nil {
			t.Fatalf("MarkSharePaid failed: %v", err)
		}

		got, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if s := got.ShareFor("bob"); s == nil || !s.IsPaid || s.PaidAt == 0 {
			t.Errorf("bob's share = %+v, want paid with timestamp", s)
		}

		err = store.MarkSharePaid(ctx, bill.ID, "bob", time.Now().Unix())
		if !errors.Is(err, storage.ErrAlreadyPaid) {
			t.Errorf("second pay: got %v, want ErrAlreadyPaid", err)
		}

		err = store.MarkSharePaid(ctx, bill.ID, "stranger", time.Now().Unix())
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("unknown share: got %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteBill removes shares too", func(t *testing.T) {
		bill := newBill()
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		if err := store.DeleteBill(ctx, bill.ID); err != nil {
			t.Fatalf("DeleteBill failed: %v", err)
		}
		if _, err := store.GetBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound after delete", err)
		}

		var count int
		if err := store.db.QueryRow("SELECT COUNT(*) FROM bill_shares WHERE bill_id = ?", bill.ID).Scan(&count); err != nil {
			t.Fatalf("count query failed: %v", err)
		}
		if count != 0 {
			t.Errorf("%d shares left after bill delete, want 0", count)
		}

		if err := store.DeleteBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second delete: got %v, want ErrNotFound", err)
		}
	})
}
