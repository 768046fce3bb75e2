package coordinator

import (
	"context"
	"errors"
	"testing"

	"billsplit/internal/collab"
	"billsplit/internal/errs"
	"billsplit/internal/models"
	"billsplit/internal/roster"
)

// fakeCollab is an in-memory Collaborator. Mutations apply to its state so the
// follow-up refresh observes them, mirroring the act-then-refresh contract.
type fakeCollab struct {
	users []string
	bills []*models.Bill

	failDeleteBill error
	calls          []string
}

func (f *fakeCollab) Login(ctx context.Context, username, password string) (*collab.LoginReply, error) {
	return &collab.LoginReply{Username: username}, nil
}

func (f *fakeCollab) ListUsers(ctx context.Context) ([]string, error) {
	f.calls = append(f.calls, "ListUsers")
	return append([]string(nil), f.users...), nil
}

func (f *fakeCollab) AddUser(ctx context.Context, session *models.Session, username, password string) error {
	f.calls = append(f.calls, "AddUser")
	f.users = append(f.users, username)
	return nil
}

func (f *fakeCollab) DeleteUser(ctx context.Context, session *models.Session, username string) error {
	f.calls = append(f.calls, "DeleteUser")
	for i, u := range f.users {
		if u == username {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return errs.New(errs.KindNotFound, "user not found")
}

func (f *fakeCollab) CreateBill(ctx context.Context, session *models.Session, req collab.CreateBillRequest) (*models.Bill, error) {
	f.calls = append(f.calls, "CreateBill")
	bill := &models.Bill{ID: "bill-1", Creator: req.Creator, Amount: req.Amount, Date: req.Date}
	for _, p := range req.Participants {
		bill.Shares = append(bill.Shares, models.Share{Username: p})
	}
	f.bills = append(f.bills, bill)
	return bill, nil
}

func (f *fakeCollab) ListBills(ctx context.Context, session *models.Session) ([]*models.Bill, error) {
	f.calls = append(f.calls, "ListBills")
	return append([]*models.Bill(nil), f.bills...), nil
}

func (f *fakeCollab) MarkPaid(ctx context.Context, session *models.Session, billID string) (*models.Bill, error) {
	f.calls = append(f.calls, "MarkPaid")
	for _, b := range f.bills {
		if b.ID == billID {
			if s := b.ShareFor(session.Username); s != nil {
				s.IsPaid = true
			}
			return b, nil
		}
	}
	return nil, errs.New(errs.KindNotFound, "bill not found")
}

func (f *fakeCollab) DeleteBill(ctx context.Context, session *models.Session, billID string) error {
	f.calls = append(f.calls, "DeleteBill")
	if f.failDeleteBill != nil {
		return f.failDeleteBill
	}
	for i, b := range f.bills {
		if b.ID == billID {
			f.bills = append(f.bills[:i], f.bills[i+1:]...)
			return nil
		}
	}
	return errs.New(errs.KindNotFound, "bill not found")
}

func newTestCoordinator(fake *fakeCollab, confirm Confirmer) *Coordinator {
	return New(fake, roster.New(fake), confirm)
}

func TestCreateBillRefreshes(t *testing.T) {
	ctx := context.Background()
	fake := &fakeCollab{}
	c := newTestCoordinator(fake, nil)
	session := &models.Session{Username: "alice"}

	bill, err := c.CreateBill(ctx, session, 90, "2025-01-02", "dinner", []string{"alice", "bob"}, false)
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	if bill.ID != "bill-1" {
		t.Errorf("expected bill-1, got %s", bill.ID)
	}
	if len(c.Bills()) != 1 {
		t.Fatalf("expected 1 loaded bill after refresh, got %d", len(c.Bills()))
	}

	want := []string{"CreateBill", "ListBills"}
	if len(fake.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, fake.calls)
	}
	for i := range want {
		if fake.calls[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], fake.calls[i])
		}
	}
}

func TestCreateBillValidation(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(&fakeCollab{}, nil)
	session := &models.Session{Username: "alice"}

	tests := []struct {
		name         string
		session      *models.Session
		amount       float64
		participants []string
		wantKind     errs.Kind
	}{
		{name: "no session", session: nil, amount: 10, participants: []string{"alice"}, wantKind: errs.KindAuthorization},
		{name: "zero amount", session: session, amount: 0, participants: []string{"alice"}, wantKind: errs.KindValidation},
		{name: "no participants", session: session, amount: 10, participants: nil, wantKind: errs.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CreateBill(ctx, tt.session, tt.amount, "2025-01-02", "", tt.participants, false)
			if errs.KindOf(err) != tt.wantKind {
				t.Errorf("expected kind %v, got %v (%v)", tt.wantKind, errs.KindOf(err), err)
			}
		})
	}
}

func TestMarkPaidRefreshes(t *testing.T) {
	ctx := context.Background()
	fake := &fakeCollab{bills: []*models.Bill{
		{ID: "bill-1", Creator: "alice", Shares: []models.Share{
			{Username: "alice"},
			{Username: "bob"},
		}},
	}}
	c := newTestCoordinator(fake, nil)
	session := &models.Session{Username: "bob"}

	if err := c.RefreshBills(ctx, session); err != nil {
		t.Fatalf("RefreshBills failed: %v", err)
	}

	bill, err := c.MarkPaid(ctx, session, "bill-1")
	if err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	if s := bill.ShareFor("bob"); s == nil || !s.IsPaid {
		t.Error("expected bob's share paid in the returned bill")
	}
	if s := c.Bills()[0].ShareFor("bob"); s == nil || !s.IsPaid {
		t.Error("expected bob's share paid in the refreshed collection")
	}
}

func TestDeleteUserConfirmation(t *testing.T) {
	ctx := context.Background()
	fake := &fakeCollab{users: []string{"admin", "alice", "bob"}}
	declined := func(string) bool { return false }
	c := newTestCoordinator(fake, declined)
	admin := &models.Session{Username: "admin", IsAdmin: true}

	err := c.DeleteUser(ctx, admin, "bob")
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("declined prompt must not issue requests, got %v", fake.calls)
	}

	c = newTestCoordinator(fake, nil)
	if err := c.DeleteUser(ctx, admin, "bob"); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if len(c.Users()) != 2 {
		t.Errorf("expected 2 users after delete, got %d", len(c.Users()))
	}
}

func TestDeleteBillAuthorizationIsRemote(t *testing.T) {
	ctx := context.Background()
	fake := &fakeCollab{
		bills:          []*models.Bill{{ID: "bill-1", Creator: "alice", Shares: []models.Share{{Username: "alice"}}}},
		failDeleteBill: errs.New(errs.KindAuthorization, "not authorized"),
	}
	c := newTestCoordinator(fake, nil)
	session := &models.Session{Username: "bob", IsAdmin: false}

	if err := c.RefreshBills(ctx, session); err != nil {
		t.Fatalf("RefreshBills failed: %v", err)
	}
	fake.calls = nil

	// A non-admin delete attempt must reach the collaborator; the rejection
	// is its call, not the client's.
	err := c.DeleteBill(ctx, session, "bill-1")
	if errs.KindOf(err) != errs.KindAuthorization {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if len(fake.calls) != 1 || fake.calls[0] != "DeleteBill" {
		t.Fatalf("expected the delete to be issued, got calls %v", fake.calls)
	}
	if len(c.Bills()) != 1 {
		t.Errorf("failed delete must leave the loaded bills untouched, got %d", len(c.Bills()))
	}
}

func TestDeleteBillSuccess(t *testing.T) {
	ctx := context.Background()
	fake := &fakeCollab{
		bills: []*models.Bill{{ID: "bill-1", Creator: "alice", Shares: []models.Share{{Username: "alice"}}}},
	}
	c := newTestCoordinator(fake, nil)
	admin := &models.Session{Username: "admin", IsAdmin: true}

	if err := c.DeleteBill(ctx, admin, "bill-1"); err != nil {
		t.Fatalf("DeleteBill failed: %v", err)
	}
	if len(c.Bills()) != 0 {
		t.Errorf("expected empty collection after delete, got %d", len(c.Bills()))
	}
}
