package billview

import (
	"testing"

	"billsplit/internal/models"
)

func testBills() []*models.Bill {
	return []*models.Bill{
		{
			ID:      "b1",
			Creator: "alice",
			Shares: []models.Share{
				{Username: "alice", IsPaid: true},
				{Username: "bob", IsPaid: false},
			},
		},
		{
			ID:      "b2",
			Creator: "bob",
			Shares: []models.Share{
				{Username: "alice", IsPaid: true},
				{Username: "bob", IsPaid: true},
			},
		},
		{
			ID:      "b3",
			Creator: "carol",
			Shares: []models.Share{
				{Username: "bob", IsPaid: false},
				{Username: "carol", IsPaid: true},
			},
		},
	}
}

func TestParseFilter(t *testing.T) {
	for _, name := range []string{"all", "unpaid-me", "my-bills", "unpaid-any"} {
		if _, err := ParseFilter(name); err != nil {
			t.Errorf("ParseFilter(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseFilter("paid"); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestFilterApply(t *testing.T) {
	bills := testBills()

	tests := []struct {
		name    string
		filter  Filter
		caller  string
		wantIDs []string
	}{
		{
			name:    "all shows everything",
			filter:  FilterAll,
			caller:  "alice",
			wantIDs: []string{"b1", "b2", "b3"},
		},
		{
			name:    "unpaid-me excludes bills without own share",
			filter:  FilterUnpaidMe,
			caller:  "alice",
			wantIDs: []string{},
		},
		{
			name:    "unpaid-me shows own unpaid shares",
			filter:  FilterUnpaidMe,
			caller:  "bob",
			wantIDs: []string{"b1", "b3"},
		},
		{
			name:    "my-bills shows only created",
			filter:  FilterMyBills,
			caller:  "bob",
			wantIDs: []string{"b2"},
		},
		{
			name:    "unpaid-any shows partially settled",
			filter:  FilterUnpaidAny,
			caller:  "alice",
			wantIDs: []string{"b1", "b3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(bills, tt.caller)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d bills, got %d", len(tt.wantIDs), len(got))
			}
			for i, b := range got {
				if b.ID != tt.wantIDs[i] {
					t.Errorf("bill %d: expected %s, got %s", i, tt.wantIDs[i], b.ID)
				}
			}
		})
	}

	if len(bills) != 3 {
		t.Error("Apply modified the input collection")
	}
}

func TestViewState(t *testing.T) {
	v := NewViewState()
	if v.Selected() != FilterAll {
		t.Errorf("expected initial filter all, got %s", v.Selected())
	}

	v.Select(FilterUnpaidMe)
	if v.Selected() != FilterUnpaidMe {
		t.Errorf("expected unpaid-me, got %s", v.Selected())
	}

	if v.Expanded("b1") {
		t.Error("bills should start collapsed")
	}
	v.Toggle("b1")
	if !v.Expanded("b1") {
		t.Error("expected b1 expanded after toggle")
	}
	v.Toggle("b1")
	if v.Expanded("b1") {
		t.Error("expected b1 collapsed after second toggle")
	}
}

func TestCreatorStatus(t *testing.T) {
	bill := &models.Bill{
		Creator: "alice",
		Shares: []models.Share{
			{Username: "alice", IsPaid: true},
			{Username: "bob", IsPaid: true},
			{Username: "carol", IsPaid: false},
		},
	}

	status, ok := CreatorStatus(bill, "alice")
	if !ok {
		t.Fatal("creator should see the status tier")
	}
	if status != models.StatusMajorityPaid {
		t.Errorf("expected majority-paid, got %s", status)
	}

	if _, ok := CreatorStatus(bill, "bob"); ok {
		t.Error("non-creator should not see the status tier")
	}
}
