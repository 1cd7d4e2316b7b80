package fees

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arjunrk/feeledger/internal/app/models"
)

func locker(year int, txIDs ...string) *models.YearLocker {
	l := &models.YearLocker{Year: year}
	for _, id := range txIDs {
		l.Transactions = append(l.Transactions, &models.FeeTransaction{
			ID:      id,
			FeeType: models.FeeTuition,
			Amount:  decimal.NewFromInt(1000),
			Status:  models.StatusPending,
		})
	}
	return l
}

func txIDs(lockers []*models.YearLocker) []string {
	var ids []string
	for _, l := range lockers {
		for _, tx := range l.Transactions {
			ids = append(ids, tx.ID)
		}
	}
	return ids
}

func TestReconcileMergesByYear(t *testing.T) {
	existing := []*models.YearLocker{locker(1, "a"), locker(2, "b")}
	incoming := []*models.YearLocker{locker(2, "c"), locker(3, "d")}

	got := Reconcile(existing, incoming)

	if len(got) != 3 {
		t.Fatalf("got %d lockers, want 3", len(got))
	}
	for i, want := range []int{1, 2, 3} {
		if got[i].Year != want {
			t.Errorf("locker %d year = %d, want %d (sorted ascending)", i, got[i].Year, want)
		}
	}
	if len(got[1].Transactions) != 2 {
		t.Errorf("year 2 locker has %d transactions, want 2", len(got[1].Transactions))
	}
	// Matching year keeps the existing locker's identity
	if got[1] != existing[1] {
		t.Error("year 2 locker identity was replaced instead of merged")
	}
}

func TestReconcileNoLossNoDuplication(t *testing.T) {
	existing := []*models.YearLocker{locker(1, "a", "b")}
	incoming := []*models.YearLocker{locker(1, "b", "c"), locker(2, "d")}

	got := Reconcile(existing, incoming)

	seen := make(map[string]int)
	for _, id := range txIDs(got) {
		seen[id]++
	}
	for _, id := range []string{"a", "b", "c", "d"} {
		if seen[id] != 1 {
			t.Errorf("transaction %q appears %d times, want exactly once", id, seen[id])
		}
	}
}

func TestReconcileIdempotent(t *testing.T) {
	existing := []*models.YearLocker{locker(1, "a"), locker(3, "b")}
	incoming := []*models.YearLocker{locker(1, "c"), locker(2, "d")}

	once := Reconcile(existing, incoming)
	twice := Reconcile(once, incoming)

	if len(twice) != len(once) {
		t.Fatalf("re-merge changed locker count: %d -> %d", len(once), len(twice))
	}
	onceIDs, twiceIDs := txIDs(once), txIDs(twice)
	if len(twiceIDs) != len(onceIDs) {
		t.Fatalf("re-merge changed transaction count: %d -> %d", len(onceIDs), len(twiceIDs))
	}
	for i := range onceIDs {
		if onceIDs[i] != twiceIDs[i] {
			t.Errorf("transaction order changed at %d: %q -> %q", i, onceIDs[i], twiceIDs[i])
		}
	}
}

func TestReconcileCollapsesDuplicateIncomingYears(t *testing.T) {
	got := Reconcile(nil, []*models.YearLocker{locker(1, "a"), locker(1, "b")})

	if len(got) != 1 {
		t.Fatalf("got %d lockers for one year, want 1", len(got))
	}
	if len(got[0].Transactions) != 2 {
		t.Errorf("collapsed locker has %d transactions, want 2", len(got[0].Transactions))
	}
}

func TestReconcileEmptyInputs(t *testing.T) {
	if got := Reconcile(nil, nil); len(got) != 0 {
		t.Errorf("Reconcile(nil, nil) returned %d lockers, want 0", len(got))
	}
	existing := []*models.YearLocker{locker(2, "a")}
	got := Reconcile(existing, nil)
	if len(got) != 1 || got[0] != existing[0] {
		t.Error("reconciling with no incoming lockers must keep existing lockers untouched")
	}
}
