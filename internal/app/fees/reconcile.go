package fees

import (
	"sort"

	"github.com/arjunrk/feeledger/internal/app/models"
)

// Reconcile merges incoming year lockers into an existing locker set.
// A matching year keeps the existing locker's identity and appends the
// incoming transactions, dropping any whose id is already present.
// Unmatched years are appended whole. The result is sorted ascending by
// year and never holds two lockers for the same year.
//
// Idempotent under id-stable inputs: reconciling an already-merged
// result with the same incoming set changes nothing.
func Reconcile(existing, incoming []*models.YearLocker) []*models.YearLocker {
	merged := make([]*models.YearLocker, 0, len(existing)+len(incoming))
	byYear := make(map[int]*models.YearLocker, len(existing))
	for _, l := range existing {
		if prior, ok := byYear[l.Year]; ok {
			appendTransactions(prior, l.Transactions)
			continue
		}
		byYear[l.Year] = l
		merged = append(merged, l)
	}

	for _, in := range incoming {
		target, ok := byYear[in.Year]
		if !ok {
			byYear[in.Year] = in
			merged = append(merged, in)
			continue
		}
		appendTransactions(target, in.Transactions)
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Year < merged[j].Year })
	return merged
}

// appendTransactions adds txns to the locker, skipping ids already in
// its list. Transactions are never overwritten or merged by content.
func appendTransactions(locker *models.YearLocker, txns []*models.FeeTransaction) {
	seen := make(map[string]bool, len(locker.Transactions))
	for _, tx := range locker.Transactions {
		seen[tx.ID] = true
	}
	for _, tx := range txns {
		if seen[tx.ID] {
			continue
		}
		seen[tx.ID] = true
		locker.Transactions = append(locker.Transactions, tx)
	}
}
