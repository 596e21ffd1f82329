package extract

import (
	"sort"
	"strings"
	"time"
)

// Dedupe removes near-duplicate transactions across concatenated
// extraction results. Two transactions are duplicates iff their dates are
// at most one day apart, amounts are equal, descriptions match
// case-insensitively and types match. The earliest date is kept.
func Dedupe(txns []*Transaction) []*Transaction {
	if len(txns) <= 1 {
		return txns
	}

	sorted := make([]*Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	var out []*Transaction
	for _, t := range sorted {
		dup := false
		for _, kept := range out {
			if isDuplicate(kept, t) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

func isDuplicate(a, b *Transaction) bool {
	if a.Type != b.Type || !a.Amount.Equal(b.Amount) {
		return false
	}
	if !strings.EqualFold(a.Description, b.Description) {
		return false
	}
	da, err1 := time.Parse("2006-01-02", a.Date)
	db, err2 := time.Parse("2006-01-02", b.Date)
	if err1 != nil || err2 != nil {
		return a.Date == b.Date
	}
	diff := db.Sub(da)
	if diff < 0 {
		diff = -diff
	}
	return diff <= 24*time.Hour
}
