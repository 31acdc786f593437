package balance

import (
	"time"

	"github.com/cleared-dev/fareview/internal/model"
)

// FirstGroup is the group id of the first run.
const FirstGroup = 1

// Group numbers each contiguous run of same-calendar-date entries, in the order given.
// Entries must already be time-ordered; the input slice is updated in place and returned.
func Group(entries []model.BalanceEntry) []model.BalanceEntry {
	for i := range entries {
		switch {
		case i == 0:
			entries[i].Group = FirstGroup
		case sameDate(entries[i].Time, entries[i-1].Time):
			entries[i].Group = entries[i-1].Group
		default:
			entries[i].Group = entries[i-1].Group + 1
		}
	}
	return entries
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
