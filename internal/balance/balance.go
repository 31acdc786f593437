// Package balance rebuilds a card's balance history from its current balance and
// the list of past transactions the source reports, most recent first.
package balance

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fareview/internal/model"
)

// Reconstruct returns the balance standing right after each transaction.
// amounts are in source order, most recent first, and current is the balance after
// all of them: balance[i] = current - sum(amounts[0..i-1]).
func Reconstruct(current decimal.Decimal, amounts []decimal.Decimal) []decimal.Decimal {
	if len(amounts) == 0 {
		return nil
	}
	balances := make([]decimal.Decimal, len(amounts))
	running := current
	for i, amt := range amounts {
		balances[i] = running
		running = running.Sub(amt)
	}
	return balances
}

// Opening returns the balance before the oldest of amounts was applied.
func Opening(current decimal.Decimal, amounts []decimal.Decimal) decimal.Decimal {
	return current.Sub(decimal.Sum(decimal.Zero, amounts...))
}

// AdjustMidnight moves postings stamped inside hour 0 back to 23:59 of the
// previous day. The source labels late-evening taps with the next day's midnight hour.
func AdjustMidnight(t time.Time) time.Time {
	if t.Hour() != 0 {
		return t
	}
	prev := t.Add(-time.Hour)
	return time.Date(prev.Year(), prev.Month(), prev.Day(), prev.Hour(), 59, prev.Second(), prev.Nanosecond(), prev.Location())
}

// Build annotates txns (source order, most recent first) with balances and returns
// them sorted by time descending. Midnight postings are adjusted first.
func Build(current decimal.Decimal, txns []model.Transaction) []model.BalanceEntry {
	if len(txns) == 0 {
		return []model.BalanceEntry{}
	}

	amounts := make([]decimal.Decimal, len(txns))
	for i, txn := range txns {
		amounts[i] = txn.Amount
	}
	balances := Reconstruct(current, amounts)

	entries := make([]model.BalanceEntry, len(txns))
	for i, txn := range txns {
		txn.Time = AdjustMidnight(txn.Time)
		entries[i] = model.BalanceEntry{Transaction: txn, Balance: balances[i]}
	}

	slices.SortStableFunc(entries, func(a, b model.BalanceEntry) int {
		return b.Time.Compare(a.Time)
	})
	return entries
}
