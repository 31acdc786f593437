package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a successful card activity row.
type Transaction struct {
	ID      string          // transaction_id as reported by the source
	Note    string          // source status, e.g. "Success"
	RawDate string          // date cell before parsing
	Time    time.Time       // posting time after the midnight adjustment
	Amount  decimal.Decimal // negative = fare, positive = reload
}

// BalanceEntry is a Transaction annotated with the card balance right after it posted.
type BalanceEntry struct {
	Transaction
	Balance decimal.Decimal
	Group   int // contiguous same-date run, starting at 1
}

// Statement is everything one page render needs for a card.
type Statement struct {
	Card      string
	Balance   decimal.Decimal // current balance from the summary table
	Opening   decimal.Decimal // balance before the oldest listed transaction
	Entries   []BalanceEntry  // most recent first
	FetchedAt time.Time
}
