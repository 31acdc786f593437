package activity

import (
	"fmt"
	"time"

	"github.com/cleared-dev/fareview/internal/model"
)

// DefaultSuccessNote is the note the source puts on transactions that posted.
const DefaultSuccessNote = "Success"

// Dedup drops records whose transaction_id was already seen, keeping the first.
// A missing transaction_id counts as the empty id, so only the first record
// without one survives.
func Dedup(records []model.Record) []model.Record {
	seen := make(map[string]bool, len(records))
	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		id := rec.Get(model.FieldTransactionID)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, rec)
	}
	return out
}

// Select deduplicates records, keeps the ones whose note equals successNote, and
// converts them to Transactions in their original order. Deduplication runs
// before the note filter: a failed attempt shadows a later successful row with
// the same id.
func Select(records []model.Record, successNote string, loc *time.Location) ([]model.Transaction, error) {
	var txns []model.Transaction
	for _, rec := range Dedup(records) {
		if rec.Get(model.FieldNote) != successNote {
			continue
		}
		txn, err := toTransaction(rec, loc)
		if err != nil {
			return nil, fmt.Errorf("transaction %q: %w", rec.Get(model.FieldTransactionID), err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func toTransaction(rec model.Record, loc *time.Location) (model.Transaction, error) {
	when, err := ParseTime(rec.Get(model.FieldDate), loc)
	if err != nil {
		return model.Transaction{}, err
	}
	amount, err := ParseAmount(rec.Get(model.FieldAmount))
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		ID:      rec.Get(model.FieldTransactionID),
		Note:    rec.Get(model.FieldNote),
		RawDate: rec.Get(model.FieldDate),
		Time:    when,
		Amount:  amount,
	}, nil
}
