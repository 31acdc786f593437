// Package export writes statements as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fareview/internal/model"
)

// Header is the CSV header for statement exports.
const Header = "time,date,amount,balance,transaction_id,group"

const (
	numFields  = 6
	dateFormat = "2006-01-02"
	colTime    = 0
	colDate    = 1
	colAmount  = 2
	colBalance = 3
	colID      = 4
	colGroup   = 5
)

// MarshalEntry converts a BalanceEntry to a CSV row.
func MarshalEntry(e model.BalanceEntry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Time.Format(time.RFC3339)
	row[colDate] = e.Time.Format(dateFormat)
	row[colAmount] = e.Amount.StringFixed(2)
	row[colBalance] = e.Balance.StringFixed(2)
	row[colID] = e.ID
	row[colGroup] = strconv.Itoa(e.Group)
	return row
}

// UnmarshalEntry converts a CSV row back to a BalanceEntry.
func UnmarshalEntry(record []string) (model.BalanceEntry, error) {
	if len(record) != numFields {
		return model.BalanceEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return model.BalanceEntry{}, fmt.Errorf("parsing time %q: %w", record[colTime], err)
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.BalanceEntry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	bal, err := decimal.NewFromString(record[colBalance])
	if err != nil {
		return model.BalanceEntry{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
	}
	group, err := strconv.Atoi(record[colGroup])
	if err != nil {
		return model.BalanceEntry{}, fmt.Errorf("parsing group %q: %w", record[colGroup], err)
	}

	return model.BalanceEntry{
		Transaction: model.Transaction{ID: record[colID], Time: ts, Amount: amount},
		Balance:     bal,
		Group:       group,
	}, nil
}

// WriteEntries writes a statement's entries (including header).
func WriteEntries(w io.Writer, entries []model.BalanceEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadEntries reads entries written by WriteEntries.
func ReadEntries(r io.Reader) ([]model.BalanceEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	entries := make([]model.BalanceEntry, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
