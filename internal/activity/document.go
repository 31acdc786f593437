// Package activity turns a card activity page into a current balance and the list
// of transactions that actually posted.
package activity

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fareview/internal/htmltable"
	"github.com/cleared-dev/fareview/internal/model"
)

// ErrCardNotFound means the page had no usable balance summary, which is what the
// source serves for unknown card numbers.
var ErrCardNotFound = errors.New("could not find transactions; check card number")

// Default selectors for the activity page.
const (
	DefaultSummarySelector     = ".basicTable"
	DefaultTransactionSelector = "#table"
)

// Options controls how a page is read. Zero fields fall back to the defaults.
type Options struct {
	SummarySelector     string
	TransactionSelector string
	SuccessNote         string
	LeadingField        string // optional first field of every transaction record
	Location            *time.Location
}

func (o Options) withDefaults() Options {
	if o.SummarySelector == "" {
		o.SummarySelector = DefaultSummarySelector
	}
	if o.TransactionSelector == "" {
		o.TransactionSelector = DefaultTransactionSelector
	}
	if o.SuccessNote == "" {
		o.SuccessNote = DefaultSuccessNote
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	return o
}

// Document is the parsed content of one activity page.
type Document struct {
	Balance      decimal.Decimal
	Transactions []model.Transaction // source order, most recent first
}

// Extract parses an activity page.
func Extract(r io.Reader, opts Options) (*Document, error) {
	opts = opts.withDefaults()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading activity page: %w", err)
	}

	bal, err := summaryBalance(doc.Find(opts.SummarySelector).First())
	if err != nil {
		return nil, err
	}

	txnTable := doc.Find(opts.TransactionSelector).First()
	if txnTable.Length() == 0 {
		return &Document{Balance: bal}, nil
	}

	var tableOpts []htmltable.Option
	if opts.LeadingField != "" {
		tableOpts = append(tableOpts, htmltable.WithLeadingField(opts.LeadingField))
	}
	records, err := htmltable.Collect(htmltable.Parse(txnTable, tableOpts...))
	if err != nil {
		return nil, fmt.Errorf("parsing transaction table: %w", err)
	}

	txns, err := Select(records, opts.SuccessNote, opts.Location)
	if err != nil {
		return nil, err
	}
	return &Document{Balance: bal, Transactions: txns}, nil
}

func summaryBalance(table *goquery.Selection) (decimal.Decimal, error) {
	if table.Length() == 0 {
		return decimal.Zero, ErrCardNotFound
	}
	rec, err := htmltable.First(htmltable.Parse(table))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: summary table: %w", ErrCardNotFound, err)
	}
	if !rec.Has(model.FieldBalance) {
		return decimal.Zero, fmt.Errorf("%w: summary table has no balance", ErrCardNotFound)
	}
	bal, err := ParseAmount(rec.Get(model.FieldBalance))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", ErrCardNotFound, err)
	}
	return bal, nil
}
