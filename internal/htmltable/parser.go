// Package htmltable rebuilds records from HTML tables laid out as label/value row pairs.
//
// The source renders every record as a run of two-cell rows with no explicit separator.
// A record ends when a label already present in it shows up again, or, when a leading
// field is configured, when that field starts a new run.
package htmltable

import (
	"fmt"
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cleared-dev/fareview/internal/model"
)

const cellsPerRow = 2

// MalformedRowError reports a table row that is not a label/value pair.
type MalformedRowError struct {
	Row   int // zero-based index among the table's <tr> elements
	Cells int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d: expected %d cells, got %d", e.Row, cellsPerRow, e.Cells)
}

// Option configures record assembly.
type Option func(*options)

type options struct {
	leadingField string
}

// WithLeadingField starts a new record whenever the normalized label field appears
// and the record under construction is not empty. Label re-encounter still ends a record.
func WithLeadingField(field string) Option {
	return func(o *options) {
		o.leadingField = NormalizeLabel(field)
	}
}

// Rows yields the label/value pair of every <tr> that belongs to sel, in document
// order. Rows and cells of tables nested inside a cell are not visited.
// Cell text is whitespace-trimmed. The first row without exactly two <td> cells
// yields a *MalformedRowError and ends the sequence.
func Rows(sel *goquery.Selection) iter.Seq2[model.RawRow, error] {
	return func(yield func(model.RawRow, error) bool) {
		trs := ownRows(sel)
		for i := range trs.Length() {
			cells := trs.Eq(i).ChildrenFiltered("td")
			if n := cells.Length(); n != cellsPerRow {
				yield(model.RawRow{}, &MalformedRowError{Row: i, Cells: n})
				return
			}
			row := model.RawRow{
				Label: strings.TrimSpace(cells.Eq(0).Text()),
				Value: strings.TrimSpace(cells.Eq(1).Text()),
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// ownRows returns the <tr> elements whose table is sel, directly or through a
// thead, tbody or tfoot section.
func ownRows(sel *goquery.Selection) *goquery.Selection {
	return sel.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		parent := tr.Parent()
		if parent.Is("thead,tbody,tfoot") {
			parent = parent.Parent()
		}
		return parent.IsSelection(sel)
	})
}

// Records groups rows into records. The record under construction is always
// emitted at the end, so an empty input yields exactly one empty record.
func Records(rows iter.Seq2[model.RawRow, error], opts ...Option) iter.Seq2[model.Record, error] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return func(yield func(model.Record, error) bool) {
		acc := model.Record{}
		for row, err := range rows {
			if err != nil {
				yield(nil, err)
				return
			}

			label := NormalizeLabel(row.Label)
			if acc.Has(label) || (o.leadingField != "" && label == o.leadingField && len(acc) > 0) {
				if !yield(acc, nil) {
					return
				}
				acc = model.Record{}
			}
			acc[label] = row.Value
		}
		yield(acc, nil)
	}
}

// Parse is Records(Rows(sel)).
func Parse(sel *goquery.Selection, opts ...Option) iter.Seq2[model.Record, error] {
	return Records(Rows(sel), opts...)
}

// First returns the first record of seq.
func First(seq iter.Seq2[model.Record, error]) (model.Record, error) {
	for rec, err := range seq {
		return rec, err
	}
	return nil, nil
}

// Collect drains seq, stopping at the first error.
func Collect(seq iter.Seq2[model.Record, error]) ([]model.Record, error) {
	var records []model.Record
	for rec, err := range seq {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
