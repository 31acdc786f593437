package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/cleared-dev/fareview/internal/model"
)

// TableOptions controls terminal output.
type TableOptions struct {
	Money      Money
	ShowAmount bool
	Grouped    bool // adds the date-group column
}

// WriteTable prints the current balance followed by the statement table.
func WriteTable(w io.Writer, stmt *model.Statement, opts TableOptions) error {
	if _, err := fmt.Fprintf(w, "Card %s  Current balance: %s\n", stmt.Card, opts.Money.Format(stmt.Balance)); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header(opts))
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, r := range Rows(stmt.Entries, opts.Money) {
		var line []string
		if opts.Grouped {
			line = append(line, strconv.Itoa(r.Group))
		}
		line = append(line, r.Date, r.Clock)
		if opts.ShowAmount {
			line = append(line, r.Amount)
		}
		line = append(line, r.Balance)
		table.Append(line)
	}

	table.Render()
	return nil
}

func header(opts TableOptions) []string {
	var h []string
	if opts.Grouped {
		h = append(h, "#")
	}
	h = append(h, "Date", "Time")
	if opts.ShowAmount {
		h = append(h, "Amount")
	}
	return append(h, "Balance")
}
