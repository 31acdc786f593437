package render

import (
	"time"

	"github.com/cleared-dev/fareview/internal/model"
)

// Row is one display line of a statement.
type Row struct {
	ID       string
	Time     time.Time
	Date     string
	Clock    string
	Amount   string
	Balance  string
	Negative bool
	Group    int
	Shaded   bool // every other date group
}

// Rows converts entries, already in display order, into display rows.
func Rows(entries []model.BalanceEntry, money Money) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{
			ID:       e.ID,
			Time:     e.Time,
			Date:     DayLabel(e.Time),
			Clock:    ClockLabel(e.Time),
			Amount:   money.Format(e.Amount),
			Balance:  money.Format(e.Balance),
			Negative: e.Amount.IsNegative(),
			Group:    e.Group,
			Shaded:   e.Group%2 == 0,
		}
	}
	return rows
}
