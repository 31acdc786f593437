package render

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/cleared-dev/fareview/internal/model"
)

const (
	chartWidth  = 960
	chartHeight = 360
)

// WriteChart renders the balance over time as an SVG line chart.
// The line runs from the opening balance through every transaction to the
// current balance at fetch time.
func WriteChart(w io.Writer, stmt *model.Statement, money Money) error {
	xs, ys := balancePoints(stmt)

	lo, hi := slices.Min(ys), slices.Max(ys)
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	graph := chart.Chart{
		Title:  "Balance",
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2"),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return money.Format(decimal.NewFromFloat(f))
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Balance",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("1f77b4"),
					StrokeWidth: 2,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// balancePoints returns at least two chronological (time, balance) points.
func balancePoints(stmt *model.Statement) ([]time.Time, []float64) {
	var xs []time.Time
	var ys []float64

	n := len(stmt.Entries)
	if n > 0 {
		oldest := stmt.Entries[n-1]
		xs = append(xs, oldest.Time.Add(-time.Minute))
		ys = append(ys, stmt.Opening.InexactFloat64())
	}
	for i := n - 1; i >= 0; i-- {
		xs = append(xs, stmt.Entries[i].Time)
		ys = append(ys, stmt.Entries[i].Balance.InexactFloat64())
	}

	end := stmt.FetchedAt
	if end.IsZero() || (len(xs) > 0 && !end.After(xs[len(xs)-1])) {
		if len(xs) > 0 {
			end = xs[len(xs)-1].Add(time.Minute)
		} else {
			end = time.Now()
		}
	}
	if len(xs) == 0 {
		xs = append(xs, end.Add(-24*time.Hour))
		ys = append(ys, stmt.Balance.InexactFloat64())
	}
	xs = append(xs, end)
	ys = append(ys, stmt.Balance.InexactFloat64())
	return xs, ys
}
