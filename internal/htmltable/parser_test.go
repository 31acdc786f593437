package htmltable

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/fareview/internal/model"
)

func table(t *testing.T, rows ...[2]string) *goquery.Selection {
	t.Helper()
	var b strings.Builder
	b.WriteString("<table id=\"table\">")
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td></tr>", r[0], r[1])
	}
	b.WriteString("</table>")
	return doc(t, b.String()).Find("#table")
}

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func rawRows(rows ...model.RawRow) iter.Seq2[model.RawRow, error] {
	return func(yield func(model.RawRow, error) bool) {
		for _, r := range rows {
			if !yield(r, nil) {
				return
			}
		}
	}
}

func TestParse_SplitsOnRepeatedLabel(t *testing.T) {
	sel := table(t,
		[2]string{"Date", "01/05/2024 08:15:00 AM"},
		[2]string{"Amount", "$-2.50"},
		[2]string{"Note", "Success"},
		[2]string{"Transaction ID", "1001"},
		[2]string{"Date", "01/04/2024 05:30:00 PM"},
		[2]string{"Amount", "$-2.50"},
		[2]string{"Note", "Declined"},
		[2]string{"Transaction ID", "1000"},
	)

	records, err := Collect(Parse(sel))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, model.Record{
		"date":           "01/05/2024 08:15:00 AM",
		"amount":         "$-2.50",
		"note":           "Success",
		"transaction_id": "1001",
	}, records[0])
	assert.Equal(t, "Declined", records[1].Get("note"))
	assert.Equal(t, "1000", records[1].Get("transaction_id"))
}

func TestParse_RecordCountIsReencountersPlusOne(t *testing.T) {
	tests := []struct {
		labels []string
		want   int
	}{
		{[]string{"a"}, 1},
		{[]string{"a", "b"}, 1},
		{[]string{"a", "a"}, 2},
		{[]string{"a", "b", "a", "b", "a"}, 3},
		{[]string{"a", "b", "c", "b", "c", "a"}, 3},
	}
	for _, tt := range tests {
		var rows []model.RawRow
		for i, l := range tt.labels {
			rows = append(rows, model.RawRow{Label: l, Value: fmt.Sprint(i)})
		}
		records, err := Collect(Records(rawRows(rows...)))
		require.NoError(t, err)
		assert.Len(t, records, tt.want, "labels %v", tt.labels)
	}
}

func TestParse_EmptyTableYieldsOneEmptyRecord(t *testing.T) {
	records, err := Collect(Parse(table(t)))
	require.NoError(t, err)
	require.Len(t, records, 1, "the final accumulator is always emitted")
	assert.Empty(t, records[0])
}

func TestParse_TrailingPartialRecord(t *testing.T) {
	sel := table(t,
		[2]string{"Date", "d1"},
		[2]string{"Amount", "a1"},
		[2]string{"Date", "d2"},
	)
	records, err := Collect(Parse(sel))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.Record{"date": "d2"}, records[1])
}

func TestParse_TrimsCellText(t *testing.T) {
	d := doc(t, `<table class="basicTable"><tr>
		<td>
			Balance
		</td>
		<td> $12.75 </td>
	</tr></table>`)

	rec, err := First(Parse(d.Find(".basicTable")))
	require.NoError(t, err)
	assert.Equal(t, "$12.75", rec.Get("balance"))
}

func TestParse_MalformedRow(t *testing.T) {
	d := doc(t, `<table><tr><td>Date</td><td>x</td></tr><tr><td>only one</td></tr></table>`)

	var got []model.Record
	var gotErr error
	for rec, err := range Parse(d.Find("table")) {
		if err != nil {
			gotErr = err
			break
		}
		got = append(got, rec)
	}

	require.Error(t, gotErr)
	var mre *MalformedRowError
	require.True(t, errors.As(gotErr, &mre))
	assert.Equal(t, 1, mre.Row)
	assert.Equal(t, 1, mre.Cells)
	assert.Contains(t, gotErr.Error(), "row 1")
	assert.Empty(t, got, "nothing is emitted before the failing row completes a record")
}

func TestParse_HeaderRowIsMalformed(t *testing.T) {
	d := doc(t, `<table><tr><th>Label</th><th>Value</th></tr><tr><td>a</td><td>b</td></tr></table>`)

	_, err := Collect(Parse(d.Find("table")))
	var mre *MalformedRowError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, 0, mre.Row)
	assert.Equal(t, 0, mre.Cells)
}

func TestParse_ThreeCells(t *testing.T) {
	d := doc(t, `<table><tr><td>a</td><td>b</td><td>c</td></tr></table>`)

	_, err := Collect(Parse(d.Find("table")))
	var mre *MalformedRowError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, 3, mre.Cells)
}

func TestParse_IgnoresNestedTables(t *testing.T) {
	d := doc(t, `<table id="table">
		<tr><td>Date</td><td>01/05/2024</td></tr>
		<tr><td>Note</td><td><table><tr><td>a</td><td>b</td><td>c</td></tr></table>Success</td></tr>
		<tr><td>Date</td><td>01/04/2024</td></tr>
	</table>`)

	records, err := Collect(Parse(d.Find("#table")))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "01/05/2024", records[0].Get("date"))
	assert.Contains(t, records[0].Get("note"), "Success")
	assert.Equal(t, "01/04/2024", records[1].Get("date"))
}

func TestRecords_CollidingLabelsSplit(t *testing.T) {
	records, err := Collect(Records(rawRows(
		model.RawRow{Label: "Amount ($)", Value: "1"},
		model.RawRow{Label: "Amount_", Value: "2"},
	)))
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{"amount_": "1"}, {"amount_": "2"}}, records)
}

func TestRecords_LeadingField(t *testing.T) {
	// Second record omits the note, so re-encounter alone would merge it into the third.
	rows := rawRows(
		model.RawRow{Label: "Date", Value: "d1"},
		model.RawRow{Label: "Note", Value: "Success"},
		model.RawRow{Label: "Date", Value: "d2"},
		model.RawRow{Label: "Amount", Value: "a2"},
		model.RawRow{Label: "Date", Value: "d3"},
	)

	records, err := Collect(Records(rows, WithLeadingField("Date")))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, model.Record{"date": "d2", "amount": "a2"}, records[1])
}

func TestRecords_LeadingFieldFallsBackToReencounter(t *testing.T) {
	// The leading field never appears, so repetition still splits records.
	rows := rawRows(
		model.RawRow{Label: "Amount", Value: "a1"},
		model.RawRow{Label: "Amount", Value: "a2"},
	)

	records, err := Collect(Records(rows, WithLeadingField("date")))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecords_StopsEarly(t *testing.T) {
	rows := rawRows(
		model.RawRow{Label: "a", Value: "1"},
		model.RawRow{Label: "a", Value: "2"},
		model.RawRow{Label: "a", Value: "3"},
	)

	count := 0
	for range Records(rows) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestFirst(t *testing.T) {
	rec, err := First(Records(rawRows(
		model.RawRow{Label: "Balance", Value: "$5.00"},
		model.RawRow{Label: "Balance", Value: "$6.00"},
	)))
	require.NoError(t, err)
	assert.Equal(t, "$5.00", rec.Get("balance"))
}
