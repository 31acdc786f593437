package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/fareview/internal/model"
)

func TestBalancePoints(t *testing.T) {
	xs, ys := balancePoints(statement())

	require.Len(t, xs, 4)
	assert.Equal(t, []float64{108.5, 103.5, 100, 100}, ys)
	for i := 1; i < len(xs); i++ {
		assert.True(t, xs[i].After(xs[i-1]), "points are chronological")
	}
}

func TestBalancePoints_Empty(t *testing.T) {
	stmt := &model.Statement{Balance: dec("3"), FetchedAt: time.Date(2024, 1, 6, 8, 0, 0, 0, time.UTC)}
	xs, ys := balancePoints(stmt)
	assert.Len(t, xs, 2)
	assert.Equal(t, []float64{3, 3}, ys)
}

func TestWriteChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, statement(), NewMoney("$", "en-US")))
	assert.Contains(t, buf.String(), "<svg")
}

func TestWriteChart_FlatBalance(t *testing.T) {
	stmt := &model.Statement{Balance: dec("3"), Opening: dec("3"), FetchedAt: time.Now()}
	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, stmt, NewMoney("$", "en-US")))
	assert.Contains(t, buf.String(), "<svg")
}
