package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/fareview/internal/model"
)

func entriesAt(times ...[3]int) []model.BalanceEntry {
	out := make([]model.BalanceEntry, len(times))
	for i, tm := range times {
		out[i].Time = at(2024, 1, tm[0], tm[1], tm[2], 0)
	}
	return out
}

func groups(entries []model.BalanceEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Group
	}
	return out
}

func TestGroup(t *testing.T) {
	entries := entriesAt(
		[3]int{6, 18, 0},
		[3]int{6, 8, 0},
		[3]int{5, 17, 0},
		[3]int{4, 9, 0},
		[3]int{4, 7, 30},
	)
	assert.Equal(t, []int{1, 1, 2, 3, 3}, groups(Group(entries)))
}

func TestGroup_NonContiguousDatesGetNewIDs(t *testing.T) {
	entries := entriesAt([3]int{5, 9, 0}, [3]int{4, 9, 0}, [3]int{5, 8, 0})
	assert.Equal(t, []int{1, 2, 3}, groups(Group(entries)))
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil))
}

func TestGroup_AfterMidnightAdjustment(t *testing.T) {
	// A 00:00 tap joins the previous evening's run once adjusted.
	entries := Build(dec("5.00"), []model.Transaction{
		{ID: "late", Time: at(2024, 1, 5, 0, 0, 0), Amount: dec("-1.00")},
		{ID: "evening", Time: at(2024, 1, 4, 20, 0, 0), Amount: dec("-1.00")},
	})
	assert.Equal(t, []int{1, 1}, groups(Group(entries)))
}
