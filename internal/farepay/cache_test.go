package farepay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls map[string]int
	page  string
	err   error
}

func (f *countingFetcher) FetchActivity(_ context.Context, card string) (string, error) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[card]++
	if f.err != nil {
		return "", f.err
	}
	return f.page + card, nil
}

func TestCachedFetcher_HitsWithinTTL(t *testing.T) {
	next := &countingFetcher{page: "page-"}
	f := NewCachedFetcher(next, time.Minute, zerolog.Nop())

	for range 3 {
		page, err := f.FetchActivity(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, "page-1", page)
	}
	assert.Equal(t, 1, next.calls["1"])
}

func TestCachedFetcher_KeyedByCard(t *testing.T) {
	next := &countingFetcher{page: "page-"}
	f := NewCachedFetcher(next, time.Minute, zerolog.Nop())

	a, err := f.FetchActivity(context.Background(), "a")
	require.NoError(t, err)
	b, err := f.FetchActivity(context.Background(), "b")
	require.NoError(t, err)

	assert.Equal(t, "page-a", a)
	assert.Equal(t, "page-b", b)
	assert.Equal(t, 1, next.calls["a"])
	assert.Equal(t, 1, next.calls["b"])
}

func TestCachedFetcher_Expires(t *testing.T) {
	next := &countingFetcher{page: "page-"}
	f := NewCachedFetcher(next, 20*time.Millisecond, zerolog.Nop())

	_, err := f.FetchActivity(context.Background(), "1")
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	_, err = f.FetchActivity(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls["1"])
}

func TestCachedFetcher_ErrorsNotCached(t *testing.T) {
	next := &countingFetcher{err: errors.New("boom")}
	f := NewCachedFetcher(next, time.Minute, zerolog.Nop())

	_, err := f.FetchActivity(context.Background(), "1")
	require.Error(t, err)
	_, err = f.FetchActivity(context.Background(), "1")
	require.Error(t, err)

	assert.Equal(t, 2, next.calls["1"])
}

func TestCachedFetcher_Disabled(t *testing.T) {
	next := &countingFetcher{page: "p"}
	f := NewCachedFetcher(next, 0, zerolog.Nop())

	for range 2 {
		_, err := f.FetchActivity(context.Background(), "1")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, next.calls["1"])
	f.Forget("1")
}

func TestCachedFetcher_Forget(t *testing.T) {
	next := &countingFetcher{page: "p"}
	f := NewCachedFetcher(next, time.Minute, zerolog.Nop())

	_, err := f.FetchActivity(context.Background(), "1")
	require.NoError(t, err)
	f.Forget("1")
	_, err = f.FetchActivity(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls["1"])
}
