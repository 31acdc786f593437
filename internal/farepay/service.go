package farepay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fareview/internal/activity"
	"github.com/cleared-dev/fareview/internal/balance"
	"github.com/cleared-dev/fareview/internal/model"
)

// Service produces a Statement per card: one fetch, one parse, one reconstruction.
type Service struct {
	fetcher Fetcher
	opts    activity.Options
	log     zerolog.Logger
	now     func() time.Time
}

// NewService creates a Service.
func NewService(fetcher Fetcher, opts activity.Options, log zerolog.Logger) *Service {
	return &Service{fetcher: fetcher, opts: opts, log: log, now: time.Now}
}

// Statement fetches and rebuilds the balance history for card.
// Failures are returned as-is; there are no retries.
func (s *Service) Statement(ctx context.Context, card string) (*model.Statement, error) {
	if strings.TrimSpace(card) == "" {
		return nil, ErrEmptyCard
	}
	log := s.log.With().Str("card", card).Logger()

	start := s.now()
	page, err := s.fetcher.FetchActivity(ctx, card)
	if err != nil {
		log.Error().Err(err).Msg("fetching activity failed")
		return nil, err
	}

	doc, err := activity.Extract(strings.NewReader(page), s.opts)
	if err != nil {
		log.Warn().Err(err).Msg("reading activity page failed")
		return nil, fmt.Errorf("card %s: %w", card, err)
	}

	entries := balance.Group(balance.Build(doc.Balance, doc.Transactions))
	amounts := make([]decimal.Decimal, 0, len(doc.Transactions))
	for _, txn := range doc.Transactions {
		amounts = append(amounts, txn.Amount)
	}

	stmt := &model.Statement{
		Card:      card,
		Balance:   doc.Balance,
		Opening:   balance.Opening(doc.Balance, amounts),
		Entries:   entries,
		FetchedAt: s.now(),
	}
	log.Info().
		Int("transactions", len(entries)).
		Str("balance", doc.Balance.StringFixed(2)).
		Dur("duration", stmt.FetchedAt.Sub(start)).
		Msg("statement built")
	return stmt, nil
}
