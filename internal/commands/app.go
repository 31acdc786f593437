package commands

import (
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/fareview/internal/activity"
	"github.com/cleared-dev/fareview/internal/config"
	"github.com/cleared-dev/fareview/internal/farepay"
	"github.com/cleared-dev/fareview/internal/logger"
	"github.com/cleared-dev/fareview/internal/render"
)

// app holds everything a command needs once config is resolved.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	money   render.Money
	service *farepay.Service
}

// loadConfig reads the config file, when present, then applies FAREVIEW_* overrides.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApp(configPath string) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	client, err := farepay.NewClient(&http.Client{Timeout: cfg.Source.Timeout}, cfg.Source.Endpoint, cfg.Source.CardParam)
	if err != nil {
		return nil, fmt.Errorf("configuring source: %w", err)
	}
	fetcher := farepay.NewCachedFetcher(client, cfg.Source.CacheTTL, log)

	opts := activity.Options{
		SummarySelector:     cfg.Source.SummarySelector,
		TransactionSelector: cfg.Source.TransactionSelector,
		SuccessNote:         cfg.Source.SuccessNote,
		LeadingField:        cfg.Source.LeadingField,
		Location:            loc,
	}

	return &app{
		cfg:     cfg,
		log:     log,
		money:   render.NewMoney(cfg.Display.CurrencySymbol, cfg.Display.Locale),
		service: farepay.NewService(fetcher, opts, log),
	}, nil
}
