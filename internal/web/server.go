// Package web serves the interactive balance view.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/fareview/internal/activity"
	"github.com/cleared-dev/fareview/internal/config"
	"github.com/cleared-dev/fareview/internal/farepay"
	"github.com/cleared-dev/fareview/internal/htmltable"
	"github.com/cleared-dev/fareview/internal/logger"
	"github.com/cleared-dev/fareview/internal/model"
	"github.com/cleared-dev/fareview/internal/render"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 10 * time.Second

// User-facing error messages.
const (
	msgCardNotFound = "Could not find transactions. Please check your card number."
	msgUnreachable  = "Could not reach the card activity page. Please try again later."
	msgUnreadable   = "The card activity page could not be read."
	msgInternal     = "Something went wrong while building the statement."
)

// StatementSource builds a statement for a card.
type StatementSource interface {
	Statement(ctx context.Context, card string) (*model.Statement, error)
}

// Server renders statements as HTML, SVG and JSON.
type Server struct {
	source     StatementSource
	money      render.Money
	showAmount bool
	log        zerolog.Logger
	page       *template.Template
}

// NewServer creates a Server. showAmount is the default for the amount column.
func NewServer(source StatementSource, money render.Money, showAmount bool, log zerolog.Logger) (*Server, error) {
	page, err := template.ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{source: source, money: money, showAmount: showAmount, log: log, page: page}, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /chart.svg", s.handleChart)
	mux.HandleFunc("GET /api/statement", s.handleStatementJSON)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return recovery(s.log)(requestID(requestLogger(s.log)(mux)))
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", cfg.Addr).Msg("Starting web server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

type viewOptions struct {
	Card       string
	Grouped    bool
	ShowAmount bool
}

func (s *Server) viewOptions(r *http.Request) viewOptions {
	q := r.URL.Query()
	show := s.showAmount
	switch q.Get("amount") {
	case "hide", "0", "false":
		show = false
	case "show", "1", "true":
		show = true
	}
	return viewOptions{
		Card:       strings.TrimSpace(q.Get("card")),
		Grouped:    q.Get("view") == "grouped",
		ShowAmount: show,
	}
}

// link builds a query string for the current card with one view setting changed.
func (v viewOptions) link(grouped, showAmount bool) string {
	q := url.Values{}
	q.Set("card", v.Card)
	if grouped {
		q.Set("view", "grouped")
	}
	if showAmount {
		q.Set("amount", "show")
	} else {
		q.Set("amount", "hide")
	}
	return "/?" + q.Encode()
}

type pageData struct {
	Card        string
	Error       string
	HasData     bool
	Balance     string
	Opening     string
	FetchedAt   string
	Rows        []render.Row
	Grouped     bool
	ShowAmount  bool
	ChartURL    string
	GroupedURL  string
	AmountURL   string
	AmountLabel string
	ViewLabel   string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts := s.viewOptions(r)
	data := pageData{Card: opts.Card, Grouped: opts.Grouped, ShowAmount: opts.ShowAmount}

	if opts.Card == "" {
		s.renderPage(w, r, http.StatusOK, data)
		return
	}

	stmt, err := s.source.Statement(r.Context(), opts.Card)
	if err != nil {
		status, msg := classify(err)
		logger.FromContext(r.Context()).Warn().Err(err).Int("status", status).Msg("statement failed")
		data.Error = msg
		s.renderPage(w, r, status, data)
		return
	}

	data.HasData = true
	data.Balance = s.money.Format(stmt.Balance)
	data.Opening = s.money.Format(stmt.Opening)
	data.FetchedAt = stmt.FetchedAt.Format("Jan 2, 3:04 pm")
	data.Rows = render.Rows(stmt.Entries, s.money)
	data.ChartURL = "/chart.svg?" + url.Values{"card": {opts.Card}}.Encode()
	data.GroupedURL = opts.link(!opts.Grouped, opts.ShowAmount)
	data.AmountURL = opts.link(opts.Grouped, !opts.ShowAmount)
	data.ViewLabel = "Group by day"
	if opts.Grouped {
		data.ViewLabel = "Plain list"
	}
	data.AmountLabel = "Hide amounts"
	if !opts.ShowAmount {
		data.AmountLabel = "Show amounts"
	}
	s.renderPage(w, r, http.StatusOK, data)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, data); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("rendering page failed")
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	card := strings.TrimSpace(r.URL.Query().Get("card"))
	stmt, err := s.source.Statement(r.Context(), card)
	if err != nil {
		status, msg := classify(err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.WriteChart(w, stmt, s.money); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("rendering chart failed")
	}
}

type statementResponse struct {
	Card      string          `json:"card"`
	Balance   string          `json:"balance"`
	Opening   string          `json:"opening"`
	FetchedAt time.Time       `json:"fetched_at"`
	Entries   []entryResponse `json:"entries"`
}

type entryResponse struct {
	TransactionID string    `json:"transaction_id"`
	Time          time.Time `json:"time"`
	Amount        string    `json:"amount"`
	Balance       string    `json:"balance"`
	Group         int       `json:"group"`
}

func (s *Server) handleStatementJSON(w http.ResponseWriter, r *http.Request) {
	card := strings.TrimSpace(r.URL.Query().Get("card"))
	stmt, err := s.source.Statement(r.Context(), card)
	if err != nil {
		status, msg := classify(err)
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}

	resp := statementResponse{
		Card:      stmt.Card,
		Balance:   stmt.Balance.StringFixed(2),
		Opening:   stmt.Opening.StringFixed(2),
		FetchedAt: stmt.FetchedAt,
		Entries:   make([]entryResponse, len(stmt.Entries)),
	}
	for i, e := range stmt.Entries {
		resp.Entries[i] = entryResponse{
			TransactionID: e.ID,
			Time:          e.Time,
			Amount:        e.Amount.StringFixed(2),
			Balance:       e.Balance.StringFixed(2),
			Group:         e.Group,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// classify maps a statement error to an HTTP status and a user-facing message.
func classify(err error) (int, string) {
	var malformed *htmltable.MalformedRowError
	switch {
	case errors.Is(err, activity.ErrCardNotFound):
		return http.StatusNotFound, msgCardNotFound
	case errors.Is(err, farepay.ErrEmptyCard):
		return http.StatusBadRequest, farepay.ErrEmptyCard.Error()
	case errors.As(err, &malformed):
		return http.StatusInternalServerError, msgUnreadable
	case errors.Is(err, farepay.ErrUnexpectedStatus), isTransportError(err):
		return http.StatusBadGateway, msgUnreachable
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func isTransportError(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
