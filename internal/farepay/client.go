// Package farepay fetches card activity pages and turns them into statements.
package farepay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxPageBytes caps how much of an activity page is read.
const maxPageBytes = 8 << 20

// ErrEmptyCard is returned when no card number was supplied.
var ErrEmptyCard = errors.New("card number is required")

// ErrUnexpectedStatus is the sentinel wrapped by StatusError.
var ErrUnexpectedStatus = errors.New("unexpected http status code")

// StatusError reports a non-200 answer from the activity page.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.Code)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// Fetcher returns the raw activity page for a card.
type Fetcher interface {
	FetchActivity(ctx context.Context, card string) (string, error)
}

// Client issues the activity page GET.
type Client struct {
	HTTPClient *http.Client
	Endpoint   *url.URL
	CardParam  string
}

// NewClient creates a Client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, endpoint, cardParam string) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing endpoint %q: missing scheme or host", endpoint)
	}
	if cardParam == "" {
		cardParam = "cardNum"
	}
	return &Client{HTTPClient: httpClient, Endpoint: u, CardParam: cardParam}, nil
}

// FetchActivity GETs the activity page with the card number as a query parameter.
// The card is sent verbatim; only emptiness is checked.
func (c *Client) FetchActivity(ctx context.Context, card string) (string, error) {
	if strings.TrimSpace(card) == "" {
		return "", ErrEmptyCard
	}

	u := *c.Endpoint
	q := u.Query()
	q.Set(c.CardParam, card)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching activity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("reading activity page: %w", err)
	}
	return string(body), nil
}
