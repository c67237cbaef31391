// Package nerdgraph queries the New Relic NerdGraph API for the total, used
// and prediction result sets of a storage forecast.
package nerdgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/source"
)

// DefaultEndpoint is the US-region NerdGraph endpoint.
const DefaultEndpoint = "https://api.newrelic.com/graphql"

// DefaultTimeout bounds one Fetch round trip.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 4096

// Queries holds the three NRQL queries of a forecast chart.
type Queries struct {
	Total      string
	Used       string
	Prediction string
}

// Validate reports the first empty query.
func (q Queries) Validate() error {
	for _, s := range []struct{ name, query string }{
		{source.SetTotal, q.Total},
		{source.SetUsed, q.Used},
		{source.SetPrediction, q.Prediction},
	} {
		if strings.TrimSpace(s.query) == "" {
			return fmt.Errorf("%w: %s", ErrEmptyQuery, s.name)
		}
	}
	return nil
}

// Client is a NerdGraph API client.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint (e.g. the EU region).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client authenticating with a user API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildQuery composes the GraphQL document requesting the three NRQL result
// sets under the aliases total, used and prediction.
func BuildQuery(accountID int64, q Queries) string {
	var b strings.Builder
	b.WriteString("query {\n  actor {\n")
	fmt.Fprintf(&b, "    account(id: %d) {\n", accountID)
	for _, s := range []struct{ alias, nrql string }{
		{source.SetUsed, q.Used},
		{source.SetTotal, q.Total},
		{source.SetPrediction, q.Prediction},
	} {
		fmt.Fprintf(&b, "      %s: nrql(query: %s) {\n        results\n      }\n", s.alias, graphQLString(s.nrql))
	}
	b.WriteString("    }\n  }\n}\n")
	return b.String()
}

// graphQLString quotes s as a GraphQL string literal. JSON string escaping
// is a valid subset of GraphQL string escaping.
func graphQLString(s string) string {
	quoted, _ := json.Marshal(s)
	return string(quoted)
}

type request struct {
	Query string `json:"query"`
}

// Fetch runs the three queries against an account and returns their result sets.
func (c *Client) Fetch(ctx context.Context, accountID int64, q Queries) (*source.Results, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(request{Query: BuildQuery(accountID, q)})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("API-Key", c.apiKey)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nerdgraph request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("nerdgraph response",
		"endpoint", c.endpoint,
		"account_id", accountID,
		"status", resp.StatusCode,
		"elapsed", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	var out source.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding nerdgraph response: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, &QueryError{Errors: out.Errors}
	}

	res, err := out.Results()
	if err != nil {
		return nil, err
	}
	c.log.Debug("nerdgraph results",
		"total", len(res.Total),
		"used", len(res.Used),
		"prediction", len(res.Prediction),
	)
	return res, nil
}
