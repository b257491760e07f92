package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Fetcher is the slice of the upstream backend the report controllers use.
type Fetcher interface {
	// FetchReport issues GET /reports/<name> for the requested window and
	// returns the decoded payload, whatever shape the backend chose.
	FetchReport(ctx context.Context, name string, from, to time.Time) (any, error)
	// ReadTables issues the generic POST /read call with the profile's
	// account and retail codes.
	ReadTables(ctx context.Context, tables ...string) (any, error)
}

// envelope is the usual response wrapper. data may be an array, an object
// one level deeper, or absent entirely; callers hand the decoded payload to
// the ingest package rather than trusting any of it.
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type Client struct {
	http    *http.Client
	profile domain.ConnectionProfile
}

func New(profile domain.ConnectionProfile) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		profile: profile,
	}
}

func (c *Client) FetchReport(ctx context.Context, name string, from, to time.Time) (any, error) {
	query := url.Values{}
	query.Set("salon_id", c.profile.SalonID)
	if !from.IsZero() {
		query.Set("from_date", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		query.Set("to_date", to.Format("2006-01-02"))
	}
	return c.do(ctx, http.MethodGet, "/reports/"+name, query, nil)
}

func (c *Client) ReadTables(ctx context.Context, tables ...string) (any, error) {
	body := map[string]any{
		"tables":       tables,
		"account_code": c.profile.AccountCode,
		"retail_code":  c.profile.RetailCode,
	}
	return c.do(ctx, http.MethodPost, "/read", nil, body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (any, error) {
	logger := zerolog.Ctx(ctx)

	u := c.profile.Host + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.profile.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.profile.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("backend request failed")
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("failed to read response body")
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("backend returned %s for %s", resp.Status, path)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Success != nil && !*env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = "backend reported failure"
		}
		return nil, fmt.Errorf("backend error for %s: %s", path, msg)
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Not fatal for the pipeline: an undecodable body degrades to an
		// empty dataset downstream.
		logger.Warn().Err(err).Str("path", path).Msg("undecodable backend payload")
		return nil, nil
	}
	return payload, nil
}
