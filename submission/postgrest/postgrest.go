// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package postgrest inserts survey responses into a Supabase hosted
// table through its PostgREST endpoint.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/submission"
)

const backendName = "supabase"

// Upper bound on how much of an error body is read
const maxErrorBody = 64 << 10

type Config struct {
	URL     string
	APIKey  string
	Table   string
	Timeout time.Duration
}

type Client struct {
	cfg      Config
	endpoint string
	http     *http.Client
}

// apiError is the PostgREST error body
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func New(cfg Config) *Client {
	return &Client{
		cfg:      cfg,
		endpoint: strings.TrimRight(cfg.URL, "/") + "/rest/v1/" + url.PathEscape(cfg.Table),
		http:     &http.Client{Timeout: cfg.Timeout},
	}
}

// Insert posts one row. Any non-2xx answer is a SubmissionError.
func (c *Client) Insert(ctx context.Context, resp models.SurveyResponse) error {
	body, err := json.Marshal(resp)
	if err != nil {
		return submission.Wrap(backendName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return submission.Wrap(backendName, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")
	if c.cfg.APIKey != "" {
		req.Header.Set("apikey", c.cfg.APIKey)
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	res, err := c.http.Do(req)
	if err != nil {
		slog.Error("unexpected error in insert call", "backend", backendName, "error", err)
		return submission.Wrap(backendName, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		io.Copy(io.Discard, res.Body)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	return &submission.SubmissionError{
		Backend:    backendName,
		StatusCode: res.StatusCode,
		Message:    errorMessage(raw),
	}
}

func errorMessage(raw []byte) string {
	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		if apiErr.Code != "" {
			return apiErr.Code + ": " + apiErr.Message
		}
		return apiErr.Message
	}
	return strings.TrimSpace(string(raw))
}
