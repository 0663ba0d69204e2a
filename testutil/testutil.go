// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/db"
	"github.com/danielhkuo/quickly-rate/models"
)

// TestTable is the response table used by SQL tests
const TestTable = "surveys"

// TestLocation is the kiosk location used across tests
const TestLocation = "Squash"

// SetupTestDB opens a fresh in-memory SQLite database with the schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every new connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn, TestTable); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		LocationID:      TestLocation,
		Backend:         cliparse.BackendSQLite,
		DatabaseURL:     ":memory:",
		Table:           TestTable,
		TransitionDelay: 400 * time.Millisecond,
		ThanksDelay:     5 * time.Second,
		SubmitTimeout:   time.Second,
		Locale:          "en",
		LogLevel:        "error",
	}
}

// CountRows returns the number of stored responses
func CountRows(t *testing.T, conn *sql.DB) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + TestTable).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

// FakeClient is a scriptable submission client that records every insert.
type FakeClient struct {
	mu      sync.Mutex
	calls   []models.SurveyResponse
	err     error
	block   chan struct{}
	started chan struct{}
}

func NewFakeClient() *FakeClient {
	return &FakeClient{started: make(chan struct{}, 16)}
}

func (f *FakeClient) Insert(ctx context.Context, resp models.SurveyResponse) error {
	f.mu.Lock()
	f.calls = append(f.calls, resp)
	block := f.block
	err := f.err
	f.mu.Unlock()

	select {
	case f.started <- struct{}{}:
	default:
	}

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// SetErr makes every following insert fail with err (nil restores success)
func (f *FakeClient) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Hold makes inserts wait until the returned release func is called
func (f *FakeClient) Hold() (release func()) {
	ch := make(chan struct{})
	f.mu.Lock()
	f.block = ch
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			f.block = nil
			f.mu.Unlock()
			close(ch)
		})
	}
}

// Started receives once per insert that has begun
func (f *FakeClient) Started() <-chan struct{} {
	return f.started
}

// Calls returns a copy of every recorded insert
func (f *FakeClient) Calls() []models.SurveyResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SurveyResponse(nil), f.calls...)
}

func (f *FakeClient) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// WaitFor polls cond until it holds or the timeout expires
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool, what string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
