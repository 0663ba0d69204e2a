// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielhkuo/quickly-rate/models"
)

// Client inserts one survey response into the response table.
type Client interface {
	Insert(ctx context.Context, resp models.SurveyResponse) error
}

// SubmissionError is the only failure kind of a remote insert: network
// errors, backend rejections and constraint violations all map here.
type SubmissionError struct {
	Backend    string
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmissionError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s insert failed (%d %s): %s", e.Backend, e.StatusCode, http.StatusText(e.StatusCode), msg)
	}
	return fmt.Sprintf("%s insert failed: %s", e.Backend, msg)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Wrap turns any error into a *SubmissionError, keeping one that is
// already of that kind.
func Wrap(backend string, err error) error {
	if err == nil {
		return nil
	}
	var se *SubmissionError
	if errors.As(err, &se) {
		return se
	}
	return &SubmissionError{Backend: backend, Err: err}
}

// ClientFunc adapts a function to the Client interface
type ClientFunc func(ctx context.Context, resp models.SurveyResponse) error

func (f ClientFunc) Insert(ctx context.Context, resp models.SurveyResponse) error {
	return f(ctx, resp)
}
