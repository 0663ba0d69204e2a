// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/submission"
	"github.com/danielhkuo/quickly-rate/survey"
	"github.com/danielhkuo/quickly-rate/testutil"
)

// newTestSurvey builds a controller that moves to detail immediately
func newTestSurvey(t *testing.T, client submission.Client, skipDetail bool) (*survey.Controller, *clock.Mock) {
	t.Helper()

	cfg := testutil.GetTestConfig()
	mock := clock.NewMock()
	ctrl := survey.New(survey.Config{
		LocationID:    cfg.LocationID,
		SkipDetail:    skipDetail,
		ThanksDelay:   cfg.ThanksDelay,
		SubmitTimeout: cfg.SubmitTimeout,
		Locale:        cfg.Locale,
	}, client, survey.WithClock(mock))
	t.Cleanup(ctrl.Close)
	return ctrl, mock
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) survey.View {
	t.Helper()
	var v survey.View
	testutil.AssertJSON(t, w, &v)
	return v
}

func TestGetView(t *testing.T) {
	ctrl, _ := newTestSurvey(t, testutil.NewFakeClient(), false)
	handler := NewSurveyHandler(ctrl)

	w := httptest.NewRecorder()
	handler.GetView(w, testutil.MakeRequest("GET", "/survey", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	v := decodeView(t, w)
	if v.Step != models.StepScoring || v.LocationID != testutil.TestLocation {
		t.Errorf("Unexpected view %+v", v)
	}
	if len(v.ScoreScale) != 11 || len(v.Ratings) != len(models.Aspects) {
		t.Errorf("Expected 11 score buttons and %d aspects, got %d and %d",
			len(models.Aspects), len(v.ScoreScale), len(v.Ratings))
	}
	if v.Labels.Submit != "Finish survey" {
		t.Errorf("Expected English labels, got %q", v.Labels.Submit)
	}
}

func TestSelectScore(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{"valid score", map[string]int{"score": 9}, http.StatusOK},
		{"zero is valid", map[string]int{"score": 0}, http.StatusOK},
		{"above range", map[string]int{"score": 11}, http.StatusBadRequest},
		{"negative", map[string]int{"score": -1}, http.StatusBadRequest},
		{"missing score", map[string]string{}, http.StatusBadRequest},
		{"unknown field", map[string]int{"nps": 9}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, _ := newTestSurvey(t, testutil.NewFakeClient(), false)
			handler := NewSurveyHandler(ctrl)

			w := httptest.NewRecorder()
			handler.SelectScore(w, testutil.MakeRequest("POST", "/survey/score", tt.body, nil))
			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusOK {
				if v := decodeView(t, w); v.Step != models.StepDetail || v.Score == nil {
					t.Errorf("Expected detail with a score, got %+v", v)
				}
			}
		})
	}
}

func TestSelectScoreInvalidJSON(t *testing.T) {
	ctrl, _ := newTestSurvey(t, testutil.NewFakeClient(), false)
	handler := NewSurveyHandler(ctrl)

	req := httptest.NewRequest("POST", "/survey/score", strings.NewReader("{nope"))
	w := httptest.NewRecorder()
	handler.SelectScore(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSelectScoreWrongStep(t *testing.T) {
	ctrl, _ := newTestSurvey(t, testutil.NewFakeClient(), false)
	handler := NewSurveyHandler(ctrl)

	for i, want := range []int{http.StatusOK, http.StatusConflict} {
		w := httptest.NewRecorder()
		handler.SelectScore(w, testutil.MakeRequest("POST", "/survey/score", map[string]int{"score": 5}, nil))
		if w.Code != want {
			t.Errorf("Request %d: expected %d, got %d", i, want, w.Code)
		}
	}
}

func TestSetRating(t *testing.T) {
	tests := []struct {
		name       string
		aspect     string
		body       interface{}
		wantStatus int
		wantValue  int
	}{
		{"valid", "cleanliness", map[string]int{"value": 4}, http.StatusOK, 4},
		{"clamped", "ambiance", map[string]int{"value": 9}, http.StatusOK, 5},
		{"unknown aspect", "parking", map[string]int{"value": 3}, http.StatusBadRequest, 0},
		{"missing value", "facilities", map[string]string{}, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, _ := newTestSurvey(t, testutil.NewFakeClient(), false)
			ctrl.SelectScore(t.Context(), 8)
			handler := NewSurveyHandler(ctrl)

			req := testutil.MakeRequest("POST", "/survey/ratings/"+tt.aspect, tt.body, nil)
			req.SetPathValue("aspect", tt.aspect)
			w := httptest.NewRecorder()
			handler.SetRating(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				return
			}
			for _, r := range decodeView(t, w).Ratings {
				if string(r.Aspect) == tt.aspect && r.Value != tt.wantValue {
					t.Errorf("Expected %s = %d, got %d", tt.aspect, tt.wantValue, r.Value)
				}
			}
		})
	}
}

func TestSetRatingBeforeScore(t *testing.T) {
	ctrl, _ := newTestSurvey(t, testutil.NewFakeClient(), false)
	handler := NewSurveyHandler(ctrl)

	req := testutil.MakeRequest("POST", "/survey/ratings/facilities", map[string]int{"value": 3}, nil)
	req.SetPathValue("aspect", "facilities")
	w := httptest.NewRecorder()
	handler.SetRating(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestHover(t *testing.T) {
	ctrl, _ := newTestSurvey(t, testutil.NewFakeClient(), false)
	handler := NewSurveyHandler(ctrl)

	w := httptest.NewRecorder()
	handler.Hover(w, testutil.MakeRequest("POST", "/survey/hover", map[string]interface{}{"target": "score", "value": 3}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if v := decodeView(t, w); v.Sentiment != survey.Detractor || v.Hue != "warning" {
		t.Errorf("Expected detractor preview, got %s/%s", v.Sentiment, v.Hue)
	}

	w = httptest.NewRecorder()
	handler.Hover(w, testutil.MakeRequest("POST", "/survey/hover", map[string]interface{}{"target": "score", "value": nil}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if v := decodeView(t, w); v.Sentiment != "" {
		t.Errorf("Expected the preview to clear, got %s", v.Sentiment)
	}

	// aspect hover is only meaningful in detail
	w = httptest.NewRecorder()
	handler.Hover(w, testutil.MakeRequest("POST", "/survey/hover", map[string]interface{}{"target": "ambiance", "value": 2}, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = httptest.NewRecorder()
	handler.Hover(w, testutil.MakeRequest("POST", "/survey/hover", map[string]interface{}{"target": "parking", "value": 2}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSubmit(t *testing.T) {
	t.Run("without score", func(t *testing.T) {
		ctrl, _ := newTestSurvey(t, testutil.NewFakeClient(), true)
		handler := NewSurveyHandler(ctrl)

		w := httptest.NewRecorder()
		handler.Submit(w, testutil.MakeRequest("POST", "/survey/submit", nil, nil))
		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("from scoring", func(t *testing.T) {
		ctrl, _ := newTestSurvey(t, testutil.NewFakeClient(), false)
		handler := NewSurveyHandler(ctrl)

		w := httptest.NewRecorder()
		handler.Submit(w, testutil.MakeRequest("POST", "/survey/submit", nil, nil))
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("backend failure", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.SetErr(&submission.SubmissionError{Backend: "supabase", StatusCode: 401, Message: "Invalid API key"})
		ctrl, _ := newTestSurvey(t, client, false)
		ctrl.SelectScore(t.Context(), 6)
		handler := NewSurveyHandler(ctrl)

		w := httptest.NewRecorder()
		handler.Submit(w, testutil.MakeRequest("POST", "/survey/submit", nil, nil))
		testutil.AssertStatus(t, w, http.StatusBadGateway)
		if !strings.Contains(w.Body.String(), "Invalid API key") {
			t.Errorf("Expected the backend message, got %s", w.Body.String())
		}
		if v := ctrl.View(); v.Step != models.StepDetail || v.Busy {
			t.Errorf("Expected detail and not busy after failure, got %+v", v)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		client := testutil.NewFakeClient()
		client.SetErr(errors.New("dial tcp: connection refused"))
		ctrl, _ := newTestSurvey(t, client, false)
		ctrl.SelectScore(t.Context(), 6)
		handler := NewSurveyHandler(ctrl)

		w := httptest.NewRecorder()
		handler.Submit(w, testutil.MakeRequest("POST", "/survey/submit", nil, nil))
		testutil.AssertStatus(t, w, http.StatusBadGateway)
	})

	t.Run("success", func(t *testing.T) {
		client := testutil.NewFakeClient()
		ctrl, _ := newTestSurvey(t, client, false)
		ctrl.SelectScore(t.Context(), 10)
		handler := NewSurveyHandler(ctrl)

		w := httptest.NewRecorder()
		handler.Submit(w, testutil.MakeRequest("POST", "/survey/submit", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
		v := decodeView(t, w)
		if v.Step != models.StepThanks || v.ResetInMs != (5*time.Second).Milliseconds() {
			t.Errorf("Expected thanks with a 5s countdown, got %+v", v)
		}
		if client.CallCount() != 1 {
			t.Errorf("Expected 1 insert, got %d", client.CallCount())
		}
	})
}

func TestCommentAndReset(t *testing.T) {
	ctrl, _ := newTestSurvey(t, testutil.NewFakeClient(), false)
	ctrl.SelectScore(t.Context(), 7)
	handler := NewSurveyHandler(ctrl)

	w := httptest.NewRecorder()
	handler.SetComment(w, testutil.MakeRequest("POST", "/survey/comment", map[string]string{"comment": "Todo bien"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if v := decodeView(t, w); v.Comment != "Todo bien" {
		t.Errorf("Expected comment to be stored, got %q", v.Comment)
	}

	w = httptest.NewRecorder()
	handler.Reset(w, testutil.MakeRequest("POST", "/survey/reset", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if v := decodeView(t, w); v.Step != models.StepScoring || v.Comment != "" || v.Score != nil {
		t.Errorf("Expected a fresh form, got %+v", v)
	}
}

func TestClosedController(t *testing.T) {
	ctrl, _ := newTestSurvey(t, testutil.NewFakeClient(), false)
	ctrl.Close()
	handler := NewSurveyHandler(ctrl)

	w := httptest.NewRecorder()
	handler.SelectScore(w, testutil.MakeRequest("POST", "/survey/score", map[string]int{"score": 3}, nil))
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
}
