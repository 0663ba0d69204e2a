// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-rate/db"
	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/submission/sqlstore"
	"github.com/danielhkuo/quickly-rate/testutil"
)

// TestFullSurveyWorkflow drives one guest through the kiosk against a
// SQLite response table:
// 1. Pick a score
// 2. Rate two aspects and leave a comment
// 3. Submit
// 4. Verify the stored row
// 5. Wait out the thanks screen
func TestFullSurveyWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	store, err := sqlstore.New(conn, db.SQLite, testutil.TestTable)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	ctrl, mock := newTestSurvey(t, store, false)
	handler := NewSurveyHandler(ctrl)
	statusHandler := NewStatusHandler(ctrl, "sqlite")

	// Step 1: score
	w := httptest.NewRecorder()
	handler.SelectScore(w, testutil.MakeRequest("POST", "/survey/score", map[string]int{"score": 9}, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 1 - Select score failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 2: detail
	ratings := map[string]int{"facilities": 4, "valueForMoney": 3}
	for aspect, value := range ratings {
		req := testutil.MakeRequest("POST", "/survey/ratings/"+aspect, map[string]int{"value": value}, nil)
		req.SetPathValue("aspect", aspect)
		w := httptest.NewRecorder()
		handler.SetRating(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("Step 2 - Rate %s failed: %d - %s", aspect, w.Code, w.Body.String())
		}
	}
	w = httptest.NewRecorder()
	handler.SetComment(w, testutil.MakeRequest("POST", "/survey/comment", map[string]string{"comment": "great"}, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Comment failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 3: submit
	w = httptest.NewRecorder()
	handler.Submit(w, testutil.MakeRequest("POST", "/survey/submit", nil, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Submit failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 4: stored row
	if n := testutil.CountRows(t, conn); n != 1 {
		t.Fatalf("Step 4 - Expected 1 row, got %d", n)
	}
	var (
		location, comment string
		score             int
		rawRatings        string
	)
	err = conn.QueryRow(`SELECT location_id, score, comment, additional_ratings FROM `+testutil.TestTable).
		Scan(&location, &score, &comment, &rawRatings)
	if err != nil {
		t.Fatalf("Step 4 - Query failed: %v", err)
	}
	if location != testutil.TestLocation || score != 9 || comment != "great" {
		t.Errorf("Step 4 - Unexpected row: %s %d %q", location, score, comment)
	}
	var stored models.Ratings
	if err := json.Unmarshal([]byte(rawRatings), &stored); err != nil {
		t.Fatalf("Step 4 - Bad ratings JSON %q: %v", rawRatings, err)
	}
	want := models.Ratings{
		models.AspectFacilities:       4,
		models.AspectCleanliness:      0,
		models.AspectServiceAttention: 0,
		models.AspectAmbiance:         0,
		models.AspectValueForMoney:    3,
	}
	for a, v := range want {
		if stored[a] != v {
			t.Errorf("Step 4 - Expected %s = %d, got %d", a, v, stored[a])
		}
	}

	w = httptest.NewRecorder()
	statusHandler.GetStatus(w, testutil.MakeRequest("GET", "/status", nil, nil))
	var status models.StatusResponse
	testutil.AssertJSON(t, w, &status)
	if status.Submitted != 1 || status.Step != models.StepThanks || status.Backend != "sqlite" {
		t.Errorf("Step 4 - Unexpected status %+v", status)
	}

	// Step 5: thanks auto-reset
	mock.Add(5 * time.Second)
	testutil.WaitFor(t, time.Second, func() bool {
		return ctrl.View().Step == models.StepScoring
	}, "reset to scoring")

	w = httptest.NewRecorder()
	handler.GetView(w, testutil.MakeRequest("GET", "/survey", nil, nil))
	if v := decodeView(t, w); v.Score != nil || v.Comment != "" {
		t.Errorf("Step 5 - Expected a cleared form, got %+v", v)
	}
}

// TestMinimalSurveyWorkflow stores a score with no aspect ratings
func TestMinimalSurveyWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	store, err := sqlstore.New(conn, db.SQLite, testutil.TestTable)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	ctrl, _ := newTestSurvey(t, store, true)
	handler := NewSurveyHandler(ctrl)

	w := httptest.NewRecorder()
	handler.SelectScore(w, testutil.MakeRequest("POST", "/survey/score", map[string]int{"score": 4}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if v := decodeView(t, w); v.Step != models.StepThanks {
		t.Fatalf("Expected an immediate submission, got step %s", v.Step)
	}

	var ratingsNull bool
	err = conn.QueryRow(`SELECT additional_ratings IS NULL FROM ` + testutil.TestTable).Scan(&ratingsNull)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if !ratingsNull {
		t.Error("Expected additional_ratings to be NULL in the minimal flow")
	}
}
