// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-rate/middleware"
	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/rating"
	"github.com/danielhkuo/quickly-rate/submission"
	"github.com/danielhkuo/quickly-rate/survey"
)

type SurveyHandler struct {
	ctrl *survey.Controller
}

func NewSurveyHandler(ctrl *survey.Controller) *SurveyHandler {
	return &SurveyHandler{ctrl: ctrl}
}

// GetView handles GET /survey
func (h *SurveyHandler) GetView(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.ctrl.View())
}

// SelectScore handles POST /survey/score
func (h *SurveyHandler) SelectScore(w http.ResponseWriter, r *http.Request) {
	var req models.SelectScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Score == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "score is required")
		return
	}

	if err := h.ctrl.SelectScore(r.Context(), *req.Score); err != nil {
		writeSurveyError(w, err)
		return
	}
	h.GetView(w, r)
}

// Hover handles POST /survey/hover. Target is "score" or an aspect key;
// a null value clears the preview.
func (h *SurveyHandler) Hover(w http.ResponseWriter, r *http.Request) {
	var req models.HoverRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var err error
	if req.Target == "score" {
		err = h.ctrl.HoverScore(req.Value)
	} else {
		err = h.ctrl.HoverRating(models.Aspect(req.Target), req.Value)
	}
	if err != nil {
		writeSurveyError(w, err)
		return
	}
	h.GetView(w, r)
}

// SetRating handles POST /survey/ratings/{aspect}
func (h *SurveyHandler) SetRating(w http.ResponseWriter, r *http.Request) {
	aspect := models.Aspect(r.PathValue("aspect"))

	var req models.RatingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Value == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "value is required")
		return
	}

	if err := h.ctrl.SetRating(aspect, *req.Value); err != nil {
		writeSurveyError(w, err)
		return
	}
	h.GetView(w, r)
}

// SetComment handles POST /survey/comment
func (h *SurveyHandler) SetComment(w http.ResponseWriter, r *http.Request) {
	var req models.CommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.ctrl.SetComment(req.Comment); err != nil {
		writeSurveyError(w, err)
		return
	}
	h.GetView(w, r)
}

// Submit handles POST /survey/submit. The request waits for the insert.
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Submit(r.Context()); err != nil {
		writeSurveyError(w, err)
		return
	}
	h.GetView(w, r)
}

// Reset handles POST /survey/reset
func (h *SurveyHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.Reset(); err != nil {
		writeSurveyError(w, err)
		return
	}
	h.GetView(w, r)
}

// writeSurveyError maps controller errors to status codes
func writeSurveyError(w http.ResponseWriter, err error) {
	var subErr *submission.SubmissionError

	switch {
	case errors.Is(err, survey.ErrInvalidScore),
		errors.Is(err, survey.ErrUnknownAspect),
		errors.Is(err, rating.ErrOutOfRange):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, survey.ErrWrongStep),
		errors.Is(err, survey.ErrSubmissionInFlight):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, survey.ErrScoreRequired):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, survey.ErrClosed):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &subErr):
		middleware.ErrorResponse(w, http.StatusBadGateway, subErr.Error())
	default:
		slog.Error("unexpected survey error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
