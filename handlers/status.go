// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-rate/middleware"
	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/survey"
)

type StatusHandler struct {
	ctrl    *survey.Controller
	backend string
	now     func() time.Time
}

func NewStatusHandler(ctrl *survey.Controller, backend string) *StatusHandler {
	return &StatusHandler{ctrl: ctrl, backend: backend, now: time.Now}
}

// GetStatus handles GET /status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	stats := h.ctrl.Stats()
	view := h.ctrl.View()
	now := h.now()

	resp := models.StatusResponse{
		LocationID:     view.LocationID,
		Step:           view.Step,
		Backend:        h.backend,
		Submitted:      stats.Submitted,
		Failed:         stats.Failed,
		LastSubmission: "never",
		Uptime:         strings.TrimSpace(humanize.RelTime(stats.StartedAt, now, "", "")),
	}
	if !stats.LastSubmittedAt.IsZero() {
		last := stats.LastSubmittedAt.UTC()
		resp.LastSubmitted = &last
		resp.LastSubmission = humanize.RelTime(stats.LastSubmittedAt, now, "ago", "from now")
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
