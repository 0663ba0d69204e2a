// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/handlers"
	"github.com/danielhkuo/quickly-rate/middleware"
	"github.com/danielhkuo/quickly-rate/stream"
	"github.com/danielhkuo/quickly-rate/survey"
)

func NewRouter(ctrl *survey.Controller, hub *stream.Hub, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(ctrl)
	statusHandler := handlers.NewStatusHandler(ctrl, cfg.Backend)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Kiosk flow
	mux.HandleFunc("GET /survey", middleware.WithLogging(surveyHandler.GetView))
	mux.HandleFunc("POST /survey/score", middleware.WithLogging(surveyHandler.SelectScore))
	mux.HandleFunc("POST /survey/hover", surveyHandler.Hover) // too chatty to log
	mux.HandleFunc("POST /survey/ratings/{aspect}", middleware.WithLogging(surveyHandler.SetRating))
	mux.HandleFunc("POST /survey/comment", middleware.WithLogging(surveyHandler.SetComment))
	mux.HandleFunc("POST /survey/submit", middleware.WithLogging(surveyHandler.Submit))
	mux.HandleFunc("POST /survey/reset", middleware.WithLogging(surveyHandler.Reset))

	// View push
	mux.HandleFunc("GET /survey/stream", middleware.WithLogging(hub.ServeWS))

	// Maintenance
	mux.HandleFunc("GET /status", middleware.WithLogging(statusHandler.GetStatus))

	// Root endpoint, exact match only
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-rate kiosk v1"))
	})

	return mux
}
