// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stream pushes survey views to kiosk pages over websockets.

	hub := stream.NewHub(ctrl.View)
	go hub.Run(ctx)
	unsubscribe := ctrl.Subscribe(hub.Publish)

	mux.HandleFunc("GET /survey/stream", hub.ServeWS)

A page receives the current view as soon as it connects and then one
JSON text frame per change. Each frame is a complete survey.View; pages
should ignore any frame whose version is not newer than the last one
they rendered.
*/
package stream
