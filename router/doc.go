// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the kiosk.

# Route Registration

	mux := router.NewRouter(ctrl, hub, cfg)

# Endpoints

Health:

	GET /health

Survey flow (the kiosk page):

	GET  /survey                  - Current view
	POST /survey/score            - Select the 0-10 score
	POST /survey/hover            - Preview a score or star value
	POST /survey/ratings/{aspect} - Set a 0-5 aspect rating
	POST /survey/comment          - Replace the comment
	POST /survey/submit           - Send the response
	POST /survey/reset            - Start over
	GET  /survey/stream           - Websocket of view updates

Maintenance:

	GET /status - Counters, last submission and uptime

Hover requests are not logged; they fire on every pointer move.
*/
package router
