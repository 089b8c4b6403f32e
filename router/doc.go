// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the quickly-survey API.

	mux := router.NewRouter(store, cfg, time.Now)

Every /api route runs behind request logging and requester identity.

# Endpoints

	GET /health

Admin-managed resources (writes require a staff token):

	GET|POST        /api/surveys
	GET|PUT|DELETE  /api/surveys/{id}
	GET|POST        /api/questions
	GET|PUT|DELETE  /api/questions/{id}
	GET|POST        /api/responses
	GET|PUT|DELETE  /api/responses/{id}

Participants (owner or admin):

	POST            /api/actors
	GET|PUT|DELETE  /api/actors/{id}
	POST            /api/sessions
	GET|PUT|DELETE  /api/sessions/{id}

Answers:

	GET|POST  /api/answers    - list needs actor, session or question
	GET       /api/answers/{id}
*/
package router
