// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Each request gets an id (X-Request-ID, generated when absent) that is echoed
back and attached to the start and completion log lines.

# Requester Identity

WithRequester reads an optional "Authorization: Bearer" token and stores the
resulting models.Requester in the request context:

	requester := middleware.RequesterFrom(r.Context())

Requests without a token are anonymous. An invalid token is rejected with 401.

# Errors

WriteError maps apperr kinds to HTTP status codes and writes a JSON body with
error, code and message. Internal errors are logged and masked.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}
*/
package middleware
