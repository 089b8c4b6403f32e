// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the quickly-survey API server.

quickly-survey serves surveys made of questions and response options, and
records the answers participants (actors) give during sessions.

# Starting the Server

The server reads a .env file when present, then the environment, then flags:

	DATABASE_URL=survey.db TOKEN_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --token-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - TOKEN_SECRET (--token-secret): HMAC secret for bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - PAGE_SIZE, MAX_PAGE_SIZE: list page sizes (default: 20, 100)

# Architecture

  - handlers: HTTP handlers for each resource
  - validation: save-time rules for every entity
  - visibility: who may list or read what
  - query: answer filtering from query parameters
  - pagination: page tokens and page slicing
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request identity, JSON helpers
  - apperr: error kinds and their HTTP mapping
  - models: entities and request/response types
  - auth: identity keys and bearer tokens
  - db: schema and queries
  - cliparse: Configuration parsing
*/
package main
