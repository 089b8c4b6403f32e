// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request and response types for the API.

# Domain Types

  - Survey: header, description and an optional publication window
  - Question: single, multiple or text prompt under a survey
  - ResponseOption: answer choice under a question
  - Actor: participant identity, optionally linked to an account
  - Session: one sitting of an actor
  - AnswerAct: one recorded answer linking a session to a response option

Read-side copies of parent data (a question's survey window, a session's
owning account) are carried on the child so visibility checks need no extra
lookups.

# Publication

Publication is derived, never stored:

	published := survey.PublicationWindow().IsPublished(models.DateOf(now))

A nil begin or end date leaves that side of the window open.

# Dates

Date is a calendar day serialized as YYYY-MM-DD in JSON and in the database.

# Requesters

Requester carries the account id and Role (anonymous, authenticated, admin)
resolved by the middleware from the bearer token.

# Request and Response Types

Request types mirror the JSON bodies accepted by the handlers. Response types
follow the nested shapes of the API: a survey embeds its questions, a question
embeds its response options, and so on. Page wraps list results with a
continuation token.
*/
package models
