// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the quickly-survey API.

Each handler embeds a base holding the store, the validation engine, the
visibility filter and the page size config:

	surveys := handlers.NewSurveyHandler(store, cfg, time.Now)

# Resources

  - SurveyHandler, QuestionHandler, ResponseHandler: admin writes, public
    reads limited to published surveys
  - ActorHandler, SessionHandler: owner or admin
  - AnswerHandler: create, filtered list, detail

Lists are filtered by visibility first and paginated afterwards, so a page
never contains an item the requester may not see. Detail reads of a hidden
item return 403.

# Answers

	POST /api/answers {"session": 1, "response": 7, "content": "..."}

The session must belong to the requester and the survey must be published.
Single-choice and text questions accept one answer per session.

	GET /api/answers?session=1&question=3&page_size=10
*/
package handlers
