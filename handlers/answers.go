// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/pagination"
	"github.com/danielhkuo/quickly-survey/query"
	"github.com/danielhkuo/quickly-survey/visibility"
)

type AnswerHandler struct {
	base
	resolver *query.Resolver
}

func NewAnswerHandler(store *db.Store, cfg cliparse.Config, now func() time.Time) *AnswerHandler {
	return &AnswerHandler{
		base:     newBase(store, cfg, now),
		resolver: query.NewResolver(store),
	}
}

func (h *AnswerHandler) detail(r *http.Request, a models.AnswerAct) models.AnswerActDetail {
	return models.AnswerActDetail{
		ID:        a.ID,
		URL:       resourceURL(r, visibility.Answers, a.ID),
		Session:   sessionShort(r, a.Session),
		Response:  optionShort(r, a.Option),
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
	}
}

func answerCursor(a models.AnswerAct) pagination.Cursor {
	return pagination.Cursor{T: a.CreatedAt.UnixMicro(), ID: a.ID}
}

// ListAnswers handles GET /api/answers
// At least one of ?actor=, ?session= or ?question= is required; they
// combine with AND. Results are ordered by creation time.
func (h *AnswerHandler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	requester := middleware.RequesterFrom(r.Context())

	req, params, err := h.listRequest(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	acts, err := h.resolver.ResolveAnswerActs(r.Context(), params)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	visible := visibility.FilterForList(h.filter, requester, visibility.Answers, acts)

	writePage(w, r, req, visible, answerCursor,
		func(a models.AnswerAct) (models.AnswerActDetail, error) { return h.detail(r, a), nil })
}

// GetAnswer handles GET /api/answers/{id}
func (h *AnswerHandler) GetAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	a, err := h.store.GetAnswerAct(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.filter.CheckDetail(middleware.RequesterFrom(r.Context()), visibility.Answers, a); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.detail(r, a))
}

// CreateAnswer handles POST /api/answers
// The session must belong to the requester and the option's survey must be
// published, unless the requester is an administrator.
func (h *AnswerHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	requester := middleware.RequesterFrom(r.Context())

	var req models.AnswerActRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if req.Session == 0 {
		middleware.WriteError(w, apperr.New(apperr.CodeInvalidField, "session is required"))
		return
	}
	if req.Response == 0 {
		middleware.WriteError(w, apperr.New(apperr.CodeInvalidField, "response is required"))
		return
	}

	session, err := h.store.GetSession(r.Context(), req.Session)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := visibility.RequireOwner(requester, session); err != nil {
		middleware.WriteError(w, err)
		return
	}

	option, err := h.store.GetResponseOption(r.Context(), req.Response)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.filter.RequirePublished(requester, option); err != nil {
		middleware.WriteError(w, err)
		return
	}

	a := models.AnswerAct{Session: session, Option: option, Content: req.Content}
	if err := h.engine.SaveAnswerAct(r.Context(), &a); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("answer recorded", "answer_id", a.ID, "session_id", a.Session.ID, "option_id", a.Option.ID)
	middleware.JSONResponse(w, http.StatusCreated, h.detail(r, a))
}
