// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/visibility"
)

type SessionHandler struct {
	base
}

func NewSessionHandler(store *db.Store, cfg cliparse.Config, now func() time.Time) *SessionHandler {
	return &SessionHandler{base: newBase(store, cfg, now)}
}

func (h *SessionHandler) detail(ctx context.Context, r *http.Request, s models.Session) (models.SessionDetail, error) {
	acts, err := h.store.ListAnswerActs(ctx, db.AnswerActFilter{SessionID: s.ID})
	if err != nil {
		return models.SessionDetail{}, err
	}
	d := models.SessionDetail{
		ID:         s.ID,
		URL:        resourceURL(r, visibility.Sessions, s.ID),
		Key:        s.Key,
		Actor:      actorShort(r, s.ActorID),
		AnswerActs: make([]models.AnswerActShort, 0, len(acts)),
	}
	for _, a := range acts {
		d.AnswerActs = append(d.AnswerActs, models.AnswerActShort{
			ID:  a.ID,
			URL: resourceURL(r, visibility.Answers, a.ID),
		})
	}
	return d, nil
}

func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, status int, s models.Session) {
	d, err := h.detail(r.Context(), r, s)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, status, d)
}

func (h *SessionHandler) loadOwned(r *http.Request) (models.Session, error) {
	id, err := pathID(r)
	if err != nil {
		return models.Session{}, err
	}
	s, err := h.store.GetSession(r.Context(), id)
	if err != nil {
		return models.Session{}, err
	}
	if err := visibility.RequireOwner(middleware.RequesterFrom(r.Context()), s); err != nil {
		return models.Session{}, err
	}
	return s, nil
}

// CreateSession handles POST /api/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.SessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if req.Actor == 0 {
		middleware.WriteError(w, apperr.New(apperr.CodeInvalidField, "actor is required"))
		return
	}

	actor, err := h.store.GetActor(r.Context(), req.Actor)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := visibility.RequireOwner(middleware.RequesterFrom(r.Context()), actor); err != nil {
		middleware.WriteError(w, err)
		return
	}

	s := models.Session{ActorID: actor.ID}
	if err := h.engine.SaveSession(r.Context(), &s); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("session created", "session_id", s.ID, "actor_id", s.ActorID)
	h.respond(w, r, http.StatusCreated, s)
}

// GetSession handles GET /api/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	s, err := h.store.GetSession(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.filter.CheckDetail(middleware.RequesterFrom(r.Context()), visibility.Sessions, s); err != nil {
		middleware.WriteError(w, err)
		return
	}

	h.respond(w, r, http.StatusOK, s)
}

// UpdateSession handles PUT /api/sessions/{id}
// Key and actor are fixed at creation and silently kept.
func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.loadOwned(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	var req models.SessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	s.Key = req.Key
	if req.Actor != 0 {
		s.ActorID = req.Actor
	}
	if err := h.engine.SaveSession(r.Context(), &s); err != nil {
		middleware.WriteError(w, err)
		return
	}

	h.respond(w, r, http.StatusOK, s)
}

// DeleteSession handles DELETE /api/sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.loadOwned(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := h.store.DeleteSession(r.Context(), s.ID); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("session deleted", "session_id", s.ID)
	w.WriteHeader(http.StatusNoContent)
}
