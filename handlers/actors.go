// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/visibility"
)

type ActorHandler struct {
	base
}

func NewActorHandler(store *db.Store, cfg cliparse.Config, now func() time.Time) *ActorHandler {
	return &ActorHandler{base: newBase(store, cfg, now)}
}

func (h *ActorHandler) detail(ctx context.Context, r *http.Request, a models.Actor) (models.ActorDetail, error) {
	sessions, err := h.store.ListSessionsByActor(ctx, a.ID)
	if err != nil {
		return models.ActorDetail{}, err
	}
	d := models.ActorDetail{
		ID:       a.ID,
		URL:      resourceURL(r, visibility.Actors, a.ID),
		Key:      a.Key,
		Sessions: make([]models.SessionShort, 0, len(sessions)),
	}
	for _, s := range sessions {
		d.Sessions = append(d.Sessions, sessionShort(r, s))
	}
	return d, nil
}

func (h *ActorHandler) respond(w http.ResponseWriter, r *http.Request, status int, a models.Actor) {
	d, err := h.detail(r.Context(), r, a)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, status, d)
}

// loadOwned fetches the actor named by the path and checks the requester owns it.
func (h *ActorHandler) loadOwned(r *http.Request) (models.Actor, error) {
	id, err := pathID(r)
	if err != nil {
		return models.Actor{}, err
	}
	a, err := h.store.GetActor(r.Context(), id)
	if err != nil {
		return models.Actor{}, err
	}
	if err := visibility.RequireOwner(middleware.RequesterFrom(r.Context()), a); err != nil {
		return models.Actor{}, err
	}
	return a, nil
}

// CreateActor handles POST /api/actors
// Anyone may register. Authenticated requesters get the actor linked to
// their account. The body is optional.
func (h *ActorHandler) CreateActor(w http.ResponseWriter, r *http.Request) {
	var req models.ActorRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.WriteError(w, err)
		return
	}

	a := models.Actor{}
	if requester := middleware.RequesterFrom(r.Context()); requester.AccountID != "" {
		account := requester.AccountID
		a.AccountID = &account
	}
	if err := h.engine.SaveActor(r.Context(), &a); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("actor created", "actor_id", a.ID, "linked", a.AccountID != nil)
	h.respond(w, r, http.StatusCreated, a)
}

// GetActor handles GET /api/actors/{id}
func (h *ActorHandler) GetActor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	a, err := h.store.GetActor(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.filter.CheckDetail(middleware.RequesterFrom(r.Context()), visibility.Actors, a); err != nil {
		middleware.WriteError(w, err)
		return
	}

	h.respond(w, r, http.StatusOK, a)
}

// UpdateActor handles PUT /api/actors/{id}
// The identity key never changes; the stored key is echoed back.
func (h *ActorHandler) UpdateActor(w http.ResponseWriter, r *http.Request) {
	a, err := h.loadOwned(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	var req models.ActorRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	a.Key = req.Key
	if err := h.engine.SaveActor(r.Context(), &a); err != nil {
		middleware.WriteError(w, err)
		return
	}

	h.respond(w, r, http.StatusOK, a)
}

// DeleteActor handles DELETE /api/actors/{id}
func (h *ActorHandler) DeleteActor(w http.ResponseWriter, r *http.Request) {
	a, err := h.loadOwned(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := h.store.DeleteActor(r.Context(), a.ID); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("actor deleted", "actor_id", a.ID)
	w.WriteHeader(http.StatusNoContent)
}
