// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/pagination"
	"github.com/danielhkuo/quickly-survey/visibility"
)

// ResponseHandler serves response options under /api/responses.
type ResponseHandler struct {
	base
}

func NewResponseHandler(store *db.Store, cfg cliparse.Config, now func() time.Time) *ResponseHandler {
	return &ResponseHandler{base: newBase(store, cfg, now)}
}

func (h *ResponseHandler) detail(r *http.Request, o models.ResponseOption) models.ResponseOptionDetail {
	short := optionShort(r, o)
	return models.ResponseOptionDetail{
		ID:          short.ID,
		URL:         short.URL,
		Question:    short.Question,
		Content:     o.Content,
		IsPublished: o.PublicationWindow().IsPublished(h.today()),
	}
}

func (h *ResponseHandler) respond(w http.ResponseWriter, r *http.Request, status int, id int64) {
	o, err := h.store.GetResponseOption(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, status, h.detail(r, o))
}

// ListResponses handles GET /api/responses
// Optional ?question= restricts the list to one question. Synthetic text
// options never appear here.
func (h *ResponseHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	requester := middleware.RequesterFrom(r.Context())

	req, params, err := h.listRequest(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	questionID, err := optionalIDParam(params, "question")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	options, err := h.store.ListResponseOptions(r.Context(), questionID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	visible := visibility.FilterForList(h.filter, requester, visibility.Responses, options)

	writePage(w, r, req, visible,
		func(o models.ResponseOption) pagination.Cursor { return byID(o.ID) },
		func(o models.ResponseOption) (models.ResponseOptionDetail, error) { return h.detail(r, o), nil })
}

// GetResponse handles GET /api/responses/{id}
func (h *ResponseHandler) GetResponse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	o, err := h.store.GetResponseOption(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.filter.CheckDetail(middleware.RequesterFrom(r.Context()), visibility.Responses, o); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.detail(r, o))
}

// CreateResponse handles POST /api/responses
func (h *ResponseHandler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	if err := visibility.RequireAdmin(middleware.RequesterFrom(r.Context())); err != nil {
		middleware.WriteError(w, err)
		return
	}

	var req models.ResponseOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	o := models.ResponseOption{QuestionID: req.Question, Content: req.Content}
	if err := h.engine.SaveResponseOption(r.Context(), &o); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("response option created", "option_id", o.ID, "question_id", o.QuestionID)
	middleware.JSONResponse(w, http.StatusCreated, h.detail(r, o))
}

// UpdateResponse handles PUT /api/responses/{id}
func (h *ResponseHandler) UpdateResponse(w http.ResponseWriter, r *http.Request) {
	if err := visibility.RequireAdmin(middleware.RequesterFrom(r.Context())); err != nil {
		middleware.WriteError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	var req models.ResponseOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	o := models.ResponseOption{ID: id, QuestionID: req.Question, Content: req.Content}
	if err := h.engine.SaveResponseOption(r.Context(), &o); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("response option updated", "option_id", id)
	h.respond(w, r, http.StatusOK, id)
}

// DeleteResponse handles DELETE /api/responses/{id}
func (h *ResponseHandler) DeleteResponse(w http.ResponseWriter, r *http.Request) {
	if err := visibility.RequireAdmin(middleware.RequesterFrom(r.Context())); err != nil {
		middleware.WriteError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := h.store.DeleteResponseOption(r.Context(), id); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("response option deleted", "option_id", id)
	w.WriteHeader(http.StatusNoContent)
}
