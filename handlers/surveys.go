// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
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

type SurveyHandler struct {
	base
}

func NewSurveyHandler(store *db.Store, cfg cliparse.Config, now func() time.Time) *SurveyHandler {
	return &SurveyHandler{base: newBase(store, cfg, now)}
}

func (h *SurveyHandler) detail(ctx context.Context, r *http.Request, s models.Survey) (models.SurveyDetail, error) {
	questions, err := h.store.ListQuestions(ctx, s.ID)
	if err != nil {
		return models.SurveyDetail{}, err
	}
	shorts := make([]models.QuestionShort, 0, len(questions))
	for _, q := range questions {
		shorts = append(shorts, questionShort(r, q))
	}
	return models.SurveyDetail{
		ID:          s.ID,
		URL:         resourceURL(r, visibility.Surveys, s.ID),
		Header:      s.Header,
		Description: s.Description,
		Questions:   shorts,
		BeginDate:   s.BeginDate,
		EndDate:     s.EndDate,
		IsPublished: s.PublicationWindow().IsPublished(h.today()),
	}, nil
}

func (h *SurveyHandler) respond(w http.ResponseWriter, r *http.Request, status int, s models.Survey) {
	d, err := h.detail(r.Context(), r, s)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, status, d)
}

// ListSurveys handles GET /api/surveys
func (h *SurveyHandler) ListSurveys(w http.ResponseWriter, r *http.Request) {
	requester := middleware.RequesterFrom(r.Context())

	req, _, err := h.listRequest(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	surveys, err := h.store.ListSurveys(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	visible := visibility.FilterForList(h.filter, requester, visibility.Surveys, surveys)

	writePage(w, r, req, visible,
		func(s models.Survey) pagination.Cursor { return byID(s.ID) },
		func(s models.Survey) (models.SurveyDetail, error) { return h.detail(r.Context(), r, s) })
}

// GetSurvey handles GET /api/surveys/{id}
func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	s, err := h.store.GetSurvey(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.filter.CheckDetail(middleware.RequesterFrom(r.Context()), visibility.Surveys, s); err != nil {
		middleware.WriteError(w, err)
		return
	}

	h.respond(w, r, http.StatusOK, s)
}

// CreateSurvey handles POST /api/surveys
func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	if err := visibility.RequireAdmin(middleware.RequesterFrom(r.Context())); err != nil {
		middleware.WriteError(w, err)
		return
	}

	var req models.SurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	s := models.Survey{
		Header:      req.Header,
		Description: req.Description,
		BeginDate:   req.BeginDate,
		EndDate:     req.EndDate,
	}
	if err := h.engine.SaveSurvey(r.Context(), &s); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("survey created", "survey_id", s.ID, "header", s.Header)
	h.respond(w, r, http.StatusCreated, s)
}

// UpdateSurvey handles PUT /api/surveys/{id}
func (h *SurveyHandler) UpdateSurvey(w http.ResponseWriter, r *http.Request) {
	if err := visibility.RequireAdmin(middleware.RequesterFrom(r.Context())); err != nil {
		middleware.WriteError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	var req models.SurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	s := models.Survey{
		ID:          id,
		Header:      req.Header,
		Description: req.Description,
		BeginDate:   req.BeginDate,
		EndDate:     req.EndDate,
	}
	if err := h.engine.SaveSurvey(r.Context(), &s); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("survey updated", "survey_id", s.ID)
	h.respond(w, r, http.StatusOK, s)
}

// DeleteSurvey handles DELETE /api/surveys/{id}
func (h *SurveyHandler) DeleteSurvey(w http.ResponseWriter, r *http.Request) {
	if err := visibility.RequireAdmin(middleware.RequesterFrom(r.Context())); err != nil {
		middleware.WriteError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := h.store.DeleteSurvey(r.Context(), id); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("survey deleted", "survey_id", id)
	w.WriteHeader(http.StatusNoContent)
}
