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

type QuestionHandler struct {
	base
}

func NewQuestionHandler(store *db.Store, cfg cliparse.Config, now func() time.Time) *QuestionHandler {
	return &QuestionHandler{base: newBase(store, cfg, now)}
}

// detail embeds every response option, the synthetic one included, so
// participants can find the option to answer a text question with.
func (h *QuestionHandler) detail(ctx context.Context, r *http.Request, q models.Question) (models.QuestionDetail, error) {
	options, err := h.store.ListResponseOptions(ctx, q.ID)
	if err != nil {
		return models.QuestionDetail{}, err
	}

	d := models.QuestionDetail{
		ID:              q.ID,
		URL:             resourceURL(r, visibility.Questions, q.ID),
		Survey:          q.SurveyID,
		Type:            q.Type,
		Content:         q.Content,
		ResponseOptions: make([]models.ResponseOptionShort, 0, len(options)),
		IsPublished:     q.PublicationWindow().IsPublished(h.today()),
	}
	for _, o := range options {
		if o.IsSynthetic() {
			d.HaveFakeAnswer = true
		}
		d.ResponseOptions = append(d.ResponseOptions, optionShort(r, o))
	}
	return d, nil
}

func (h *QuestionHandler) respond(w http.ResponseWriter, r *http.Request, status int, id int64) {
	q, err := h.store.GetQuestion(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	d, err := h.detail(r.Context(), r, q)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, status, d)
}

// ListQuestions handles GET /api/questions
// Optional ?survey= restricts the list to one survey.
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	requester := middleware.RequesterFrom(r.Context())

	req, params, err := h.listRequest(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	surveyID, err := optionalIDParam(params, "survey")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	questions, err := h.store.ListQuestions(r.Context(), surveyID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	visible := visibility.FilterForList(h.filter, requester, visibility.Questions, questions)

	writePage(w, r, req, visible,
		func(q models.Question) pagination.Cursor { return byID(q.ID) },
		func(q models.Question) (models.QuestionDetail, error) { return h.detail(r.Context(), r, q) })
}

// GetQuestion handles GET /api/questions/{id}
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	q, err := h.store.GetQuestion(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.filter.CheckDetail(middleware.RequesterFrom(r.Context()), visibility.Questions, q); err != nil {
		middleware.WriteError(w, err)
		return
	}

	d, err := h.detail(r.Context(), r, q)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, d)
}

// CreateQuestion handles POST /api/questions
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	if err := visibility.RequireAdmin(middleware.RequesterFrom(r.Context())); err != nil {
		middleware.WriteError(w, err)
		return
	}

	var req models.QuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	q := models.Question{SurveyID: req.Survey, Type: req.Type, Content: req.Content}
	if err := h.engine.SaveQuestion(r.Context(), &q); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("question created", "question_id", q.ID, "survey_id", q.SurveyID, "type", q.Type)
	h.respond(w, r, http.StatusCreated, q.ID)
}

// UpdateQuestion handles PUT /api/questions/{id}
func (h *QuestionHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	if err := visibility.RequireAdmin(middleware.RequesterFrom(r.Context())); err != nil {
		middleware.WriteError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	var req models.QuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	q := models.Question{ID: id, SurveyID: req.Survey, Type: req.Type, Content: req.Content}
	if err := h.engine.SaveQuestion(r.Context(), &q); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("question updated", "question_id", id)
	h.respond(w, r, http.StatusOK, id)
}

// DeleteQuestion handles DELETE /api/questions/{id}
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := visibility.RequireAdmin(middleware.RequesterFrom(r.Context())); err != nil {
		middleware.WriteError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := h.store.DeleteQuestion(r.Context(), id); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("question deleted", "question_id", id)
	w.WriteHeader(http.StatusNoContent)
}
