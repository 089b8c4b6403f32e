// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/pagination"
	"github.com/danielhkuo/quickly-survey/validation"
	"github.com/danielhkuo/quickly-survey/visibility"
)

// base holds the dependencies shared by every resource handler.
type base struct {
	store  *db.Store
	engine *validation.Engine
	filter *visibility.Filter
	pages  pagination.PageSizeConfig
	now    func() time.Time
}

func newBase(store *db.Store, cfg cliparse.Config, now func() time.Time) base {
	if now == nil {
		now = time.Now
	}
	b := base{
		store:  store,
		engine: validation.NewEngine(store, now),
		pages:  pagination.PageSizeConfig{Default: cfg.PageSize, Max: cfg.MaxPageSize},
		now:    now,
	}
	b.filter = visibility.NewFilter(b.today)
	return b
}

// today is the current UTC date; publication windows are evaluated against it.
func (b base) today() models.Date {
	return models.DateOf(b.now().UTC())
}

// pathID reads the {id} path value. Non-numeric ids cannot name anything.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Newf(apperr.CodeNotFound, "%q is not a valid id", raw)
	}
	return id, nil
}

// optionalIDParam reads an integer filter parameter; 0 when absent.
func optionalIDParam(params url.Values, name string) (int64, error) {
	raw := params.Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Newf(apperr.CodeInvalidQueryValue,
			"query param %q must be a positive integer id, got %q", name, raw)
	}
	return id, nil
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func resourceURL(r *http.Request, res visibility.Resource, id int64) string {
	return fmt.Sprintf("%s/api/%s/%d", baseURL(r), res, id)
}

// requestURL is the absolute URL of the current request.
func requestURL(r *http.Request) *url.URL {
	u := *r.URL
	b, _ := url.Parse(baseURL(r))
	u.Scheme, u.Host = b.Scheme, b.Host
	return &u
}

// listRequest splits pagination parameters from resource filters.
func (b base) listRequest(r *http.Request) (pagination.Request, url.Values, error) {
	params := r.URL.Query()
	req, err := pagination.ParseRequest(params, b.pages)
	return req, params, err
}

func byID(id int64) pagination.Cursor {
	return pagination.Cursor{ID: id}
}

// writePage paginates visible items, renders them and writes the page.
func writePage[T, D any](w http.ResponseWriter, r *http.Request, req pagination.Request,
	items []T, key func(T) pagination.Cursor, render func(T) (D, error)) {
	page, next := pagination.Paginate(items, req, key)

	out := models.Page[D]{Results: make([]D, 0, len(page))}
	for _, item := range page {
		d, err := render(item)
		if err != nil {
			middleware.WriteError(w, err)
			return
		}
		out.Results = append(out.Results, d)
	}
	if next != nil {
		out.NextPageToken = pagination.EncodeToken(*next)
		out.Next = pagination.NextLink(requestURL(r), *next)
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// Representations

func questionShort(r *http.Request, q models.Question) models.QuestionShort {
	return models.QuestionShort{
		ID:      q.ID,
		URL:     resourceURL(r, visibility.Questions, q.ID),
		Type:    q.Type,
		Content: q.Content,
	}
}

func optionShort(r *http.Request, o models.ResponseOption) models.ResponseOptionShort {
	return models.ResponseOptionShort{
		ID:  o.ID,
		URL: resourceURL(r, visibility.Responses, o.ID),
		Question: models.QuestionShort{
			ID:      o.QuestionID,
			URL:     resourceURL(r, visibility.Questions, o.QuestionID),
			Type:    o.QuestionType,
			Content: o.QuestionContent,
		},
		Content: o.Content,
	}
}

func actorShort(r *http.Request, id int64) models.ActorShort {
	return models.ActorShort{ID: id, URL: resourceURL(r, visibility.Actors, id)}
}

func sessionShort(r *http.Request, s models.Session) models.SessionShort {
	return models.SessionShort{
		ID:    s.ID,
		URL:   resourceURL(r, visibility.Sessions, s.ID),
		Actor: actorShort(r, s.ActorID),
	}
}
