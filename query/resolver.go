// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package query turns answer lookup parameters into a filtered, ordered view
// over answer acts. An unfiltered listing is never returned.
package query

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
)

// Recognized lookup parameters.
const (
	ParamActor    = "actor"
	ParamSession  = "session"
	ParamQuestion = "question"
)

// AnswerActLister is the store operation the resolver reads through.
type AnswerActLister interface {
	ListAnswerActs(ctx context.Context, f db.AnswerActFilter) ([]models.AnswerAct, error)
}

type Resolver struct {
	store AnswerActLister
}

func NewResolver(store AnswerActLister) *Resolver {
	return &Resolver{store: store}
}

// ParseAnswerActFilter validates params and builds the store filter. Every
// parameter must be recognized and carry an integer id; they combine with AND.
func ParseAnswerActFilter(params url.Values) (db.AnswerActFilter, error) {
	var f db.AnswerActFilter
	if len(params) == 0 {
		return f, apperr.New(apperr.CodeEmptyQueryParams, "no query params provided")
	}

	// Sorted so the reported parameter does not depend on map order.
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var target *int64
		switch name {
		case ParamActor:
			target = &f.ActorID
		case ParamSession:
			target = &f.SessionID
		case ParamQuestion:
			target = &f.QuestionID
		default:
			return db.AnswerActFilter{}, apperr.Newf(apperr.CodeUnrecognizedQueryParam,
				"unrecognized query param %q", name)
		}

		raw := params.Get(name)
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return db.AnswerActFilter{}, apperr.Newf(apperr.CodeInvalidQueryValue,
				"query param %q must be a positive integer id, got %q", name, raw)
		}
		*target = id
	}
	return f, nil
}

// ResolveAnswerActs returns the answer acts matching params, ordered by
// creation time and then id.
func (r *Resolver) ResolveAnswerActs(ctx context.Context, params url.Values) ([]models.AnswerAct, error) {
	f, err := ParseAnswerActFilter(params)
	if err != nil {
		return nil, err
	}
	return r.store.ListAnswerActs(ctx, f)
}
