// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package visibility

import (
	"time"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/models"
)

// Resource names a collection exposed by the API.
type Resource string

const (
	Surveys   Resource = "surveys"
	Questions Resource = "questions"
	Responses Resource = "responses"
	Actors    Resource = "actors"
	Sessions  Resource = "sessions"
	Answers   Resource = "answers"
)

// Policy is the predicates required for list and detail reads of a resource.
type Policy struct {
	List   []Predicate
	Detail []Predicate
}

// Filter holds the policy of every resource.
type Filter struct {
	policies  map[Resource]Policy
	published PublishedOrStaff
}

// NewFilter builds the filter with the standard policies. today reports the
// current date; nil means the UTC date of time.Now.
func NewFilter(today func() models.Date) *Filter {
	if today == nil {
		today = func() models.Date { return models.DateOf(time.Now().UTC()) }
	}
	published := PublishedOrStaff{Today: today}
	owner := OwnerOrAdmin{}

	return &Filter{
		published: published,
		policies: map[Resource]Policy{
			Surveys:   {List: []Predicate{published}, Detail: []Predicate{published}},
			Questions: {List: []Predicate{published}, Detail: []Predicate{published}},
			Responses: {
				List:   []Predicate{published, NotSyntheticTextOption{}},
				Detail: []Predicate{published},
			},
			Actors:   {Detail: []Predicate{owner}},
			Sessions: {Detail: []Predicate{owner}},
			Answers:  {List: []Predicate{owner}, Detail: []Predicate{owner}},
		},
	}
}

// Policy returns the predicates registered for res.
func (f *Filter) Policy(res Resource) Policy {
	return f.policies[res]
}

func allowsAll(preds []Predicate, requester models.Requester, entity any) bool {
	for _, p := range preds {
		if !p.Allows(requester, entity) {
			return false
		}
	}
	return true
}

// Visible reports whether entity may appear in a list of res.
func (f *Filter) Visible(requester models.Requester, res Resource, entity any) bool {
	return allowsAll(f.policies[res].List, requester, entity)
}

// CheckDetail returns ErrForbidden unless every detail predicate of res allows entity.
func (f *Filter) CheckDetail(requester models.Requester, res Resource, entity any) error {
	if !allowsAll(f.policies[res].Detail, requester, entity) {
		return apperr.Newf(apperr.CodeForbidden, "not allowed to view this %s entry", res)
	}
	return nil
}

// FilterForList keeps the candidates visible to requester, in order. The
// input slice is not modified.
func FilterForList[T any](f *Filter, requester models.Requester, res Resource, candidates []T) []T {
	visible := make([]T, 0, len(candidates))
	for _, c := range candidates {
		if f.Visible(requester, res, c) {
			visible = append(visible, c)
		}
	}
	return visible
}

// Write guards

// RequireAdmin allows administrators only.
func RequireAdmin(requester models.Requester) error {
	if !requester.IsAdmin() {
		return apperr.New(apperr.CodeForbidden, "administrator access required")
	}
	return nil
}

// RequireOwner allows the owner of entity or an administrator.
func RequireOwner(requester models.Requester, entity Owned) error {
	if !(OwnerOrAdmin{}).Allows(requester, entity) {
		return apperr.New(apperr.CodeForbidden, "not the owner of this entry")
	}
	return nil
}

// RequirePublished allows entities whose survey is published, or any administrator.
func (f *Filter) RequirePublished(requester models.Requester, entity Windowed) error {
	if !f.published.Allows(requester, entity) {
		return apperr.New(apperr.CodeForbidden, "survey is not published")
	}
	return nil
}
