// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package visibility

import "github.com/danielhkuo/quickly-survey/models"

// Predicate decides whether requester may see entity. Entities a predicate
// does not apply to are allowed.
type Predicate interface {
	Allows(requester models.Requester, entity any) bool
}

// Windowed is implemented by entities governed by a survey publication window.
type Windowed interface {
	PublicationWindow() models.Window
}

// Owned is implemented by entities linked to an account. Owner returns "" when
// there is none.
type Owned interface {
	Owner() string
}

type synthetic interface {
	IsSynthetic() bool
}

// PublishedOrStaff allows published entities to everyone and everything to
// administrators.
type PublishedOrStaff struct {
	Today func() models.Date
}

func (p PublishedOrStaff) Allows(requester models.Requester, entity any) bool {
	if requester.IsAdmin() {
		return true
	}
	w, ok := entity.(Windowed)
	if !ok {
		return true
	}
	return w.PublicationWindow().IsPublished(p.Today())
}

// NotSyntheticTextOption rejects the placeholder option owned by text questions.
type NotSyntheticTextOption struct{}

func (NotSyntheticTextOption) Allows(_ models.Requester, entity any) bool {
	s, ok := entity.(synthetic)
	return !ok || !s.IsSynthetic()
}

// OwnerOrAdmin allows unowned entities, the owner, and administrators.
type OwnerOrAdmin struct{}

func (OwnerOrAdmin) Allows(requester models.Requester, entity any) bool {
	if requester.IsAdmin() {
		return true
	}
	o, ok := entity.(Owned)
	if !ok {
		return true
	}
	owner := o.Owner()
	return owner == "" || owner == requester.AccountID
}
