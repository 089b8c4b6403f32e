// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
)

// Engine checks entity rules and persists the entity in the same
// transaction. A failed check leaves the store untouched.
type Engine struct {
	store *db.Store
	now   func() time.Time
}

// NewEngine builds an engine. now supplies answer timestamps; nil means time.Now.
func NewEngine(store *db.Store, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, now: now}
}

// SaveSurvey creates s when s.ID is zero and updates it otherwise.
func (e *Engine) SaveSurvey(ctx context.Context, s *models.Survey) error {
	if s.Header == "" {
		return apperr.New(apperr.CodeInvalidField, "header is required")
	}

	return e.store.InTx(ctx, func(q *db.Queries) error {
		if s.ID != 0 {
			stored, err := q.GetSurvey(ctx, s.ID)
			if err != nil {
				return err
			}
			begin := freeze(dateValue(stored.BeginDate))
			if s.BeginDate != nil && begin.changed(*s.BeginDate) {
				slog.Info("begin_date edit ignored", "survey_id", s.ID,
					"stored", stored.BeginDate, "incoming", s.BeginDate)
			}
			s.BeginDate = datePtr(begin.apply(dateValue(s.BeginDate)))
		}

		// Runs after the restore so the order check sees the stored begin date.
		if s.BeginDate != nil && s.EndDate != nil && s.BeginDate.After(*s.EndDate) {
			return apperr.Newf(apperr.CodeInvalidDateOrder,
				"begin_date %s is after end_date %s", s.BeginDate, s.EndDate)
		}

		if s.ID == 0 {
			return q.CreateSurvey(ctx, s)
		}
		return q.UpdateSurvey(ctx, *s)
	})
}

// SaveQuestion creates or updates a question. Creating a text question also
// creates its synthetic response option.
func (e *Engine) SaveQuestion(ctx context.Context, qn *models.Question) error {
	if !qn.Type.Valid() {
		return apperr.Newf(apperr.CodeInvalidChoice, "%q is not one of %v", qn.Type, models.QuestionTypes)
	}

	return e.store.InTx(ctx, func(q *db.Queries) error {
		if qn.ID != 0 {
			stored, err := q.GetQuestion(ctx, qn.ID)
			if err != nil {
				return err
			}
			if qn.Type != stored.Type {
				return apperr.Newf(apperr.CodeInvalidChoice,
					"question type cannot change from %q to %q", stored.Type, qn.Type)
			}
			if qn.SurveyID != 0 && qn.SurveyID != stored.SurveyID {
				return apperr.New(apperr.CodeInvalidField, "survey cannot change")
			}
			qn.SurveyID = stored.SurveyID
			qn.Window = stored.Window
			return q.UpdateQuestion(ctx, *qn)
		}

		if qn.SurveyID == 0 {
			return apperr.New(apperr.CodeInvalidField, "survey is required")
		}
		survey, err := q.GetSurvey(ctx, qn.SurveyID)
		if err != nil {
			return err
		}
		if err := q.CreateQuestion(ctx, qn); err != nil {
			return err
		}
		qn.Window = survey.PublicationWindow()

		if qn.Type == models.QuestionText {
			// Inserted directly: the synthetic option is the one exemption from
			// the text-question cardinality rule in SaveResponseOption.
			fake := models.ResponseOption{QuestionID: qn.ID, Content: models.FakeAnswerContent}
			if err := q.CreateResponseOption(ctx, &fake); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveResponseOption creates or updates a response option. A text question
// never gets a second option.
func (e *Engine) SaveResponseOption(ctx context.Context, o *models.ResponseOption) error {
	if o.Content == "" {
		return apperr.New(apperr.CodeInvalidField, "content is required")
	}

	return e.store.InTx(ctx, func(q *db.Queries) error {
		if o.ID != 0 {
			stored, err := q.GetResponseOption(ctx, o.ID)
			if err != nil {
				return err
			}
			if o.QuestionID != 0 && o.QuestionID != stored.QuestionID {
				return apperr.New(apperr.CodeInvalidField, "question cannot change")
			}
			content := o.Content
			*o = stored
			o.Content = content
			return q.UpdateResponseOption(ctx, *o)
		}

		if o.QuestionID == 0 {
			return apperr.New(apperr.CodeInvalidField, "question is required")
		}
		if err := q.LockQuestion(ctx, o.QuestionID); err != nil {
			return err
		}
		qn, err := q.GetQuestion(ctx, o.QuestionID)
		if err != nil {
			return err
		}
		if qn.Type == models.QuestionText {
			n, err := q.CountResponseOptions(ctx, qn.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return apperr.Newf(apperr.CodeCardinalityExceeded,
					"question %d is a %s question and cannot have extra response options", qn.ID, qn.Type)
			}
		}

		if err := q.CreateResponseOption(ctx, o); err != nil {
			return err
		}
		o.QuestionType = qn.Type
		o.QuestionContent = qn.Content
		o.Window = qn.Window
		return nil
	})
}

// SaveActor creates an actor with a fresh identity key, or updates one while
// keeping its original key and account link.
func (e *Engine) SaveActor(ctx context.Context, a *models.Actor) error {
	return e.store.InTx(ctx, func(q *db.Queries) error {
		if a.ID != 0 {
			stored, err := q.GetActor(ctx, a.ID)
			if err != nil {
				return err
			}
			a.Key = restoreKey("actor", a.ID, stored.Key, a.Key)
			a.AccountID = stored.AccountID
			return q.UpdateActor(ctx, *a)
		}

		if a.AccountID != nil {
			n, err := q.CountActorsForAccount(ctx, *a.AccountID)
			if err != nil {
				return err
			}
			if n > 0 {
				return apperr.New(apperr.CodeCardinalityExceeded, "account already has an actor")
			}
		}
		a.Key = auth.GenerateIdentityKey()
		return q.CreateActor(ctx, a)
	})
}

// SaveSession creates a session for an existing actor, or updates one while
// keeping its original key and actor.
func (e *Engine) SaveSession(ctx context.Context, s *models.Session) error {
	return e.store.InTx(ctx, func(q *db.Queries) error {
		if s.ID != 0 {
			stored, err := q.GetSession(ctx, s.ID)
			if err != nil {
				return err
			}
			s.Key = restoreKey("session", s.ID, stored.Key, s.Key)
			s.ActorID = stored.ActorID
			s.OwnerAccount = stored.OwnerAccount
			return q.UpdateSession(ctx, *s)
		}

		if s.ActorID == 0 {
			return apperr.New(apperr.CodeInvalidField, "actor is required")
		}
		actor, err := q.GetActor(ctx, s.ActorID)
		if err != nil {
			return err
		}
		s.Key = auth.GenerateIdentityKey()
		s.OwnerAccount = actor.AccountID
		return q.CreateSession(ctx, s)
	})
}

// SaveAnswerAct records an answer. Single and text questions take one answer
// per session; multiple questions take each option at most once per session.
func (e *Engine) SaveAnswerAct(ctx context.Context, a *models.AnswerAct) error {
	if a.ID != 0 {
		return apperr.New(apperr.CodeInvalidField, "answer acts cannot be modified")
	}
	if a.Session.ID == 0 {
		return apperr.New(apperr.CodeInvalidField, "session is required")
	}
	if a.Option.ID == 0 {
		return apperr.New(apperr.CodeInvalidField, "response is required")
	}

	return e.store.InTx(ctx, func(q *db.Queries) error {
		// Serializes concurrent submissions for the session so two of them
		// cannot both count zero.
		if err := q.LockSession(ctx, a.Session.ID); err != nil {
			return err
		}
		session, err := q.GetSession(ctx, a.Session.ID)
		if err != nil {
			return err
		}
		option, err := q.GetResponseOption(ctx, a.Option.ID)
		if err != nil {
			return err
		}

		var n int
		switch option.QuestionType {
		case models.QuestionSingle, models.QuestionText:
			n, err = q.CountSessionAnswersForQuestion(ctx, session.ID, option.QuestionID)
		case models.QuestionMultiple:
			n, err = q.CountSessionAnswersForOption(ctx, session.ID, option.ID)
		}
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Newf(apperr.CodeCardinalityExceeded,
				"number of answers on question %d in session %d is exceeded", option.QuestionID, session.ID)
		}

		a.Session = session
		a.Option = option
		a.CreatedAt = e.now().UTC()
		return q.CreateAnswerAct(ctx, a)
	})
}

func restoreKey(entity string, id int64, stored, incoming string) string {
	key := freeze(stored)
	if incoming != "" && key.changed(incoming) {
		slog.Info("identity key edit ignored", "entity", entity, "id", id)
	}
	return key.apply(incoming)
}

func dateValue(d *models.Date) models.Date {
	if d == nil {
		return models.Date{}
	}
	return *d
}

func datePtr(d models.Date) *models.Date {
	if d.IsZero() {
		return nil
	}
	return &d
}
