// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
)

// Actors

func (q *Queries) CreateActor(ctx context.Context, a *models.Actor) error {
	id, err := q.insert(ctx, `
		INSERT INTO actors (actor_key, account_id)
		VALUES (?, ?)
	`, a.Key, a.AccountID)
	if err != nil {
		return fmt.Errorf("insert actor: %w", err)
	}
	a.ID = id
	return nil
}

func (q *Queries) UpdateActor(ctx context.Context, a models.Actor) error {
	return q.execOne(ctx, "actor", a.ID, `UPDATE actors SET actor_key = ? WHERE id = ?`, a.Key, a.ID)
}

// DeleteActor removes the actor; sessions and their answers cascade.
func (q *Queries) DeleteActor(ctx context.Context, id int64) error {
	return q.execOne(ctx, "actor", id, `DELETE FROM actors WHERE id = ?`, id)
}

func (q *Queries) GetActor(ctx context.Context, id int64) (models.Actor, error) {
	var a models.Actor
	err := q.queryRow(ctx, `SELECT id, actor_key, account_id FROM actors WHERE id = ?`, id).
		Scan(&a.ID, &a.Key, &a.AccountID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Actor{}, notFound("actor", id)
	}
	if err != nil {
		return models.Actor{}, fmt.Errorf("query actor %d: %w", id, err)
	}
	return a, nil
}

func (q *Queries) CountActorsForAccount(ctx context.Context, accountID string) (int, error) {
	n, err := q.count(ctx, `SELECT COUNT(*) FROM actors WHERE account_id = ?`, accountID)
	if err != nil {
		return 0, fmt.Errorf("count actors: %w", err)
	}
	return n, nil
}

// Sessions

const sessionSelect = `
	SELECT s.id, s.session_key, s.actor_id, a.account_id
	FROM sessions s
	JOIN actors a ON a.id = s.actor_id
`

func scanSession(row scanner) (models.Session, error) {
	var s models.Session
	err := row.Scan(&s.ID, &s.Key, &s.ActorID, &s.OwnerAccount)
	return s, err
}

func (q *Queries) CreateSession(ctx context.Context, s *models.Session) error {
	id, err := q.insert(ctx, `
		INSERT INTO sessions (session_key, actor_id)
		VALUES (?, ?)
	`, s.Key, s.ActorID)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	s.ID = id
	return nil
}

func (q *Queries) UpdateSession(ctx context.Context, s models.Session) error {
	return q.execOne(ctx, "session", s.ID, `UPDATE sessions SET session_key = ? WHERE id = ?`, s.Key, s.ID)
}

func (q *Queries) DeleteSession(ctx context.Context, id int64) error {
	return q.execOne(ctx, "session", id, `DELETE FROM sessions WHERE id = ?`, id)
}

// LockSession takes a write lock on the session row for the rest of the
// transaction. Answer submissions for one session serialize on it.
func (q *Queries) LockSession(ctx context.Context, id int64) error {
	return q.execOne(ctx, "session", id, `UPDATE sessions SET session_key = session_key WHERE id = ?`, id)
}

func (q *Queries) GetSession(ctx context.Context, id int64) (models.Session, error) {
	s, err := scanSession(q.queryRow(ctx, sessionSelect+` WHERE s.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, notFound("session", id)
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("query session %d: %w", id, err)
	}
	return s, nil
}

func (q *Queries) ListSessionsByActor(ctx context.Context, actorID int64) ([]models.Session, error) {
	rows, err := q.query(ctx, sessionSelect+` WHERE s.actor_id = ? ORDER BY s.id`, actorID)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Answer acts

const answerSelect = `
	SELECT aa.id, aa.content, aa.created_at,
	       s.id, s.session_key, s.actor_id, a.account_id,
	       o.id, o.question_id, o.content, q.type, q.content, v.begin_date, v.end_date
	FROM answer_acts aa
	JOIN sessions s ON s.id = aa.session_id
	JOIN actors a ON a.id = s.actor_id
	JOIN response_options o ON o.id = aa.response_option_id
	JOIN questions q ON q.id = o.question_id
	JOIN surveys v ON v.id = q.survey_id
`

func scanAnswerAct(row scanner) (models.AnswerAct, error) {
	var (
		a       models.AnswerAct
		created int64
	)
	err := row.Scan(&a.ID, &a.Content, &created,
		&a.Session.ID, &a.Session.Key, &a.Session.ActorID, &a.Session.OwnerAccount,
		&a.Option.ID, &a.Option.QuestionID, &a.Option.Content, &a.Option.QuestionType,
		&a.Option.QuestionContent, &a.Option.Window.Begin, &a.Option.Window.End)
	a.CreatedAt = time.UnixMicro(created).UTC()
	return a, err
}

// CreateAnswerAct inserts a and sets its ID. a.CreatedAt is stored at
// microsecond precision.
func (q *Queries) CreateAnswerAct(ctx context.Context, a *models.AnswerAct) error {
	id, err := q.insert(ctx, `
		INSERT INTO answer_acts (session_id, response_option_id, content, created_at)
		VALUES (?, ?, ?, ?)
	`, a.Session.ID, a.Option.ID, a.Content, a.CreatedAt.UnixMicro())
	if err != nil {
		return fmt.Errorf("insert answer act: %w", err)
	}
	a.ID = id
	a.CreatedAt = time.UnixMicro(a.CreatedAt.UnixMicro()).UTC()
	return nil
}

func (q *Queries) GetAnswerAct(ctx context.Context, id int64) (models.AnswerAct, error) {
	a, err := scanAnswerAct(q.queryRow(ctx, answerSelect+` WHERE aa.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.AnswerAct{}, notFound("answer act", id)
	}
	if err != nil {
		return models.AnswerAct{}, fmt.Errorf("query answer act %d: %w", id, err)
	}
	return a, nil
}

// AnswerActFilter restricts ListAnswerActs. Zero fields are ignored; set
// fields combine with AND.
type AnswerActFilter struct {
	ActorID    int64
	SessionID  int64
	QuestionID int64
}

// ListAnswerActs returns matching answer acts ordered by creation time, then id.
func (q *Queries) ListAnswerActs(ctx context.Context, f AnswerActFilter) ([]models.AnswerAct, error) {
	var (
		conds []string
		args  []any
	)
	if f.ActorID != 0 {
		conds = append(conds, "s.actor_id = ?")
		args = append(args, f.ActorID)
	}
	if f.SessionID != 0 {
		conds = append(conds, "aa.session_id = ?")
		args = append(args, f.SessionID)
	}
	if f.QuestionID != 0 {
		conds = append(conds, "o.question_id = ?")
		args = append(args, f.QuestionID)
	}

	query := answerSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY aa.created_at, aa.id"

	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer acts: %w", err)
	}
	defer rows.Close()

	acts := []models.AnswerAct{}
	for rows.Next() {
		a, err := scanAnswerAct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan answer act: %w", err)
		}
		acts = append(acts, a)
	}
	return acts, rows.Err()
}

// CountSessionAnswersForQuestion counts answers in the session to any option
// of the question.
func (q *Queries) CountSessionAnswersForQuestion(ctx context.Context, sessionID, questionID int64) (int, error) {
	n, err := q.count(ctx, `
		SELECT COUNT(*)
		FROM answer_acts aa
		JOIN response_options o ON o.id = aa.response_option_id
		WHERE aa.session_id = ? AND o.question_id = ?
	`, sessionID, questionID)
	if err != nil {
		return 0, fmt.Errorf("count answers for question: %w", err)
	}
	return n, nil
}

// CountSessionAnswersForOption counts answers in the session to exactly this option.
func (q *Queries) CountSessionAnswersForOption(ctx context.Context, sessionID, optionID int64) (int, error) {
	n, err := q.count(ctx, `
		SELECT COUNT(*) FROM answer_acts WHERE session_id = ? AND response_option_id = ?
	`, sessionID, optionID)
	if err != nil {
		return 0, fmt.Errorf("count answers for option: %w", err)
	}
	return n, nil
}
