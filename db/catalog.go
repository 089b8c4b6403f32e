// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/models"
)

func notFound(entity string, id int64) error {
	return apperr.Newf(apperr.CodeNotFound, "%s %d not found", entity, id)
}

type scanner interface {
	Scan(dest ...any) error
}

// Surveys

const surveyColumns = `id, header, description, begin_date, end_date`

func scanSurvey(row scanner) (models.Survey, error) {
	var s models.Survey
	err := row.Scan(&s.ID, &s.Header, &s.Description, &s.BeginDate, &s.EndDate)
	return s, err
}

// CreateSurvey inserts s and sets its ID.
func (q *Queries) CreateSurvey(ctx context.Context, s *models.Survey) error {
	id, err := q.insert(ctx, `
		INSERT INTO surveys (header, description, begin_date, end_date)
		VALUES (?, ?, ?, ?)
	`, s.Header, s.Description, s.BeginDate, s.EndDate)
	if err != nil {
		return fmt.Errorf("insert survey: %w", err)
	}
	s.ID = id
	return nil
}

func (q *Queries) UpdateSurvey(ctx context.Context, s models.Survey) error {
	return q.execOne(ctx, "survey", s.ID, `
		UPDATE surveys
		SET header = ?, description = ?, begin_date = ?, end_date = ?
		WHERE id = ?
	`, s.Header, s.Description, s.BeginDate, s.EndDate, s.ID)
}

// DeleteSurvey removes the survey; questions, options and answers cascade.
func (q *Queries) DeleteSurvey(ctx context.Context, id int64) error {
	return q.execOne(ctx, "survey", id, `DELETE FROM surveys WHERE id = ?`, id)
}

func (q *Queries) GetSurvey(ctx context.Context, id int64) (models.Survey, error) {
	s, err := scanSurvey(q.queryRow(ctx, `SELECT `+surveyColumns+` FROM surveys WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Survey{}, notFound("survey", id)
	}
	if err != nil {
		return models.Survey{}, fmt.Errorf("query survey %d: %w", id, err)
	}
	return s, nil
}

func (q *Queries) ListSurveys(ctx context.Context) ([]models.Survey, error) {
	rows, err := q.query(ctx, `SELECT `+surveyColumns+` FROM surveys ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query surveys: %w", err)
	}
	defer rows.Close()

	surveys := []models.Survey{}
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		surveys = append(surveys, s)
	}
	return surveys, rows.Err()
}

// Questions

const questionSelect = `
	SELECT q.id, q.survey_id, q.type, q.content, v.begin_date, v.end_date
	FROM questions q
	JOIN surveys v ON v.id = q.survey_id
`

func scanQuestion(row scanner) (models.Question, error) {
	var qn models.Question
	err := row.Scan(&qn.ID, &qn.SurveyID, &qn.Type, &qn.Content, &qn.Window.Begin, &qn.Window.End)
	return qn, err
}

func (q *Queries) CreateQuestion(ctx context.Context, qn *models.Question) error {
	id, err := q.insert(ctx, `
		INSERT INTO questions (survey_id, type, content)
		VALUES (?, ?, ?)
	`, qn.SurveyID, string(qn.Type), qn.Content)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	qn.ID = id
	return nil
}

// UpdateQuestion writes the mutable question fields.
func (q *Queries) UpdateQuestion(ctx context.Context, qn models.Question) error {
	return q.execOne(ctx, "question", qn.ID, `UPDATE questions SET content = ? WHERE id = ?`, qn.Content, qn.ID)
}

func (q *Queries) DeleteQuestion(ctx context.Context, id int64) error {
	return q.execOne(ctx, "question", id, `DELETE FROM questions WHERE id = ?`, id)
}

// LockQuestion takes a write lock on the question row for the rest of the
// transaction.
func (q *Queries) LockQuestion(ctx context.Context, id int64) error {
	return q.execOne(ctx, "question", id, `UPDATE questions SET type = type WHERE id = ?`, id)
}

func (q *Queries) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	qn, err := scanQuestion(q.queryRow(ctx, questionSelect+` WHERE q.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, notFound("question", id)
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("query question %d: %w", id, err)
	}
	return qn, nil
}

// ListQuestions returns questions ordered by id. surveyID 0 lists all.
func (q *Queries) ListQuestions(ctx context.Context, surveyID int64) ([]models.Question, error) {
	query := questionSelect
	var args []any
	if surveyID != 0 {
		query += ` WHERE q.survey_id = ?`
		args = append(args, surveyID)
	}
	rows, err := q.query(ctx, query+` ORDER BY q.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		qn, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, qn)
	}
	return questions, rows.Err()
}

// Response options

const optionSelect = `
	SELECT o.id, o.question_id, o.content, q.type, q.content, v.begin_date, v.end_date
	FROM response_options o
	JOIN questions q ON q.id = o.question_id
	JOIN surveys v ON v.id = q.survey_id
`

func scanOption(row scanner) (models.ResponseOption, error) {
	var o models.ResponseOption
	err := row.Scan(&o.ID, &o.QuestionID, &o.Content, &o.QuestionType, &o.QuestionContent,
		&o.Window.Begin, &o.Window.End)
	return o, err
}

func (q *Queries) CreateResponseOption(ctx context.Context, o *models.ResponseOption) error {
	id, err := q.insert(ctx, `
		INSERT INTO response_options (question_id, content)
		VALUES (?, ?)
	`, o.QuestionID, o.Content)
	if err != nil {
		return fmt.Errorf("insert response option: %w", err)
	}
	o.ID = id
	return nil
}

func (q *Queries) UpdateResponseOption(ctx context.Context, o models.ResponseOption) error {
	return q.execOne(ctx, "response option", o.ID, `UPDATE response_options SET content = ? WHERE id = ?`, o.Content, o.ID)
}

func (q *Queries) DeleteResponseOption(ctx context.Context, id int64) error {
	return q.execOne(ctx, "response option", id, `DELETE FROM response_options WHERE id = ?`, id)
}

func (q *Queries) GetResponseOption(ctx context.Context, id int64) (models.ResponseOption, error) {
	o, err := scanOption(q.queryRow(ctx, optionSelect+` WHERE o.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ResponseOption{}, notFound("response option", id)
	}
	if err != nil {
		return models.ResponseOption{}, fmt.Errorf("query response option %d: %w", id, err)
	}
	return o, nil
}

// ListResponseOptions returns options ordered by id. questionID 0 lists all.
func (q *Queries) ListResponseOptions(ctx context.Context, questionID int64) ([]models.ResponseOption, error) {
	query := optionSelect
	var args []any
	if questionID != 0 {
		query += ` WHERE o.question_id = ?`
		args = append(args, questionID)
	}
	rows, err := q.query(ctx, query+` ORDER BY o.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query response options: %w", err)
	}
	defer rows.Close()

	options := []models.ResponseOption{}
	for rows.Next() {
		o, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan response option: %w", err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (q *Queries) CountResponseOptions(ctx context.Context, questionID int64) (int, error) {
	n, err := q.count(ctx, `SELECT COUNT(*) FROM response_options WHERE question_id = ?`, questionID)
	if err != nil {
		return 0, fmt.Errorf("count response options: %w", err)
	}
	return n, nil
}
