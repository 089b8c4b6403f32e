// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	var schema string
	switch dialect {
	case Postgres:
		schema = postgresSchema
	case SQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// DropSchema removes every table, children first.
func DropSchema(db *sql.DB) error {
	_, err := db.Exec(`
		DROP TABLE IF EXISTS answer_acts;
		DROP TABLE IF EXISTS sessions;
		DROP TABLE IF EXISTS actors;
		DROP TABLE IF EXISTS response_options;
		DROP TABLE IF EXISTS questions;
		DROP TABLE IF EXISTS surveys;
	`)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

// Dates are YYYY-MM-DD text and created_at is unix microseconds in both
// dialects so ordering and scanning behave identically.

const postgresSchema = `
-- Surveys
CREATE TABLE IF NOT EXISTS surveys (
    id BIGSERIAL PRIMARY KEY,
    header TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    begin_date TEXT,
    end_date TEXT
);

-- Questions
CREATE TABLE IF NOT EXISTS questions (
    id BIGSERIAL PRIMARY KEY,
    survey_id BIGINT NOT NULL REFERENCES surveys(id) ON DELETE CASCADE,
    type TEXT NOT NULL CHECK (type IN ('single', 'multiple', 'text')),
    content TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_questions_survey_id ON questions(survey_id);

-- Response options
CREATE TABLE IF NOT EXISTS response_options (
    id BIGSERIAL PRIMARY KEY,
    question_id BIGINT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
    content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_response_options_question_id ON response_options(question_id);

-- Actors
CREATE TABLE IF NOT EXISTS actors (
    id BIGSERIAL PRIMARY KEY,
    actor_key TEXT NOT NULL UNIQUE,
    account_id TEXT UNIQUE
);

-- Sessions
CREATE TABLE IF NOT EXISTS sessions (
    id BIGSERIAL PRIMARY KEY,
    session_key TEXT NOT NULL UNIQUE,
    actor_id BIGINT NOT NULL REFERENCES actors(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sessions_actor_id ON sessions(actor_id);

-- Answer acts
CREATE TABLE IF NOT EXISTS answer_acts (
    id BIGSERIAL PRIMARY KEY,
    session_id BIGINT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    response_option_id BIGINT NOT NULL REFERENCES response_options(id) ON DELETE CASCADE,
    content TEXT,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_answer_acts_session_id ON answer_acts(session_id);
CREATE INDEX IF NOT EXISTS idx_answer_acts_response_option_id ON answer_acts(response_option_id);
CREATE INDEX IF NOT EXISTS idx_answer_acts_created ON answer_acts(created_at, id);
`

const sqliteSchema = `
-- Surveys
CREATE TABLE IF NOT EXISTS surveys (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    header TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    begin_date TEXT,
    end_date TEXT
);

-- Questions
CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    survey_id INTEGER NOT NULL REFERENCES surveys(id) ON DELETE CASCADE,
    type TEXT NOT NULL CHECK (type IN ('single', 'multiple', 'text')),
    content TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_questions_survey_id ON questions(survey_id);

-- Response options
CREATE TABLE IF NOT EXISTS response_options (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
    content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_response_options_question_id ON response_options(question_id);

-- Actors
CREATE TABLE IF NOT EXISTS actors (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    actor_key TEXT NOT NULL UNIQUE,
    account_id TEXT UNIQUE
);

-- Sessions
CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_key TEXT NOT NULL UNIQUE,
    actor_id INTEGER NOT NULL REFERENCES actors(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sessions_actor_id ON sessions(actor_id);

-- Answer acts
CREATE TABLE IF NOT EXISTS answer_acts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    response_option_id INTEGER NOT NULL REFERENCES response_options(id) ON DELETE CASCADE,
    content TEXT,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_answer_acts_session_id ON answer_acts(session_id);
CREATE INDEX IF NOT EXISTS idx_answer_acts_response_option_id ON answer_acts(response_option_id);
CREATE INDEX IF NOT EXISTS idx_answer_acts_created ON answer_acts(created_at, id);
`
