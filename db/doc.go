// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the schema and every query the API runs.

# Connecting

	dialect, _ := db.ParseDialect(cfg.DatabaseType)
	conn, err := db.Open(dialect, cfg.DatabaseURL)
	if err := db.CreateSchema(conn, dialect); err != nil {
		log.Fatal(err)
	}
	store := db.NewStore(conn, dialect)

Queries are written with ? placeholders and rebound to $n for PostgreSQL.
SQLite runs on a single connection.

CreateSchema is safe to call multiple times.

# Tables

	surveys 1──* questions 1──* response_options
	actors 1──* sessions 1──* answer_acts *──1 response_options

All foreign keys use ON DELETE CASCADE.

# Transactions

Store.InTx runs a function against a transaction. Writes that check other rows
first take a row lock (LockSession, LockQuestion) so concurrent answers to the
same session are serialized.

Missing rows come back as apperr NotFound errors.
*/
package db
