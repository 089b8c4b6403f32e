// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
)

// TestDBURLEnv names a PostgreSQL URL to test against instead of SQLite.
const TestDBURLEnv = "SURVEY_TEST_DATABASE_URL"

// TestTokenSecret signs bearer tokens in tests
const TestTokenSecret = "test-token-secret"

// Now is the fixed wall clock used by tests
var Now = time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC)

// Today is the calendar day of Now
var Today = models.DateOf(Now)

// Clock returns a func reporting Now
func Clock() func() time.Time {
	return func() time.Time { return Now }
}

// SetupTestDB creates a fresh database with the full schema and returns a store over it.
// SQLite in a temp dir by default; PostgreSQL when SURVEY_TEST_DATABASE_URL is set.
func SetupTestDB(t *testing.T) *db.Store {
	t.Helper()

	dialect := db.SQLite
	url := "file:" + filepath.Join(t.TempDir(), "survey.db")
	if pg := os.Getenv(TestDBURLEnv); pg != "" {
		dialect, url = db.Postgres, pg
	}

	conn, err := db.Open(dialect, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Clean up tables before each test
	if err := db.DropSchema(conn); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}
	if err := db.CreateSchema(conn, dialect); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db.NewStore(conn, dialect)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file:test.db",
		DatabaseType: string(db.SQLite),
		TokenSecret:  TestTokenSecret,
		PageSize:     20,
		MaxPageSize:  100,
	}
}

// DatePtr returns a pointer to Today shifted by days
func DatePtr(days int) *models.Date {
	d := Today.AddDays(days)
	return &d
}

// CreateTestSurvey inserts a survey with the given window
func CreateTestSurvey(t *testing.T, store *db.Store, header string, begin, end *models.Date) models.Survey {
	t.Helper()

	s := models.Survey{Header: header, Description: "A test survey", BeginDate: begin, EndDate: end}
	if err := store.CreateSurvey(context.Background(), &s); err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}
	return s
}

// CreatePublishedSurvey inserts a survey whose window contains Today
func CreatePublishedSurvey(t *testing.T, store *db.Store) models.Survey {
	t.Helper()
	return CreateTestSurvey(t, store, "Published", DatePtr(-1), DatePtr(1))
}

// CreateUnpublishedSurvey inserts a survey that opens tomorrow
func CreateUnpublishedSurvey(t *testing.T, store *db.Store) models.Survey {
	t.Helper()
	return CreateTestSurvey(t, store, "Upcoming", DatePtr(1), nil)
}

// CreateTestQuestion inserts a question without any response options
func CreateTestQuestion(t *testing.T, store *db.Store, surveyID int64, qtype models.QuestionType) models.Question {
	t.Helper()

	q := models.Question{SurveyID: surveyID, Type: qtype, Content: "Test question"}
	if err := store.CreateQuestion(context.Background(), &q); err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	stored, err := store.GetQuestion(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("Failed to reload test question: %v", err)
	}
	return stored
}

// AddTestOption adds a response option to a question
func AddTestOption(t *testing.T, store *db.Store, questionID int64, content string) models.ResponseOption {
	t.Helper()

	o := models.ResponseOption{QuestionID: questionID, Content: content}
	if err := store.CreateResponseOption(context.Background(), &o); err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}
	stored, err := store.GetResponseOption(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("Failed to reload test option: %v", err)
	}
	return stored
}

// CreateTestActor inserts an actor, linked to account when it is non-empty
func CreateTestActor(t *testing.T, store *db.Store, account string) models.Actor {
	t.Helper()

	a := models.Actor{Key: auth.GenerateIdentityKey()}
	if account != "" {
		a.AccountID = &account
	}
	if err := store.CreateActor(context.Background(), &a); err != nil {
		t.Fatalf("Failed to create test actor: %v", err)
	}
	return a
}

// CreateTestSession inserts a session for an actor
func CreateTestSession(t *testing.T, store *db.Store, actorID int64) models.Session {
	t.Helper()

	s := models.Session{Key: auth.GenerateIdentityKey(), ActorID: actorID}
	if err := store.CreateSession(context.Background(), &s); err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	stored, err := store.GetSession(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("Failed to reload test session: %v", err)
	}
	return stored
}

// InsertTestAnswer writes an answer act directly, bypassing validation
func InsertTestAnswer(t *testing.T, store *db.Store, sessionID, optionID int64, at time.Time) models.AnswerAct {
	t.Helper()

	a := models.AnswerAct{
		Session:   models.Session{ID: sessionID},
		Option:    models.ResponseOption{ID: optionID},
		CreatedAt: at,
	}
	if err := store.CreateAnswerAct(context.Background(), &a); err != nil {
		t.Fatalf("Failed to create test answer: %v", err)
	}
	return a
}

// Token issues a bearer token for account
func Token(t *testing.T, account string, staff bool) string {
	t.Helper()

	token, err := auth.IssueToken(TestTokenSecret, account, staff, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// AdminHeaders returns headers authenticating as a staff account
func AdminHeaders(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + Token(t, "admin", true)}
}

// UserHeaders returns headers authenticating as a regular account
func UserHeaders(t *testing.T, account string) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + Token(t, account, false)}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
