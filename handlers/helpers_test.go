// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/testutil"
)

type testAPI struct {
	store     *db.Store
	surveys   *SurveyHandler
	questions *QuestionHandler
	responses *ResponseHandler
	actors    *ActorHandler
	sessions  *SessionHandler
	answers   *AnswerHandler
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()

	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	now := testutil.Clock()

	return &testAPI{
		store:     store,
		surveys:   NewSurveyHandler(store, cfg, now),
		questions: NewQuestionHandler(store, cfg, now),
		responses: NewResponseHandler(store, cfg, now),
		actors:    NewActorHandler(store, cfg, now),
		sessions:  NewSessionHandler(store, cfg, now),
		answers:   NewAnswerHandler(store, cfg, now),
	}
}

// call runs fn behind bearer token resolution, as the router does.
func call(fn http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	middleware.WithRequester(testutil.TestTokenSecret, fn)(w, req)
	return w
}

func withID(req *http.Request, id int64) *http.Request {
	req.SetPathValue("id", strconv.FormatInt(id, 10))
	return req
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + itoa(id)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
