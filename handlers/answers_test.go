// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/testutil"
)

func submitAnswer(api *testAPI, body models.AnswerActRequest, headers map[string]string) *httptest.ResponseRecorder {
	return call(api.answers.CreateAnswer, testutil.MakeRequest("POST", "/api/answers", body, headers))
}

func TestCreateAnswer(t *testing.T) {
	api := setupAPI(t)
	survey := testutil.CreatePublishedSurvey(t, api.store)
	single := testutil.CreateTestQuestion(t, api.store, survey.ID, models.QuestionSingle)
	optA := testutil.AddTestOption(t, api.store, single.ID, "A")
	optB := testutil.AddTestOption(t, api.store, single.ID, "B")
	text := createQuestionViaAPI(t, api, survey.ID, models.QuestionText)
	fakeID := text.ResponseOptions[0].ID

	closed := testutil.CreateTestSurvey(t, api.store, "Closed", testutil.DatePtr(-10), testutil.DatePtr(-1))
	closedQ := testutil.CreateTestQuestion(t, api.store, closed.ID, models.QuestionSingle)
	closedOpt := testutil.AddTestOption(t, api.store, closedQ.ID, "A")

	alice := testutil.UserHeaders(t, "alice")
	actor := registerActor(t, api, alice)
	session := startSession(t, api, actor.ID, alice)

	t.Run("first answer", func(t *testing.T) {
		w := submitAnswer(api, models.AnswerActRequest{Session: session.ID, Response: optA.ID}, alice)
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.AnswerActDetail
		testutil.AssertJSON(t, w, &resp)
		if resp.Response.ID != optA.ID || resp.Session.ID != session.ID {
			t.Errorf("Unexpected answer %+v", resp)
		}
		if !resp.CreatedAt.Equal(testutil.Now) {
			t.Errorf("Expected created_at %v, got %v", testutil.Now, resp.CreatedAt)
		}
	})

	t.Run("second answer to single question", func(t *testing.T) {
		w := submitAnswer(api, models.AnswerActRequest{Session: session.ID, Response: optB.ID}, alice)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("text answer with content", func(t *testing.T) {
		content := "Because it is quick"
		w := submitAnswer(api, models.AnswerActRequest{Session: session.ID, Response: fakeID, Content: &content}, alice)
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.AnswerActDetail
		testutil.AssertJSON(t, w, &resp)
		if resp.Content == nil || *resp.Content != content {
			t.Errorf("Expected content %q, got %v", content, resp.Content)
		}
	})

	t.Run("someone else's session", func(t *testing.T) {
		w := submitAnswer(api, models.AnswerActRequest{Session: session.ID, Response: optA.ID}, testutil.UserHeaders(t, "bob"))
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("closed survey", func(t *testing.T) {
		w := submitAnswer(api, models.AnswerActRequest{Session: session.ID, Response: closedOpt.ID}, alice)
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("missing response", func(t *testing.T) {
		w := submitAnswer(api, models.AnswerActRequest{Session: session.ID}, alice)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown session", func(t *testing.T) {
		w := submitAnswer(api, models.AnswerActRequest{Session: 999, Response: optA.ID}, alice)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestListAnswers(t *testing.T) {
	api := setupAPI(t)
	survey := testutil.CreatePublishedSurvey(t, api.store)
	q1 := testutil.CreateTestQuestion(t, api.store, survey.ID, models.QuestionMultiple)
	q2 := testutil.CreateTestQuestion(t, api.store, survey.ID, models.QuestionSingle)
	a1 := testutil.AddTestOption(t, api.store, q1.ID, "A")
	b1 := testutil.AddTestOption(t, api.store, q1.ID, "B")
	a2 := testutil.AddTestOption(t, api.store, q2.ID, "A")

	alice := testutil.CreateTestActor(t, api.store, "alice")
	bob := testutil.CreateTestActor(t, api.store, "bob")
	sa := testutil.CreateTestSession(t, api.store, alice.ID)
	sb := testutil.CreateTestSession(t, api.store, bob.ID)

	third := testutil.InsertTestAnswer(t, api.store, sa.ID, a1.ID, testutil.Now.Add(2*time.Minute))
	first := testutil.InsertTestAnswer(t, api.store, sa.ID, b1.ID, testutil.Now)
	second := testutil.InsertTestAnswer(t, api.store, sa.ID, a2.ID, testutil.Now.Add(time.Minute))
	bobs := testutil.InsertTestAnswer(t, api.store, sb.ID, a1.ID, testutil.Now)

	testCases := []struct {
		name           string
		path           string
		headers        map[string]string
		expectedStatus int
		expectedCode   string
		expectedIDs    []int64
	}{
		{"no params", "/api/answers", nil, http.StatusBadRequest, "EMPTY_QUERY_PARAMS", nil},
		{"only pagination params", "/api/answers?page_size=5", nil, http.StatusBadRequest, "EMPTY_QUERY_PARAMS", nil},
		{"unknown param", "/api/answers?survey=1", nil, http.StatusBadRequest, "UNRECOGNIZED_QUERY_PARAM", nil},
		{"bad value", "/api/answers?actor=me", nil, http.StatusBadRequest, "INVALID_QUERY_VALUE", nil},
		{"by actor ordered by time", "/api/answers?actor=" + itoa(alice.ID), testutil.UserHeaders(t, "alice"), http.StatusOK, "", []int64{first.ID, second.ID, third.ID}},
		{"actor and question", "/api/answers?actor=" + itoa(alice.ID) + "&question=" + itoa(q1.ID), testutil.UserHeaders(t, "alice"), http.StatusOK, "", []int64{first.ID, third.ID}},
		{"question as other user hides foreign answers", "/api/answers?question=" + itoa(q1.ID), testutil.UserHeaders(t, "bob"), http.StatusOK, "", []int64{bobs.ID}},
		{"question as admin", "/api/answers?question=" + itoa(q1.ID), testutil.AdminHeaders(t), http.StatusOK, "", []int64{first.ID, bobs.ID, third.ID}},
		{"session as anonymous", "/api/answers?session=" + itoa(sa.ID), nil, http.StatusOK, "", []int64{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := call(api.answers.ListAnswers, testutil.MakeRequest("GET", tc.path, nil, tc.headers))
			testutil.AssertStatus(t, w, tc.expectedStatus)

			if tc.expectedStatus != http.StatusOK {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Code != tc.expectedCode {
					t.Errorf("Expected code %s, got %s", tc.expectedCode, resp.Code)
				}
				return
			}

			var page models.Page[models.AnswerActDetail]
			testutil.AssertJSON(t, w, &page)
			if len(page.Results) != len(tc.expectedIDs) {
				t.Fatalf("Expected %v, got %d results", tc.expectedIDs, len(page.Results))
			}
			for i, a := range page.Results {
				if a.ID != tc.expectedIDs[i] {
					t.Errorf("Result %d: expected id %d, got %d", i, tc.expectedIDs[i], a.ID)
				}
			}
		})
	}
}

func TestListAnswersPagination(t *testing.T) {
	api := setupAPI(t)
	survey := testutil.CreatePublishedSurvey(t, api.store)
	q := testutil.CreateTestQuestion(t, api.store, survey.ID, models.QuestionMultiple)
	actor := testutil.CreateTestActor(t, api.store, "")

	var want []int64
	for i := 0; i < 5; i++ {
		o := testutil.AddTestOption(t, api.store, q.ID, "opt")
		s := testutil.CreateTestSession(t, api.store, actor.ID)
		// Same timestamp for all; ties resolve by id.
		want = append(want, testutil.InsertTestAnswer(t, api.store, s.ID, o.ID, testutil.Now).ID)
	}

	w := call(api.answers.ListAnswers, testutil.MakeRequest("GET", "/api/answers?question="+itoa(q.ID)+"&page_size=3", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var page models.Page[models.AnswerActDetail]
	testutil.AssertJSON(t, w, &page)

	if len(page.Results) != 3 || page.NextPageToken == "" || page.Next == "" {
		t.Fatalf("Expected a full first page with a continuation, got %d results, token %q", len(page.Results), page.NextPageToken)
	}

	w = call(api.answers.ListAnswers, testutil.MakeRequest("GET", "/api/answers?question="+itoa(q.ID)+"&page_size=3&page_token="+page.NextPageToken, nil, nil))
	var rest models.Page[models.AnswerActDetail]
	testutil.AssertJSON(t, w, &rest)
	if len(rest.Results) != 2 || rest.NextPageToken != "" {
		t.Fatalf("Expected a final page of 2, got %d results, token %q", len(rest.Results), rest.NextPageToken)
	}

	got := append(page.Results, rest.Results...)
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("Result %d: expected id %d, got %d", i, want[i], got[i].ID)
		}
	}
}

func TestGetAnswer(t *testing.T) {
	api := setupAPI(t)
	survey := testutil.CreatePublishedSurvey(t, api.store)
	q := testutil.CreateTestQuestion(t, api.store, survey.ID, models.QuestionSingle)
	o := testutil.AddTestOption(t, api.store, q.ID, "A")
	actor := testutil.CreateTestActor(t, api.store, "alice")
	s := testutil.CreateTestSession(t, api.store, actor.ID)
	a := testutil.InsertTestAnswer(t, api.store, s.ID, o.ID, testutil.Now)

	req := withID(testutil.MakeRequest("GET", idPath("/api/answers", a.ID), nil, testutil.UserHeaders(t, "alice")), a.ID)
	testutil.AssertStatus(t, call(api.answers.GetAnswer, req), http.StatusOK)

	req = withID(testutil.MakeRequest("GET", idPath("/api/answers", a.ID), nil, testutil.UserHeaders(t, "bob")), a.ID)
	testutil.AssertStatus(t, call(api.answers.GetAnswer, req), http.StatusForbidden)

	req = withID(testutil.MakeRequest("GET", "/api/answers/999", nil, nil), 999)
	testutil.AssertStatus(t, call(api.answers.GetAnswer, req), http.StatusNotFound)
}
