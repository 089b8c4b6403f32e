// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/testutil"
)

func createQuestionViaAPI(t *testing.T, api *testAPI, surveyID int64, qtype models.QuestionType) models.QuestionDetail {
	t.Helper()
	body := models.QuestionRequest{Survey: surveyID, Type: qtype, Content: "Question " + string(qtype)}
	w := call(api.questions.CreateQuestion, testutil.MakeRequest("POST", "/api/questions", body, testutil.AdminHeaders(t)))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.QuestionDetail
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func TestCreateResponse(t *testing.T) {
	api := setupAPI(t)
	survey := testutil.CreatePublishedSurvey(t, api.store)
	choice := createQuestionViaAPI(t, api, survey.ID, models.QuestionSingle)
	text := createQuestionViaAPI(t, api, survey.ID, models.QuestionText)

	t.Run("choice question", func(t *testing.T) {
		body := models.ResponseOptionRequest{Question: choice.ID, Content: "Yes"}
		w := call(api.responses.CreateResponse, testutil.MakeRequest("POST", "/api/responses", body, testutil.AdminHeaders(t)))
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.ResponseOptionDetail
		testutil.AssertJSON(t, w, &resp)
		if resp.Question.ID != choice.ID || resp.Question.Type != models.QuestionSingle {
			t.Errorf("Expected nested question %d, got %+v", choice.ID, resp.Question)
		}
	})

	t.Run("text question rejects extra option", func(t *testing.T) {
		body := models.ResponseOptionRequest{Question: text.ID, Content: "Another"}
		w := call(api.responses.CreateResponse, testutil.MakeRequest("POST", "/api/responses", body, testutil.AdminHeaders(t)))
		testutil.AssertStatus(t, w, http.StatusConflict)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Code != "CARDINALITY_EXCEEDED" {
			t.Errorf("Expected CARDINALITY_EXCEEDED, got %s", resp.Code)
		}
	})

	t.Run("non-admin", func(t *testing.T) {
		body := models.ResponseOptionRequest{Question: choice.ID, Content: "No"}
		w := call(api.responses.CreateResponse, testutil.MakeRequest("POST", "/api/responses", body, testutil.UserHeaders(t, "alice")))
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})
}

func TestListResponsesHidesSyntheticOption(t *testing.T) {
	api := setupAPI(t)
	survey := testutil.CreatePublishedSurvey(t, api.store)
	choice := createQuestionViaAPI(t, api, survey.ID, models.QuestionMultiple)
	text := createQuestionViaAPI(t, api, survey.ID, models.QuestionText)
	a := testutil.AddTestOption(t, api.store, choice.ID, "A")
	testutil.AddTestOption(t, api.store, choice.ID, "B")

	for _, headers := range []map[string]string{nil, testutil.AdminHeaders(t)} {
		w := call(api.responses.ListResponses, testutil.MakeRequest("GET", "/api/responses", nil, headers))
		testutil.AssertStatus(t, w, http.StatusOK)

		var page models.Page[models.ResponseOptionDetail]
		testutil.AssertJSON(t, w, &page)
		if len(page.Results) != 2 {
			t.Fatalf("Expected 2 options, got %d", len(page.Results))
		}
		for _, o := range page.Results {
			if o.Question.ID == text.ID {
				t.Errorf("Synthetic option %d should not be listed", o.ID)
			}
		}
	}

	w := call(api.responses.ListResponses, testutil.MakeRequest("GET", "/api/responses?question="+itoa(text.ID), nil, nil))
	var page models.Page[models.ResponseOptionDetail]
	testutil.AssertJSON(t, w, &page)
	if len(page.Results) != 0 {
		t.Errorf("Expected no listed options for text question, got %d", len(page.Results))
	}

	// Still reachable directly and through the question.
	fakeID := text.ResponseOptions[0].ID
	req := withID(testutil.MakeRequest("GET", idPath("/api/responses", fakeID), nil, nil), fakeID)
	testutil.AssertStatus(t, call(api.responses.GetResponse, req), http.StatusOK)

	req = withID(testutil.MakeRequest("GET", idPath("/api/responses", a.ID), nil, nil), a.ID)
	testutil.AssertStatus(t, call(api.responses.GetResponse, req), http.StatusOK)
}

func TestResponseDetailOfUnpublishedSurvey(t *testing.T) {
	api := setupAPI(t)
	survey := testutil.CreateUnpublishedSurvey(t, api.store)
	q := testutil.CreateTestQuestion(t, api.store, survey.ID, models.QuestionSingle)
	o := testutil.AddTestOption(t, api.store, q.ID, "A")

	req := withID(testutil.MakeRequest("GET", idPath("/api/responses", o.ID), nil, testutil.UserHeaders(t, "alice")), o.ID)
	testutil.AssertStatus(t, call(api.responses.GetResponse, req), http.StatusForbidden)

	req = withID(testutil.MakeRequest("GET", idPath("/api/responses", o.ID), nil, testutil.AdminHeaders(t)), o.ID)
	w := call(api.responses.GetResponse, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResponseOptionDetail
	testutil.AssertJSON(t, w, &resp)
	if resp.IsPublished {
		t.Error("Expected is_published false")
	}
}

func TestUpdateResponse(t *testing.T) {
	api := setupAPI(t)
	survey := testutil.CreatePublishedSurvey(t, api.store)
	q := testutil.CreateTestQuestion(t, api.store, survey.ID, models.QuestionSingle)
	o := testutil.AddTestOption(t, api.store, q.ID, "Old")

	body := models.ResponseOptionRequest{Question: q.ID, Content: "New"}
	req := withID(testutil.MakeRequest("PUT", idPath("/api/responses", o.ID), body, testutil.AdminHeaders(t)), o.ID)
	w := call(api.responses.UpdateResponse, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResponseOptionDetail
	testutil.AssertJSON(t, w, &resp)
	if resp.Content != "New" {
		t.Errorf("Expected content New, got %q", resp.Content)
	}

	req = withID(testutil.MakeRequest("DELETE", idPath("/api/responses", o.ID), nil, testutil.AdminHeaders(t)), o.ID)
	testutil.AssertStatus(t, call(api.responses.DeleteResponse, req), http.StatusNoContent)
}
