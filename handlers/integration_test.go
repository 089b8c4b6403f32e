// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/testutil"
)

// TestFullSurveyWorkflow tests the complete end-to-end workflow:
// 1. Admin creates a survey with a choice and a text question
// 2. Admin adds options to the choice question
// 3. A participant registers an actor and starts a session
// 4. The participant answers both questions
// 5. The participant looks up their answers
// 6. Admin deletes the survey and the answers go with it
func TestFullSurveyWorkflow(t *testing.T) {
	api := setupAPI(t)
	admin := testutil.AdminHeaders(t)
	carol := testutil.UserHeaders(t, "carol")

	// Step 1: Create a survey
	surveyReq := models.SurveyRequest{
		Header:      "Team lunch",
		Description: "Where should we go on Friday?",
		BeginDate:   testutil.DatePtr(0),
		EndDate:     testutil.DatePtr(3),
	}
	w := call(api.surveys.CreateSurvey, testutil.MakeRequest("POST", "/api/surveys", surveyReq, admin))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create survey failed: %d - %s", w.Code, w.Body.String())
	}
	var survey models.SurveyDetail
	testutil.AssertJSON(t, w, &survey)

	choice := createQuestionViaAPI(t, api, survey.ID, models.QuestionSingle)
	text := createQuestionViaAPI(t, api, survey.ID, models.QuestionText)
	t.Logf("Step 1 - Created survey %d with questions %d and %d", survey.ID, choice.ID, text.ID)

	// Step 2: Add options
	var optionIDs []int64
	for _, content := range []string{"Pizza", "Sushi", "Tacos"} {
		body := models.ResponseOptionRequest{Question: choice.ID, Content: content}
		w := call(api.responses.CreateResponse, testutil.MakeRequest("POST", "/api/responses", body, admin))
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Add option %q failed: %d - %s", content, w.Code, w.Body.String())
		}
		var opt models.ResponseOptionDetail
		testutil.AssertJSON(t, w, &opt)
		optionIDs = append(optionIDs, opt.ID)
	}

	// The participant discovers the text question's option through the question detail.
	req := withID(testutil.MakeRequest("GET", idPath("/api/questions", text.ID), nil, carol), text.ID)
	w = call(api.questions.GetQuestion, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	var textDetail models.QuestionDetail
	testutil.AssertJSON(t, w, &textDetail)
	if !textDetail.HaveFakeAnswer || len(textDetail.ResponseOptions) != 1 {
		t.Fatalf("Step 2 - Expected text question with one fake answer, got %+v", textDetail)
	}

	// Step 3: Register and start a session
	actor := registerActor(t, api, carol)
	session := startSession(t, api, actor.ID, carol)

	// Step 4: Answer
	w = submitAnswer(api, models.AnswerActRequest{Session: session.ID, Response: optionIDs[1]}, carol)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 4 - Choice answer failed: %d - %s", w.Code, w.Body.String())
	}
	comment := "Close to the office"
	w = submitAnswer(api, models.AnswerActRequest{Session: session.ID, Response: textDetail.ResponseOptions[0].ID, Content: &comment}, carol)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 4 - Text answer failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 5: Look up answers
	w = call(api.answers.ListAnswers, testutil.MakeRequest("GET", "/api/answers?session="+itoa(session.ID), nil, carol))
	testutil.AssertStatus(t, w, http.StatusOK)
	var answers models.Page[models.AnswerActDetail]
	testutil.AssertJSON(t, w, &answers)
	if len(answers.Results) != 2 {
		t.Fatalf("Step 5 - Expected 2 answers, got %d", len(answers.Results))
	}
	if answers.Results[0].Response.ID != optionIDs[1] {
		t.Errorf("Step 5 - Expected first answer to be option %d, got %d", optionIDs[1], answers.Results[0].Response.ID)
	}

	req = withID(testutil.MakeRequest("GET", idPath("/api/sessions", session.ID), nil, carol), session.ID)
	w = call(api.sessions.GetSession, req)
	var sessionDetail models.SessionDetail
	testutil.AssertJSON(t, w, &sessionDetail)
	if len(sessionDetail.AnswerActs) != 2 {
		t.Errorf("Step 5 - Expected session to list 2 answers, got %d", len(sessionDetail.AnswerActs))
	}

	// Step 6: Delete the survey
	req = withID(testutil.MakeRequest("DELETE", idPath("/api/surveys", survey.ID), nil, admin), survey.ID)
	testutil.AssertStatus(t, call(api.surveys.DeleteSurvey, req), http.StatusNoContent)

	w = call(api.answers.ListAnswers, testutil.MakeRequest("GET", "/api/answers?session="+itoa(session.ID), nil, carol))
	testutil.AssertJSON(t, w, &answers)
	if len(answers.Results) != 0 {
		t.Errorf("Step 6 - Expected answers to be deleted with the survey, got %d", len(answers.Results))
	}
}

func TestCannotAnswerUpcomingSurvey(t *testing.T) {
	api := setupAPI(t)
	survey := testutil.CreateUnpublishedSurvey(t, api.store)
	q := testutil.CreateTestQuestion(t, api.store, survey.ID, models.QuestionSingle)
	o := testutil.AddTestOption(t, api.store, q.ID, "A")
	actor := testutil.CreateTestActor(t, api.store, "")
	s := testutil.CreateTestSession(t, api.store, actor.ID)

	w := submitAnswer(api, models.AnswerActRequest{Session: s.ID, Response: o.ID}, nil)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Staff may record answers outside the window.
	w = submitAnswer(api, models.AnswerActRequest{Session: s.ID, Response: o.ID}, testutil.AdminHeaders(t))
	testutil.AssertStatus(t, w, http.StatusCreated)
}
