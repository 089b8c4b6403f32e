// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/handlers"
	"github.com/danielhkuo/quickly-survey/middleware"
)

// NewRouter registers every route. now is the clock used for publication
// windows and answer timestamps; nil means time.Now.
func NewRouter(store *db.Store, cfg cliparse.Config, now func() time.Time) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(store, cfg, now)
	questionHandler := handlers.NewQuestionHandler(store, cfg, now)
	responseHandler := handlers.NewResponseHandler(store, cfg, now)
	actorHandler := handlers.NewActorHandler(store, cfg, now)
	sessionHandler := handlers.NewSessionHandler(store, cfg, now)
	answerHandler := handlers.NewAnswerHandler(store, cfg, now)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithRequester(cfg.TokenSecret, h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Surveys, questions and response options (admin writes)
	handle("GET /api/surveys", surveyHandler.ListSurveys)
	handle("POST /api/surveys", surveyHandler.CreateSurvey)
	handle("GET /api/surveys/{id}", surveyHandler.GetSurvey)
	handle("PUT /api/surveys/{id}", surveyHandler.UpdateSurvey)
	handle("DELETE /api/surveys/{id}", surveyHandler.DeleteSurvey)

	handle("GET /api/questions", questionHandler.ListQuestions)
	handle("POST /api/questions", questionHandler.CreateQuestion)
	handle("GET /api/questions/{id}", questionHandler.GetQuestion)
	handle("PUT /api/questions/{id}", questionHandler.UpdateQuestion)
	handle("DELETE /api/questions/{id}", questionHandler.DeleteQuestion)

	handle("GET /api/responses", responseHandler.ListResponses)
	handle("POST /api/responses", responseHandler.CreateResponse)
	handle("GET /api/responses/{id}", responseHandler.GetResponse)
	handle("PUT /api/responses/{id}", responseHandler.UpdateResponse)
	handle("DELETE /api/responses/{id}", responseHandler.DeleteResponse)

	// Participants
	handle("POST /api/actors", actorHandler.CreateActor)
	handle("GET /api/actors/{id}", actorHandler.GetActor)
	handle("PUT /api/actors/{id}", actorHandler.UpdateActor)
	handle("DELETE /api/actors/{id}", actorHandler.DeleteActor)

	handle("POST /api/sessions", sessionHandler.CreateSession)
	handle("GET /api/sessions/{id}", sessionHandler.GetSession)
	handle("PUT /api/sessions/{id}", sessionHandler.UpdateSession)
	handle("DELETE /api/sessions/{id}", sessionHandler.DeleteSession)

	// Answers
	handle("GET /api/answers", answerHandler.ListAnswers)
	handle("POST /api/answers", answerHandler.CreateAnswer)
	handle("GET /api/answers/{id}", answerHandler.GetAnswer)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-survey API v1"))
	})

	return mux
}
