// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/testutil"
)

func newTestMux(t *testing.T) (*http.ServeMux, func() *httptest.ResponseRecorder) {
	t.Helper()
	store := testutil.SetupTestDB(t)
	mux := NewRouter(store, testutil.GetTestConfig(), testutil.Clock())
	return mux, httptest.NewRecorder
}

func TestHealthEndpoint(t *testing.T) {
	mux, rec := newTestMux(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := rec()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, rec := newTestMux(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := rec()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	expected := "quickly-survey API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestUnknownPath(t *testing.T) {
	mux, rec := newTestMux(t)

	w := rec()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/polls", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux, rec := newTestMux(t)

	// Handlers may answer 400, 401, 403 or 404; only 405 means no route.
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"GET", "/api/surveys"},
		{"POST", "/api/surveys"},
		{"GET", "/api/surveys/1"},
		{"PUT", "/api/surveys/1"},
		{"DELETE", "/api/surveys/1"},

		{"GET", "/api/questions"},
		{"POST", "/api/questions"},
		{"GET", "/api/questions/1"},
		{"PUT", "/api/questions/1"},
		{"DELETE", "/api/questions/1"},

		{"GET", "/api/responses"},
		{"POST", "/api/responses"},
		{"GET", "/api/responses/1"},
		{"PUT", "/api/responses/1"},
		{"DELETE", "/api/responses/1"},

		{"POST", "/api/actors"},
		{"GET", "/api/actors/1"},
		{"PUT", "/api/actors/1"},
		{"DELETE", "/api/actors/1"},

		{"POST", "/api/sessions"},
		{"GET", "/api/sessions/1"},
		{"PUT", "/api/sessions/1"},
		{"DELETE", "/api/sessions/1"},

		{"GET", "/api/answers?session=1"},
		{"POST", "/api/answers"},
		{"GET", "/api/answers/1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := rec()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, rec := newTestMux(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PUT", "/api/answers/1"},
		{"DELETE", "/api/answers/1"},
		{"GET", "/api/actors"},
		{"GET", "/api/sessions"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := rec()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	mux, rec := newTestMux(t)

	req := httptest.NewRequest("GET", "/api/surveys", nil)
	req.Header.Set("X-Request-ID", "router-test")
	w := rec()
	mux.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "router-test" {
		t.Errorf("Expected X-Request-ID to be echoed, got %q", got)
	}
}

func TestBearerTokenThroughMux(t *testing.T) {
	mux, rec := newTestMux(t)

	body := models.SurveyRequest{Header: "Routed", BeginDate: testutil.DatePtr(-1)}

	t.Run("anonymous create is forbidden", func(t *testing.T) {
		w := rec()
		mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/surveys", body, nil))
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		w := rec()
		headers := map[string]string{"Authorization": "Bearer not-a-token"}
		mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/surveys", body, headers))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("admin create then anonymous read", func(t *testing.T) {
		w := rec()
		mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/surveys", body, testutil.AdminHeaders(t)))
		testutil.AssertStatus(t, w, http.StatusCreated)

		var created models.SurveyDetail
		testutil.AssertJSON(t, w, &created)
		if created.ID == 0 {
			t.Fatal("Expected survey id to be assigned")
		}

		w = rec()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/surveys", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var page models.Page[models.SurveyDetail]
		testutil.AssertJSON(t, w, &page)
		if len(page.Results) != 1 || page.Results[0].Header != "Routed" {
			t.Errorf("Expected the published survey in the list, got %+v", page.Results)
		}
	})
}
