package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TahPapeJe/PotSoft/store"
)

func TestInsightSummaryEndpoint(t *testing.T) {
	stub := &stubGemini{insightText: `{"title": "Weekly Infrastructure Report"}`}
	_, router := newTestServer(store.NewSeededMemoryStore(), stub)

	req := httptest.NewRequest("GET", "/api/insights/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Weekly Infrastructure Report", result["title"])

	// Second hit is served from cache.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/insights/summary", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stub.insightCalls)
}

func TestInsightUnparseableReplyDegrades(t *testing.T) {
	stub := &stubGemini{insightText: "the model rambled instead"}
	_, router := newTestServer(store.NewSeededMemoryStore(), stub)

	req := httptest.NewRequest("GET", "/api/insights/trends", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "the model rambled instead", result["raw_text"])
}

func TestInsightFailure(t *testing.T) {
	stub := &stubGemini{insightErr: fmt.Errorf("quota exceeded")}
	_, router := newTestServer(store.NewSeededMemoryStore(), stub)

	req := httptest.NewRequest("GET", "/api/insights/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errorInsightFailed.Code, resp.Code)
}

func TestInsightClearCache(t *testing.T) {
	stub := &stubGemini{insightText: `{"ok": true}`}
	_, router := newTestServer(store.NewSeededMemoryStore(), stub)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/insights/summary", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/insights/clear-cache", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "cache cleared"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/insights/summary", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, stub.insightCalls)
}
