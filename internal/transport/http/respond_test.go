package http

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRespondJSON_EncodeFailureUsesGivenLogger(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	rec := httptest.NewRecorder()
	respondJSON(log, rec, http.StatusOK, map[string]float64{"total": math.Inf(1)})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "failed to encode response", entry.Message)
	assert.EqualValues(t, http.StatusOK, entry.ContextMap()["status"])
}

func TestRespondError_WritesJSONBody(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	rec := httptest.NewRecorder()
	respondError(zap.New(core), rec, http.StatusBadRequest, "invalid_request", "invalid JSON body")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"invalid JSON body","code":"invalid_request"}`, rec.Body.String())
	assert.Zero(t, logs.Len())
}
