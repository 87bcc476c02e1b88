package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 63.0, RoundFloat(63.004, 2))
	assert.Equal(t, 2.78, RoundFloat(2.775001, 2))
	assert.Equal(t, 0.9235, RoundFloat(0.923456, 4))
	assert.Equal(t, -1.5, RoundFloat(-1.46, 1))
	assert.Equal(t, 7.0, RoundFloat(6.6, 0))
}

func TestSendJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	SendJSONError(rec, httptest.NewRequest(http.MethodGet, "/", nil), "Invalid id", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Invalid id"}`, rec.Body.String())
}

func TestSendJSON_UnencodableValueIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	SendJSON(rec, httptest.NewRequest(http.MethodPost, "/", nil), http.StatusOK,
		map[string]float64{"totalShippingOrigin": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}

func TestSendJSONError_LogsWithRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	reqLogger := logger.New(&buf, slog.LevelInfo).With("requestID", "req-42")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.ToContext(req.Context(), reqLogger))

	SendJSONError(httptest.NewRecorder(), req, "Not found", http.StatusNotFound)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["requestID"])
	assert.Equal(t, "Not found", entry["message"])
}
