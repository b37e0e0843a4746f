package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vradovic/fakebench/internal/apperr"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEvaluateHandler_Tune(t *testing.T) {
	e := newTestEcho()
	NewEvaluateRouter(e).Bind()

	body := `{
		"probabilities": [0.9, 0.8, 0.4, 0.2],
		"labels": [1, 1, 0, 0]
	}`
	rec := doRequest(e, http.MethodPost, "/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Tuned)
	assert.InDelta(t, 0.8, resp.Report.Threshold, 1e-9)
	assert.InDelta(t, 1.0, resp.Report.Accuracy, 1e-9)
	assert.InDelta(t, 1.0, resp.Report.AUC, 1e-9)
}

func TestEvaluateHandler_FixedThreshold(t *testing.T) {
	e := newTestEcho()
	NewEvaluateRouter(e).Bind()

	body := `{
		"probabilities": [0.9, 0.8, 0.4, 0.2],
		"labels": [1, 1, 0, 0],
		"tune": false,
		"threshold": 0.85
	}`
	rec := doRequest(e, http.MethodPost, "/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.False(t, resp.Tuned)
	assert.InDelta(t, 0.85, resp.Report.Threshold, 1e-9)
	assert.InDelta(t, 0.75, resp.Report.Accuracy, 1e-9)
	assert.InDelta(t, 0.5, resp.Report.Recall, 1e-9)
}

func TestEvaluateHandler_EmptyInput(t *testing.T) {
	e := newTestEcho()
	NewEvaluateRouter(e).Bind()

	rec := doRequest(e, http.MethodPost, "/evaluate", `{"probabilities": [], "labels": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateHandler_InvalidProbability(t *testing.T) {
	e := newTestEcho()
	NewEvaluateRouter(e).Bind()

	rec := doRequest(e, http.MethodPost, "/evaluate", `{"probabilities": [1.5], "labels": [1]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateHandler_SingleClass(t *testing.T) {
	e := newTestEcho()
	NewEvaluateRouter(e).Bind()

	body := `{"probabilities": [0.9, 0.8], "labels": [1, 1]}`
	rec := doRequest(e, http.MethodPost, "/evaluate", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
