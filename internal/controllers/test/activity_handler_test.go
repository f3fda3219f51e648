package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	controllers "github.com/tutoro/services-feed/internal/controllers"
	"github.com/tutoro/services-feed/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubActivityService struct {
	result *services.RecordActivityResult
	err    error
	input  services.RecordActivityInput
	calls  int
}

func (s *stubActivityService) Record(_ context.Context, input services.RecordActivityInput) (*services.RecordActivityResult, error) {
	s.input = input
	s.calls++
	return s.result, s.err
}

func newActivityHandler(service controllers.ActivityServiceAPI) *controllers.ActivityHandler {
	return controllers.NewActivityHandler(service, controllers.NewBaseHandler(controllers.HandlerTimeouts{}), log.NewStdLogger(io.Discard))
}

func postActivity(t *testing.T, handler *controllers.ActivityHandler, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/activities", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authorized {
		req.Header.Set("x-apigateway-api-userinfo", encodeUserInfo(t, map[string]any{"sub": "101"}))
	}
	return performRequest(handler.Record, req)
}

func TestActivityHandler_Record_Created(t *testing.T) {
	service := &stubActivityService{result: &services.RecordActivityResult{ID: 55}}
	handler := newActivityHandler(service)

	body := `{
		"category": "LESSON",
		"action": "LESSON_COMPLETED",
		"title": "Lesson completed",
		"status": "SUCCESS",
		"source": "AUTO",
		"studentId": 7,
		"lessonId": 42,
		"payload": {"durationMin": 60},
		"idempotencyKey": "lesson-42-completed"
	}`
	rec := postActivity(t, handler, body, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		ID              int64 `json:"id"`
		AlreadyRecorded bool  `json:"alreadyRecorded"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(55), resp.ID)
	require.False(t, resp.AlreadyRecorded)

	require.Equal(t, int64(101), service.input.TenantID)
	require.Equal(t, "LESSON_COMPLETED", service.input.Action)
	require.Equal(t, int64(42), service.input.LessonID)
	require.Equal(t, "lesson-42-completed", service.input.IdempotencyKey)
	require.JSONEq(t, `{"durationMin": 60}`, string(service.input.Payload))
}

func TestActivityHandler_Record_AlreadyRecorded(t *testing.T) {
	service := &stubActivityService{result: &services.RecordActivityResult{AlreadyRecorded: true}}
	handler := newActivityHandler(service)

	rec := postActivity(t, handler, `{"category":"LESSON","action":"A","title":"T"}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		AlreadyRecorded bool `json:"alreadyRecorded"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.AlreadyRecorded)
}

func TestActivityHandler_Record_Validation(t *testing.T) {
	service := &stubActivityService{}
	handler := newActivityHandler(service)

	rec := postActivity(t, handler, `{"category":"LESSON","title":"missing action"}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postActivity(t, handler, `{not json`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	require.Zero(t, service.calls)
}

func TestActivityHandler_Record_Unauthorized(t *testing.T) {
	service := &stubActivityService{}
	handler := newActivityHandler(service)

	rec := postActivity(t, handler, `{"category":"LESSON","action":"A","title":"T"}`, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Zero(t, service.calls)
}

func TestActivityHandler_Record_ServiceError(t *testing.T) {
	service := &stubActivityService{err: errors.New("boom")}
	handler := newActivityHandler(service)

	rec := postActivity(t, handler, `{"category":"LESSON","action":"A","title":"T"}`, true)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
