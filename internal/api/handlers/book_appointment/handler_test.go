package book_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	resp *bookAppointment.Response
	err  error

	gotReq *bookAppointment.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func doRequest(t *testing.T, useCase *fakeUseCase, subjectID, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(useCase, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if subjectID != "" {
		req.Header.Set("X-Subject-ID", subjectID)
	}

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	useCase := &fakeUseCase{resp: &bookAppointment.Response{ID: 7}}

	rec := doRequest(t, useCase, "100", `{"providerId": 10, "date": "2025-06-01", "slot": "09:00-10:00"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookAppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.AppointmentID)
	assert.NotEmpty(t, resp.Message)

	// subjectID берется из заголовка, а не из тела
	require.NotNil(t, useCase.gotReq)
	assert.Equal(t, int64(100), useCase.gotReq.SubjectID)
	assert.Equal(t, int64(10), useCase.gotReq.ProviderID)
}

func TestHandle_MissingSubjectID(t *testing.T) {
	useCase := &fakeUseCase{}

	rec := doRequest(t, useCase, "", `{"providerId": 10, "date": "2025-06-01", "slot": "09:00-10:00"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, useCase.gotReq)
}

func TestHandle_InvalidBody(t *testing.T) {
	useCase := &fakeUseCase{}

	rec := doRequest(t, useCase, "100", `{"providerId": "not a number"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, useCase.gotReq)
}

func TestHandle_InvalidDate(t *testing.T) {
	useCase := &fakeUseCase{}

	rec := doRequest(t, useCase, "100", `{"providerId": 10, "date": "01.06.2025", "slot": "09:00-10:00"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, useCase.gotReq)
}

func TestHandle_SlotUnavailable(t *testing.T) {
	useCase := &fakeUseCase{err: bookAppointment.ErrSlotUnavailable}

	rec := doRequest(t, useCase, "100", `{"providerId": 10, "date": "2025-06-01", "slot": "09:00-10:00"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ProviderNotFound(t *testing.T) {
	useCase := &fakeUseCase{err: bookAppointment.ErrProviderNotFound}

	rec := doRequest(t, useCase, "100", `{"providerId": 99, "date": "2025-06-01", "slot": "09:00-10:00"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_TemporarilyUnavailable(t *testing.T) {
	useCase := &fakeUseCase{err: bookAppointment.ErrUnavailable}

	rec := doRequest(t, useCase, "100", `{"providerId": 10, "date": "2025-06-01", "slot": "09:00-10:00"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	useCase := &fakeUseCase{err: bookAppointment.ErrInternal}

	rec := doRequest(t, useCase, "100", `{"providerId": 10, "date": "2025-06-01", "slot": "09:00-10:00"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
