package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type stubUseCase struct {
	got *createReservation.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &createReservation.Response{
		ID: "5f0c", Requester: req.Requester, ResourceID: req.ResourceID,
		Date: req.Date, Start: req.Start, End: req.End, Status: "ACTIVE",
		CreatedAt: now, UpdatedAt: now,
	}, nil
}

func doRequest(h *Handler, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if user != "" {
		req = req.WithContext(middleware.WithUser(req.Context(), user, false))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.Discard())

	rec := doRequest(h, "alice", `{"resourceId":"cam1","date":"2024-05-02","start":"10:00","end":"11:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "5f0c", resp.ID)
	assert.Equal(t, "alice", resp.Requester)
	assert.Equal(t, "cam1", resp.ResourceID)
	assert.Equal(t, "10:00", resp.Start)
	assert.Equal(t, "ACTIVE", resp.Status)
	assert.Equal(t, "alice", uc.got.Requester)
}

func TestHandle_RequesterFromBodyRejected(t *testing.T) {
	h := NewHandler(&stubUseCase{}, logger.Discard())
	rec := doRequest(h, "alice", `{"requester":"bob","resourceId":"cam1","date":"2024-05-02","start":"10:00","end":"11:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		user       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthenticated", "", `{}`, nil, http.StatusUnauthorized, handlers.CodeUnauthorized},
		{"malformed body", "alice", `{`, nil, http.StatusBadRequest, handlers.CodeValidationError},
		{"invalid input", "alice", `{}`, fmt.Errorf("%w: date", createReservation.ErrInvalidInput), http.StatusBadRequest, handlers.CodeValidationError},
		{"unknown resource", "alice", `{}`, createReservation.ErrUnknownResource, http.StatusBadRequest, handlers.CodeValidationError},
		{"outside hours", "alice", `{}`, createReservation.ErrOutsideOpeningHours, http.StatusBadRequest, handlers.CodeValidationError},
		{"conflict", "alice", `{}`, createReservation.ErrConflict, http.StatusConflict, handlers.CodeConflict},
		{"internal", "alice", `{}`, errors.New("boom"), http.StatusInternalServerError, handlers.CodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.Discard())
			rec := doRequest(h, tt.user, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error)
		})
	}
}
