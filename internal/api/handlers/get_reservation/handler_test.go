package get_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type stubService struct {
	resp *models.ReservationResponse
	err  error
}

func (s stubService) GetByID(context.Context, string, string, bool) (*models.ReservationResponse, error) {
	return s.resp, s.err
}

func serve(svc ReservationService, user string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/reservations/{id}", NewHandler(svc, logger.Discard()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/r1", nil)
	if user != "" {
		req = req.WithContext(middleware.WithUser(req.Context(), user, false))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	cancelledAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := stubService{resp: &models.ReservationResponse{
		ID: "r1", Requester: "alice", ResourceID: "cam1",
		Date: "2024-05-02", Start: "10:00", End: "11:00",
		Status: "CANCELLED", CancelledAt: &cancelledAt,
	}}

	rec := serve(svc, "alice")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CANCELLED", resp.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, "2024-05-01T10:00:00Z", *resp.CancelledAt)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(stubService{err: reservations.ErrReservationNotFound}, "alice").Code)
	assert.Equal(t, http.StatusForbidden, serve(stubService{err: reservations.ErrAccessDenied}, "bob").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(stubService{err: reservations.ErrInternal}, "alice").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(stubService{}, "").Code)
}
