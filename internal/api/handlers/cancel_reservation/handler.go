package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

const (
	msgUnauthorized = "пользователь не аутентифицирован"
	msgNotFound     = "бронирование не найдено"
	msgForbidden    = "доступ запрещен"
	msgAdminOnly    = "операция доступна только администратору"
	msgLocked       = "бронирование нельзя отменить: до начала осталось слишком мало времени"
)

type Handler struct {
	service    ReservationService
	adminRoute bool
	logger     Logger
}

// NewHandler создает обработчик отмены.
// adminRoute включает отмену любого бронирования без учёта окна блокировки.
func NewHandler(service ReservationService, adminRoute bool, logger Logger) *Handler {
	return &Handler{
		service:    service,
		adminRoute: adminRoute,
		logger:     logger,
	}
}

// Handle DELETE /api/v1/reservations/{id} и DELETE /api/v1/reservations/{id}/any
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	if h.adminRoute && !middleware.IsAdminFromContext(r.Context()) {
		h.logger.Warn("DELETE /reservations/{id}/any - Not an admin: user=%s", user)
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	err := h.service.Cancel(r.Context(), &models.CancelRequest{
		ID:      id,
		Actor:   user,
		AsAdmin: h.adminRoute,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("DELETE /reservations/{id} - Access denied: id=%s, user=%s", id, user)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrLocked):
			h.logger.Warn("DELETE /reservations/{id} - Locked: id=%s", id)
			handlers.RespondLocked(w, msgLocked)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel reservation: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation cancelled: id=%s, user=%s, admin=%t", id, user, h.adminRoute)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
