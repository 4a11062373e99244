package update_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	updateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgLocked             = "бронирование нельзя изменить: до начала осталось слишком мало времени"
	msgUnknownResource    = "неизвестный ресурс"
	msgOutsideHours       = "время бронирования вне рабочих часов"
	msgConflict           = "ресурс уже забронирован на это время"
	msgInvalidInput       = "не заполнены или некорректны поля resourceId, date, start, end"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	isAdmin := middleware.IsAdminFromContext(r.Context())
	id := mux.Vars(r)["id"]

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id, user, isAdmin))
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrNotFound):
			h.logger.Warn("PUT /reservations/{id} - Not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrForbidden):
			h.logger.Warn("PUT /reservations/{id} - Access denied: id=%s, user=%s", id, user)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateReservation.ErrLocked):
			h.logger.Warn("PUT /reservations/{id} - Locked: id=%s", id)
			handlers.RespondLocked(w, msgLocked)

		case errors.Is(err, updateReservation.ErrConflict):
			h.logger.Warn("PUT /reservations/{id} - Conflict: id=%s, resource=%s, date=%s %s-%s",
				id, req.ResourceID, req.Date, req.Start, req.End)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, updateReservation.ErrUnknownResource):
			handlers.RespondBadRequest(w, msgUnknownResource)

		case errors.Is(err, updateReservation.ErrOutsideOpeningHours):
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated: id=%s, user=%s, admin=%t", id, user, isAdmin)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
