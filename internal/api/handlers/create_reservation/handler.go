package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgUnknownResource    = "неизвестный ресурс"
	msgOutsideHours       = "время бронирования вне рабочих часов"
	msgConflict           = "ресурс уже забронирован на это время"
	msgInvalidInput       = "не заполнены или некорректны поля resourceId, date, start, end"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(user))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrConflict):
			h.logger.Warn("POST /reservations - Conflict: user=%s, resource=%s, date=%s %s-%s",
				user, req.ResourceID, req.Date, req.Start, req.End)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createReservation.ErrUnknownResource):
			h.logger.Warn("POST /reservations - Unknown resource: %s", req.ResourceID)
			handlers.RespondBadRequest(w, msgUnknownResource)

		case errors.Is(err, createReservation.ErrOutsideOpeningHours):
			h.logger.Warn("POST /reservations - Outside opening hours: %s-%s", req.Start, req.End)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user=%s, error=%v", user, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%s, user=%s", result.ID, user)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
