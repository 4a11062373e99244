package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/health"
	listReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_reservations"
	listResourcesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_resources"
	updateReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

// Dependencies всё, что нужно для сборки роутера
type Dependencies struct {
	CreateReservation createReservationHandler.CreateReservationUseCase
	UpdateReservation updateReservationHandler.UpdateReservationUseCase
	GetAvailability   getAvailabilityHandler.GetAvailabilityUseCase
	Reservations      ReservationService
	Catalog           listResourcesHandler.ResourceCatalog
	Policy            listResourcesHandler.PolicyEngine
	DB                health.Pinger // nil для хранилища в памяти

	UserHeader string
	Admins     middleware.AdminResolver

	Metrics     *metrics.Metrics // nil, если метрики выключены
	MetricsPath string

	Logger middleware.Logger
}

// ReservationService чтение и отмена бронирований
type ReservationService interface {
	cancelReservationHandler.ReservationService
	getReservationHandler.ReservationService
	listReservationsHandler.ReservationService
}

// NewRouter собирает маршруты API
func NewRouter(d Dependencies) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(d.Logger))

	if d.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(d.Metrics))
		r.Handle(d.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/api/health", health.NewHandler(d.DB, d.Logger).Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/resources", listResourcesHandler.NewHandler(d.Catalog, d.Policy).Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/availability",
		getAvailabilityHandler.NewHandler(d.GetAvailability, d.Logger).Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют заголовок пользователя)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(d.UserHeader, d.Admins, d.Logger))

	protected.HandleFunc("/reservations",
		listReservationsHandler.NewHandler(d.Reservations, d.Logger).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations",
		createReservationHandler.NewHandler(d.CreateReservation, d.Logger).Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{id}",
		getReservationHandler.NewHandler(d.Reservations, d.Logger).Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id}",
		updateReservationHandler.NewHandler(d.UpdateReservation, d.Logger).Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{id}",
		cancelReservationHandler.NewHandler(d.Reservations, false, d.Logger).Handle).Methods(http.MethodDelete)

	// Отмена любого бронирования администратором, окно блокировки не действует
	protected.HandleFunc("/reservations/{id}/any",
		cancelReservationHandler.NewHandler(d.Reservations, true, d.Logger).Handle).Methods(http.MethodDelete)

	return r
}
