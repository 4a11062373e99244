package list_resources

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

type Handler struct {
	catalog ResourceCatalog
	policy  PolicyEngine
}

func NewHandler(catalog ResourceCatalog, policy PolicyEngine) *Handler {
	return &Handler{
		catalog: catalog,
		policy:  policy,
	}
}

// Handle GET /api/v1/resources
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, fromDomain(h.catalog.All(), h.policy.OpeningHours(), h.policy.LockThresholdMinutes()))
}
