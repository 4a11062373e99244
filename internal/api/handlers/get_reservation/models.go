package get_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          string  `json:"id"`
	Requester   string  `json:"requester"`
	ResourceID  string  `json:"resourceId"`
	Date        string  `json:"date"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	CancelledAt *string `json:"cancelledAt,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(r *models.ReservationResponse) *ReservationResponse {
	resp := &ReservationResponse{
		ID:         r.ID,
		Requester:  r.Requester,
		ResourceID: r.ResourceID,
		Date:       r.Date.String(),
		Start:      r.Start.String(),
		End:        r.End.String(),
		Status:     r.Status,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  r.UpdatedAt.Format(time.RFC3339),
	}
	if r.CancelledAt != nil {
		cancelledAt := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}
	return resp
}
