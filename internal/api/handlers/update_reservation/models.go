package update_reservation

import (
	"strings"
	"time"

	updateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// UpdateReservationRequest HTTP request model, полная замена окна бронирования
type UpdateReservationRequest struct {
	ResourceID string `json:"resourceId"`
	Date       string `json:"date"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         string `json:"id"`
	Requester  string `json:"requester"`
	ResourceID string `json:"resourceId"`
	Date       string `json:"date"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(id, actor string, asAdmin bool) *updateReservation.Request {
	return &updateReservation.Request{
		ID:         id,
		Actor:      actor,
		AsAdmin:    asAdmin,
		ResourceID: strings.TrimSpace(r.ResourceID),
		Date:       types.DateString(strings.TrimSpace(r.Date)),
		Start:      types.TimeString(strings.TrimSpace(r.Start)),
		End:        types.TimeString(strings.TrimSpace(r.End)),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:         resp.ID,
		Requester:  resp.Requester,
		ResourceID: resp.ResourceID,
		Date:       resp.Date.String(),
		Start:      resp.Start.String(),
		End:        resp.End.String(),
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
