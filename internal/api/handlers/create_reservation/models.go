package create_reservation

import (
	"strings"
	"time"

	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model.
// Автор бронирования берётся из аутентификации, а не из тела.
type CreateReservationRequest struct {
	ResourceID string `json:"resourceId"`
	Date       string `json:"date"`  // "2024-05-02"
	Start      string `json:"start"` // "10:00"
	End        string `json:"end"`   // "11:30"
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

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат полей проверяет use case.
func (r *CreateReservationRequest) ToUseCaseRequest(requester string) *createReservation.Request {
	return &createReservation.Request{
		Requester:  requester,
		ResourceID: strings.TrimSpace(r.ResourceID),
		Date:       types.DateString(strings.TrimSpace(r.Date)),
		Start:      types.TimeString(strings.TrimSpace(r.Start)),
		End:        types.TimeString(strings.TrimSpace(r.End)),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
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
