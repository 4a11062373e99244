package list_reservations

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// ReservationItem HTTP модель элемента списка
type ReservationItem struct {
	ID         string `json:"id"`
	Requester  string `json:"requester"`
	ResourceID string `json:"resourceId"`
	Date       string `json:"date"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Status     string `json:"status"`
}

// ToServiceRequest собирает фильтр из query параметров
func ToServiceRequest(query url.Values, user string, isAdmin bool) (*models.ListRequest, error) {
	req := &models.ListRequest{
		Actor:   user,
		AsAdmin: isAdmin,
	}

	if v := strings.TrimSpace(query.Get("requester")); v != "" {
		req.Requester = &v
	}
	if v := strings.TrimSpace(query.Get("date")); v != "" {
		req.Date = &v
	}
	if v := strings.TrimSpace(query.Get("resourceId")); v != "" {
		req.ResourceID = &v
	}
	if v := query.Get("includeCancelled"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = include
	}

	return req, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP модели
func FromServiceResponse(resp *models.ReservationListResponse) []ReservationItem {
	items := make([]ReservationItem, 0, len(resp.Reservations))
	for _, r := range resp.Reservations {
		items = append(items, ReservationItem{
			ID:         r.ID,
			Requester:  r.Requester,
			ResourceID: r.ResourceID,
			Date:       r.Date.String(),
			Start:      r.Start.String(),
			End:        r.End.String(),
			Status:     r.Status,
		})
	}
	return items
}
