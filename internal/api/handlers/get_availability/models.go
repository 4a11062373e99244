package get_availability

import (
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ResourceID string         `json:"resourceId"`
	Date       string         `json:"date"`
	Intervals  []IntervalItem `json:"intervals"`
}

// IntervalItem свободное окно
type IntervalItem struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"durationMinutes"`
	Bookable        bool   `json:"bookable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	items := make([]IntervalItem, 0, len(resp.Intervals))
	for _, i := range resp.Intervals {
		items = append(items, IntervalItem{
			Start:           i.Start.String(),
			End:             i.End.String(),
			DurationMinutes: i.DurationMinutes,
			Bookable:        i.Bookable,
		})
	}
	return &AvailabilityResponse{
		ResourceID: resp.ResourceID,
		Date:       resp.Date.String(),
		Intervals:  items,
	}
}
