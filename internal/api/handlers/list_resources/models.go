package list_resources

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// ResourcesResponse каталог ресурсов и правила бронирования
type ResourcesResponse struct {
	OpeningStart         string         `json:"openingStart"`
	OpeningEnd           string         `json:"openingEnd"`
	LockThresholdMinutes int            `json:"lockThresholdMinutes"`
	Resources            []ResourceItem `json:"resources"`
}

// ResourceItem элемент каталога
type ResourceItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func fromDomain(resources []domain.Resource, hours domain.Interval, lockThreshold int) *ResourcesResponse {
	items := make([]ResourceItem, 0, len(resources))
	for _, r := range resources {
		items = append(items, ResourceItem{ID: r.ID, Name: r.Name, Category: r.Category})
	}
	return &ResourcesResponse{
		OpeningStart:         hours.Start.String(),
		OpeningEnd:           hours.End.String(),
		LockThresholdMinutes: lockThreshold,
		Resources:            items,
	}
}
