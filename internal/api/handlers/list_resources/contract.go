package list_resources

import "github.com/m04kA/SMC-ReservationService/internal/domain"

type ResourceCatalog interface {
	All() []domain.Resource
}

// PolicyEngine часы работы и порог блокировки, отдаются вместе с каталогом
type PolicyEngine interface {
	OpeningHours() domain.Interval
	LockThresholdMinutes() int
}
