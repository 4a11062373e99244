package get_availability

import (
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса свободных интервалов
type Request struct {
	ResourceID string // ID ресурса
	Date       string // Дата в формате YYYY-MM-DD
}

// Response модель ответа со свободными интервалами
type Response struct {
	ResourceID string
	Date       types.DateString
	Intervals  []Interval // В порядке возрастания начала
}

// Interval свободное окно внутри часов работы
type Interval struct {
	Start           types.TimeString
	End             types.TimeString
	DurationMinutes int
	Bookable        bool // false, если всё окно уже попало в окно блокировки
}
