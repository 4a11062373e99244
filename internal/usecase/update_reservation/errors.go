package update_reservation

import "errors"

var (
	// ErrNotFound возвращается, когда активное бронирование не найдено
	ErrNotFound = errors.New("update_reservation: reservation not found")

	// ErrForbidden возвращается, когда бронирование изменяет не владелец
	ErrForbidden = errors.New("update_reservation: reservation belongs to another requester")

	// ErrLocked возвращается, когда до начала бронирования осталось меньше порога блокировки
	ErrLocked = errors.New("update_reservation: reservation is locked for changes")

	// ErrInvalidInput возвращается при некорректных или неполных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrUnknownResource возвращается, когда ресурса нет в каталоге
	ErrUnknownResource = errors.New("update_reservation: unknown resource")

	// ErrOutsideOpeningHours возвращается, когда окно выходит за рабочие часы или пустое
	ErrOutsideOpeningHours = errors.New("update_reservation: time window is outside opening hours")

	// ErrConflict возвращается, когда новое окно пересекается с другим активным бронированием
	ErrConflict = errors.New("update_reservation: overlapping reservation exists")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
