package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных или неполных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrUnknownResource возвращается, когда ресурса нет в каталоге
	ErrUnknownResource = errors.New("create_reservation: unknown resource")

	// ErrOutsideOpeningHours возвращается, когда окно выходит за рабочие часы или пустое
	ErrOutsideOpeningHours = errors.New("create_reservation: time window is outside opening hours")

	// ErrConflict возвращается, когда окно пересекается с активным бронированием
	ErrConflict = errors.New("create_reservation: overlapping reservation exists")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
