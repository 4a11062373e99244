package get_availability

import "errors"

var (
	// ErrUnknownResource возвращается, когда ресурса нет в справочнике
	ErrUnknownResource = errors.New("unknown resource")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
