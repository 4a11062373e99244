package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец бронирования
	ErrAccessDenied = errors.New("access denied")

	// ErrLocked возвращается при отмене не администратором внутри окна блокировки
	ErrLocked = errors.New("reservation is locked for changes")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
