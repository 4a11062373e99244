package events

import "errors"

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации публикатора
	ErrInvalidConfig = errors.New("events: invalid publisher config")

	// ErrPublish возвращается, когда событие не удалось отправить
	ErrPublish = errors.New("events: failed to publish event")
)
