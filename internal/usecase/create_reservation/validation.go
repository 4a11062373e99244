package create_reservation

import (
	"fmt"
	"strings"
)

// Validator проверка struct-тегов запроса
type Validator interface {
	Validate(s interface{}) error
}

// normalizeRequest убирает пробелы по краям значений
func normalizeRequest(req *Request) {
	req.Requester = strings.TrimSpace(req.Requester)
	req.ResourceID = strings.TrimSpace(req.ResourceID)
}

// validateRequest проверяет обязательные поля и форматы даты и времени
func (uc *UseCase) validateRequest(req *Request) error {
	if err := uc.validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !uc.catalog.Contains(req.ResourceID) {
		return fmt.Errorf("%w: %s", ErrUnknownResource, req.ResourceID)
	}

	if !uc.policy.IsWithinOpeningHours(req.Start, req.End) {
		return fmt.Errorf("%w: %s-%s", ErrOutsideOpeningHours, req.Start, req.End)
	}

	return nil
}
