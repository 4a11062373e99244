package get_availability

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// validateRequest проверяет ресурс и дату, возвращает разобранную дату
func (uc *UseCase) validateRequest(req *Request) (types.DateString, error) {
	resourceID := strings.TrimSpace(req.ResourceID)
	if resourceID == "" {
		return "", fmt.Errorf("%w: resource id is required", ErrInvalidInput)
	}
	if !uc.catalog.Contains(resourceID) {
		return "", fmt.Errorf("%w: %s", ErrUnknownResource, resourceID)
	}

	date, err := types.NewDateStringFromString(req.Date)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	return date, nil
}
