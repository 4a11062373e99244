package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Custom tags
const (
	TagDate  = "reservation_date"
	TagClock = "clock_time"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// RequestValidator проверяет входные модели use case по struct-тегам
type RequestValidator struct {
	validate *validator.Validate
}

func New() (*RequestValidator, error) {
	v := validator.New()

	if err := v.RegisterValidation(TagDate, validateDate); err != nil {
		return nil, fmt.Errorf("register %q validator: %w", TagDate, err)
	}
	if err := v.RegisterValidation(TagClock, validateClock); err != nil {
		return nil, fmt.Errorf("register %q validator: %w", TagClock, err)
	}

	return &RequestValidator{validate: v}, nil
}

// MustNew как New, но паникует при ошибке регистрации тегов
func MustNew() *RequestValidator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

func validateDate(fl validator.FieldLevel) bool {
	return types.DateString(fl.Field().String()).Validate() == nil
}

func validateClock(fl validator.FieldLevel) bool {
	return types.TimeString(fl.Field().String()).Validate() == nil
}

// Validate возвращает ValidationErrors для некорректной структуры
func (v *RequestValidator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	validationErrors := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case TagDate:
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case TagClock:
			message = fmt.Sprintf("%s must be a time in HH:MM format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
