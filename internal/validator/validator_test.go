package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type sample struct {
	Requester string           `validate:"required,max=10"`
	Date      types.DateString `validate:"required,reservation_date"`
	Start     types.TimeString `validate:"required,clock_time"`
}

func TestRequestValidator_Validate(t *testing.T) {
	v := MustNew()

	assert.NoError(t, v.Validate(&sample{Requester: "alice", Date: "2024-05-01", Start: "09:00"}))

	err := v.Validate(&sample{Requester: "", Date: "01-05-2024", Start: "9am"})
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 3)
	assert.Equal(t, ValidationError{Field: "Requester", Message: "Requester is required"}, verrs[0])
	assert.Equal(t, "Date must be a date in YYYY-MM-DD format", verrs[1].Message)
	assert.Equal(t, "Start must be a time in HH:MM format", verrs[2].Message)
	assert.Contains(t, err.Error(), "3 error(s)")
}

func TestRequestValidator_MaxLength(t *testing.T) {
	v := MustNew()

	err := v.Validate(&sample{Requester: "a-very-long-name", Date: "2024-05-01", Start: "09:00"})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Requester must be at most 10 characters", verrs[0].Message)
}

func TestRequestValidator_ImpossibleDate(t *testing.T) {
	v := MustNew()
	assert.Error(t, v.Validate(&sample{Requester: "alice", Date: "2024-02-30", Start: "09:00"}))
}
