package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// Interval is a half-open [Start, End) window within a day
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// DurationMinutes returns the length of the interval
func (i Interval) DurationMinutes() int {
	return i.End.MustMinutes() - i.Start.MustMinutes()
}

// FreeInterval represents a gap in the schedule available for booking
type FreeInterval struct {
	Interval
	Bookable bool // false when the whole gap already falls inside the lock window
}
