package domain

// Default policy values
const (
	DefaultOpeningStart         = "08:00"
	DefaultOpeningEnd           = "18:00"
	DefaultLockThresholdMinutes = 60
)

// Business validation constants
const (
	MaxRequesterLength  = 255
	MaxResourceIDLength = 64
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
