// Package policy decides whether a reservation window is admissible,
// whether two reservations collide and whether a reservation is frozen
// against changes. It performs no I/O.
package policy

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ErrInvalidConfig returned by NewEngine for an inconsistent configuration
var ErrInvalidConfig = errors.New("policy: invalid configuration")

type Config struct {
	OpeningStart         types.TimeString
	OpeningEnd           types.TimeString
	LockThresholdMinutes int
	Location             *time.Location // nil means time.Local
}

// Engine evaluates reservation rules for a fixed opening window and lock threshold
type Engine struct {
	openingStart  int
	openingEnd    int
	lockThreshold int
	loc           *time.Location
}

func NewEngine(cfg Config) (*Engine, error) {
	start, err := cfg.OpeningStart.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: opening start: %v", ErrInvalidConfig, err)
	}
	end, err := cfg.OpeningEnd.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: opening end: %v", ErrInvalidConfig, err)
	}
	if start >= end {
		return nil, fmt.Errorf("%w: opening start %s is not before end %s", ErrInvalidConfig, cfg.OpeningStart, cfg.OpeningEnd)
	}
	if cfg.LockThresholdMinutes < 0 {
		return nil, fmt.Errorf("%w: negative lock threshold", ErrInvalidConfig)
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	return &Engine{
		openingStart:  start,
		openingEnd:    end,
		lockThreshold: cfg.LockThresholdMinutes,
		loc:           loc,
	}, nil
}

// OpeningHours returns the bookable window of a day
func (e *Engine) OpeningHours() domain.Interval {
	start, _ := types.NewTimeStringFromMinutes(e.openingStart)
	end, _ := types.NewTimeStringFromMinutes(e.openingEnd)
	return domain.Interval{Start: start, End: end}
}

func (e *Engine) LockThresholdMinutes() int {
	return e.lockThreshold
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// IsWithinOpeningHours reports whether [start, end) is a non-empty window inside opening hours.
// Both boundaries are inclusive: a reservation may start at opening and end at closing.
func (e *Engine) IsWithinOpeningHours(start, end types.TimeString) bool {
	s, err := start.Minutes()
	if err != nil {
		return false
	}
	en, err := end.Minutes()
	if err != nil {
		return false
	}
	return s >= e.openingStart && en <= e.openingEnd && en > s
}

// IsLocked reports whether r is too close to its start to be changed by its owner.
// The distance is floored to whole minutes, so anything that already started is locked.
func (e *Engine) IsLocked(r *domain.Reservation, now time.Time) bool {
	return e.IsStartLocked(r.Date, r.Start, now)
}

// IsStartLocked is IsLocked for a start that is not stored yet
func (e *Engine) IsStartLocked(date types.DateString, start types.TimeString, now time.Time) bool {
	minutes, err := e.MinutesUntilStart(date, start, now)
	if err != nil {
		// unparsable start cannot be proven to be far enough away
		return true
	}
	return minutes < e.lockThreshold
}

// MinutesUntilStart returns floor((start - now) / 1m) in the engine's location
func (e *Engine) MinutesUntilStart(date types.DateString, start types.TimeString, now time.Time) (int, error) {
	startAt, err := date.At(start, e.loc)
	if err != nil {
		return 0, err
	}
	return int(math.Floor(startAt.Sub(now).Minutes())), nil
}

// Overlaps reports whether a and b claim the same resource on the same date
// with intersecting half-open intervals. Back-to-back reservations do not overlap.
func Overlaps(a, b *domain.Reservation) bool {
	if a.ResourceID != b.ResourceID || a.Date != b.Date {
		return false
	}
	return IntervalsOverlap(
		domain.Interval{Start: a.Start, End: a.End},
		domain.Interval{Start: b.Start, End: b.End},
	)
}

// IntervalsOverlap reports whether two [start, end) windows intersect
func IntervalsOverlap(a, b domain.Interval) bool {
	return a.Start.IsBefore(b.End) && b.Start.IsBefore(a.End)
}

// FindConflict returns the first reservation in existing that overlaps candidate,
// skipping the candidate itself and cancelled entries
func FindConflict(candidate *domain.Reservation, existing []*domain.Reservation) *domain.Reservation {
	for _, other := range existing {
		if other == nil || !other.IsActive() {
			continue
		}
		if candidate.ID != "" && other.ID == candidate.ID {
			continue
		}
		if Overlaps(candidate, other) {
			return other
		}
	}
	return nil
}

// FreeIntervals returns the parts of opening hours not covered by busy, in order
func (e *Engine) FreeIntervals(busy []domain.Interval) []domain.Interval {
	type span struct{ start, end int }

	spans := make([]span, 0, len(busy))
	for _, b := range busy {
		s, err := b.Start.Minutes()
		if err != nil {
			continue
		}
		en, err := b.End.Minutes()
		if err != nil {
			continue
		}
		s = max(s, e.openingStart)
		en = min(en, e.openingEnd)
		if en > s {
			spans = append(spans, span{s, en})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var free []domain.Interval
	cursor := e.openingStart
	for _, sp := range spans {
		if sp.start > cursor {
			free = append(free, minutesInterval(cursor, sp.start))
		}
		cursor = max(cursor, sp.end)
	}
	if cursor < e.openingEnd {
		free = append(free, minutesInterval(cursor, e.openingEnd))
	}

	return free
}

func minutesInterval(start, end int) domain.Interval {
	s, _ := types.NewTimeStringFromMinutes(start)
	en, _ := types.NewTimeStringFromMinutes(end)
	return domain.Interval{Start: s, End: en}
}
