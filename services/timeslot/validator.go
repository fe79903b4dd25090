// Package timeslot validates wall-clock slots and detects overlaps between them.
package timeslot

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"mentorbook/models"
)

var (
	ErrInvalidFormat = errors.New("time must be in HH:mm format (00:00-23:59)")
	ErrInvalidOrder  = errors.New("end time must be after start time")
	ErrInvalidDate   = errors.New("date must be in YYYY-MM-DD format")
)

// Single-digit hours are tolerated on input and normalised to HH:mm.
var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock converts "HH:mm" into minutes after midnight.
func ParseClock(value string) (int, error) {
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, fmt.Errorf("%q: %w", value, ErrInvalidFormat)
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm, nil
}

// FormatClock renders minutes after midnight as "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Normalize validates slot and returns it with both ends in canonical HH:mm.
func Normalize(slot models.TimeSlot) (models.TimeSlot, error) {
	start, end, err := bounds(slot)
	if err != nil {
		return models.TimeSlot{}, err
	}
	return models.TimeSlot{StartTime: FormatClock(start), EndTime: FormatClock(end)}, nil
}

// ValidateSlot checks both ends are well formed and end is strictly after start.
func ValidateSlot(slot models.TimeSlot) error {
	_, _, err := bounds(slot)
	return err
}

func bounds(slot models.TimeSlot) (int, int, error) {
	start, err := ParseClock(slot.StartTime)
	if err != nil {
		return 0, 0, fmt.Errorf("startTime %w", err)
	}
	end, err := ParseClock(slot.EndTime)
	if err != nil {
		return 0, 0, fmt.Errorf("endTime %w", err)
	}
	if end <= start {
		return 0, 0, ErrInvalidOrder
	}
	return start, end, nil
}

// Overlaps is the half-open interval test: touching slots do not overlap.
// Both slots must already be valid.
func Overlaps(a, b models.TimeSlot) bool {
	aStart, aEnd, _ := bounds(a)
	bStart, bEnd, _ := bounds(b)
	return aStart < bEnd && bStart < aEnd
}

// HasInternalOverlap reports whether any two slots in the set overlap.
// After sorting by start only neighbours need comparing.
func HasInternalOverlap(slots []models.TimeSlot) bool {
	_, _, found := FirstOverlap(slots)
	return found
}

// FirstOverlap returns the first conflicting neighbour pair in start order.
func FirstOverlap(slots []models.TimeSlot) (models.TimeSlot, models.TimeSlot, bool) {
	sorted := Sorted(slots)
	for i := 1; i < len(sorted); i++ {
		if Overlaps(sorted[i-1], sorted[i]) {
			return sorted[i-1], sorted[i], true
		}
	}
	return models.TimeSlot{}, models.TimeSlot{}, false
}

// Sorted returns a copy of slots ordered by start, then end.
func Sorted(slots []models.TimeSlot) []models.TimeSlot {
	out := make([]models.TimeSlot, len(slots))
	copy(out, slots)
	sort.SliceStable(out, func(i, j int) bool {
		si, ei, _ := bounds(out[i])
		sj, ej, _ := bounds(out[j])
		if si != sj {
			return si < sj
		}
		return ei < ej
	})
	return out
}

// Duration is the length of a valid slot.
func Duration(slot models.TimeSlot) time.Duration {
	start, end, err := bounds(slot)
	if err != nil {
		return 0
	}
	return time.Duration(end-start) * time.Minute
}

// ParseDate parses a calendar date in YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", value, ErrInvalidDate)
	}
	return d, nil
}

// Today returns the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(models.DateLayout)
}
