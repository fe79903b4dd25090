package models

import "time"

// MaxSlotsPerDate caps how many slots a mentor may publish for a single date.
const MaxSlotsPerDate = 5

// DateLayout is the calendar date format used everywhere ("2006-01-02").
const DateLayout = "2006-01-02"

// TimeSlot is a same-day wall-clock window in HH:mm.
type TimeSlot struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}

// Key identifies the slot within a date.
func (s TimeSlot) Key() string {
	return s.StartTime + "-" + s.EndTime
}

// DateSchedule is the set of slots a mentor offers on one date, sorted by start time.
type DateSchedule struct {
	MentorID  string     `bson:"mentorId" json:"mentorId"`
	Date      string     `bson:"date" json:"date"`
	TimeSlots []TimeSlot `bson:"timeSlots" json:"timeSlots"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// HasSlot reports whether slot is published in this schedule.
func (d DateSchedule) HasSlot(slot TimeSlot) bool {
	for _, s := range d.TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// MentorAvailability is every published date of a single mentor, ascending by date.
type MentorAvailability struct {
	MentorID  string         `json:"mentorId"`
	Schedules []DateSchedule `json:"schedules"`
}

// PublishAvailabilityInput is the body of a schedule publish call.
type PublishAvailabilityInput struct {
	TimeSlots []TimeSlot `json:"timeSlots"`
}
