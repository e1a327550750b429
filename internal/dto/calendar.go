package dto

import "time"

// CalendarPeriod is the validated year/month/day triple for calendar
// queries. Day 0 selects the whole month.
type CalendarPeriod struct {
	Year  int
	Month int
	Day   int
}

// ExamCalendarItem is one entry of a calendar listing.
type ExamCalendarItem struct {
	ExamNo           int64     `json:"examNo" db:"no"`
	Name             string    `json:"name" db:"name"`
	ExamDate         time.Time `json:"examDate" db:"exam_date"`
	CenterNo         int64     `json:"centerNo" db:"center_no"`
	Capacity         int       `json:"capacity" db:"capacity"`
	ConfirmDirectors int       `json:"confirmDirectors" db:"confirm_directors"`
}
