package dto

import "time"

// DirectorAttendanceRequest carries the check-in evidence reported by the
// client when a director arrives at a center.
type DirectorAttendanceRequest struct {
	Latitude  float64 `json:"latitude" validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
	Device    string  `json:"device"`
}

// DirectorAttendanceResponse is the stored check-in record.
type DirectorAttendanceResponse struct {
	ExamNo     int64     `json:"examNo"`
	DirectorNo int64     `json:"directorNo"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Device     string    `json:"device"`
	CheckedAt  time.Time `json:"checkedAt"`
}
