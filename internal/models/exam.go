package models

import "time"

// Exam is a scheduled examination session at a center.
type Exam struct {
	No               int64     `db:"no" json:"examNo"`
	CenterNo         int64     `db:"center_no" json:"centerNo"`
	Name             string    `db:"name" json:"name"`
	Date             time.Time `db:"exam_date" json:"examDate"`
	Capacity         int       `db:"capacity" json:"capacity"`
	RunningDirectors int       `db:"running_directors" json:"runningDirectors"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// Director is a proctor affiliated with a center.
type Director struct {
	No       int64  `db:"no" json:"directorNo"`
	LoginID  string `db:"login_id" json:"id"`
	Name     string `db:"name" json:"name"`
	CenterNo int64  `db:"center_no" json:"centerNo"`
	Email    string `db:"email" json:"email"`
	Phone    string `db:"phone" json:"phone"`
}

// AssignmentStatus tracks the lifecycle of a director's request to
// supervise an exam: none -> requested -> {approved, rejected}.
type AssignmentStatus string

const (
	AssignmentRequested AssignmentStatus = "REQUESTED"
	AssignmentApproved  AssignmentStatus = "APPROVED"
	AssignmentRejected  AssignmentStatus = "REJECTED"
)

// ExamDirector is the per-exam assignment request row. One row exists per
// (exam_no, director_no); re-requests must not create duplicates.
type ExamDirector struct {
	No         int64            `db:"no" json:"no"`
	ExamNo     int64            `db:"exam_no" json:"examNo"`
	DirectorNo int64            `db:"director_no" json:"directorNo"`
	Status     AssignmentStatus `db:"status" json:"status"`
	CreatedAt  time.Time        `db:"created_at" json:"createdAt"`
}

// DirectorAttendance is a per-exam check-in record with the geospatial and
// device fields reported by the mobile client.
type DirectorAttendance struct {
	ID         string    `db:"id" json:"id"`
	ExamNo     int64     `db:"exam_no" json:"examNo"`
	DirectorNo int64     `db:"director_no" json:"directorNo"`
	Latitude   float64   `db:"latitude" json:"latitude"`
	Longitude  float64   `db:"longitude" json:"longitude"`
	Device     string    `db:"device" json:"device"`
	CheckedAt  time.Time `db:"checked_at" json:"checkedAt"`
}
