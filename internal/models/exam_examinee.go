package models

import "time"

// DocumentStatus is the submission state of an examinee's supporting
// documents. The Korean values are part of the wire contract.
type DocumentStatus string

const (
	DocumentAwaiting  DocumentStatus = "서류_제출_대기"
	DocumentSubmitted DocumentStatus = "서류_제출_완료"
	DocumentMissing   DocumentStatus = "서류_미제출"
)

// Valid reports whether the value belongs to the closed status set.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentAwaiting, DocumentSubmitted, DocumentMissing:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
// The document state machine only moves forward: awaiting may become
// submitted or missing, and both of those are final.
func (s DocumentStatus) Terminal() bool {
	return s == DocumentSubmitted || s == DocumentMissing
}

// Examinee is a registered exam candidate.
type Examinee struct {
	No    int64  `db:"no" json:"examineeNo"`
	Name  string `db:"name" json:"name"`
	Birth string `db:"birth" json:"birth"`
	Phone string `db:"phone" json:"phone"`
}

// ExamExaminee joins an examinee to an exam and carries the per-candidate
// state the director endpoints mutate.
type ExamExaminee struct {
	No                 int64          `db:"no" json:"no"`
	ExamNo             int64          `db:"exam_no" json:"examNo"`
	ExamineeNo         int64          `db:"examinee_no" json:"examineeNo"`
	ExamineeName       string         `db:"examinee_name" json:"examineeName"`
	ExamineeCode       string         `db:"examinee_code" json:"examineeCode"`
	Attendance         bool           `db:"attendance" json:"attendance"`
	AttendanceTime     *time.Time     `db:"attendance_time" json:"attendanceTime,omitempty"`
	Document           DocumentStatus `db:"document" json:"document"`
	Compensation       bool           `db:"compensation" json:"compensation"`
	CompensationType   string         `db:"compensation_type" json:"compensationType"`
	CompensationReason string         `db:"compensation_reason" json:"compensationReason"`
	ImageURL           string         `db:"image_url" json:"imageUrl"`
	ImageReason        string         `db:"image_reason" json:"imageReason"`
}
