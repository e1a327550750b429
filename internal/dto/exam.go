package dto

import "time"

// ExamInformation aggregates the detail view of one exam.
type ExamInformation struct {
	ExamNo        int64     `json:"examNo"`
	Name          string    `json:"name"`
	ExamDate      time.Time `json:"examDate"`
	CenterNo      int64     `json:"centerNo"`
	Capacity      int       `json:"capacity"`
	TotalExaminee int       `json:"totalExaminee"`
	Directors     []string  `json:"directors"`
}

// ExamStatus summarises per-exam attendance and document progress.
type ExamStatus struct {
	ExamNo            int64 `json:"examNo"`
	TotalExaminee     int   `json:"totalExaminee" db:"total_examinee"`
	AttendedExaminee  int   `json:"attendedExaminee" db:"attended_examinee"`
	SubmittedDocument int   `json:"submittedDocument" db:"submitted_document"`
	MissingDocument   int   `json:"missingDocument" db:"missing_document"`
	Compensated       int   `json:"compensated" db:"compensated"`
}
