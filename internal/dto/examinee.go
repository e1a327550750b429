package dto

import (
	"time"

	"github.com/multicampussa/laams-director-api/internal/models"
)

// ExamExamineeItem is one row of the roster listing.
type ExamExamineeItem struct {
	ExamineeNo   int64                 `json:"examineeNo"`
	ExamineeName string                `json:"examineeName"`
	ExamineeCode string                `json:"examineeCode"`
	Attendance   bool                  `json:"attendance"`
	Document     models.DocumentStatus `json:"document"`
}

// ExamExamineeDetail is the per-candidate detail view.
type ExamExamineeDetail struct {
	ExamineeNo         int64                 `json:"examineeNo"`
	ExamineeName       string                `json:"examineeName"`
	ExamineeCode       string                `json:"examineeCode"`
	Attendance         bool                  `json:"attendance"`
	AttendanceTime     *time.Time            `json:"attendanceTime,omitempty"`
	Document           models.DocumentStatus `json:"document"`
	Compensation       bool                  `json:"compensation"`
	CompensationType   string                `json:"compensationType"`
	CompensationReason string                `json:"compensationReason"`
	ImageURL           string                `json:"imageUrl"`
	ImageReason        string                `json:"imageReason"`
}

// CheckAttendance is returned after an attendance check.
type CheckAttendance struct {
	ExamineeNo     int64      `json:"examineeNo"`
	ExamineeName   string     `json:"examineeName"`
	Attendance     bool       `json:"attendance"`
	AttendanceTime *time.Time `json:"attendanceTime"`
}

// DocumentRequest sets the document submission state of an examinee.
type DocumentRequest struct {
	Document models.DocumentStatus `json:"document" validate:"required"`
}

// CheckDocument is returned after a document check.
type CheckDocument struct {
	ExamineeNo   int64                 `json:"examineeNo"`
	ExamineeName string                `json:"examineeName"`
	Document     models.DocumentStatus `json:"document"`
}

// CompensationApplyRequest files a compensation claim for an examinee.
type CompensationApplyRequest struct {
	CompensationType   string `json:"compensationType" validate:"required"`
	CompensationReason string `json:"compensationReason" validate:"required"`
}
