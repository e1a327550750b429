package dto

// AssignmentRequest asks for the caller to be assigned to an exam.
// The pointer distinguishes a missing examNo key from zero.
type AssignmentRequest struct {
	ExamNo *int64 `json:"examNo" validate:"required"`
}
