package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/multicampussa/laams-director-api/internal/dto"
	"github.com/multicampussa/laams-director-api/internal/models"
)

// ExamExamineeRepository manages the per-candidate enrollment rows.
type ExamExamineeRepository struct {
	db *sqlx.DB
}

// NewExamExamineeRepository constructs an ExamExamineeRepository.
func NewExamExamineeRepository(db *sqlx.DB) *ExamExamineeRepository {
	return &ExamExamineeRepository{db: db}
}

const examExamineeColumns = `ee.no, ee.exam_no, ee.examinee_no, x.name AS examinee_name, ee.examinee_code,
	ee.attendance, ee.attendance_time, ee.document, ee.compensation,
	COALESCE(ee.compensation_type, '') AS compensation_type,
	COALESCE(ee.compensation_reason, '') AS compensation_reason,
	COALESCE(ee.image_url, '') AS image_url,
	COALESCE(ee.image_reason, '') AS image_reason`

// ListByExam returns the roster of an exam ordered by examinee code.
func (r *ExamExamineeRepository) ListByExam(ctx context.Context, examNo int64) ([]models.ExamExaminee, error) {
	query := fmt.Sprintf(`SELECT %s FROM exam_examinee ee JOIN examinee x ON x.no = ee.examinee_no WHERE ee.exam_no = $1 ORDER BY ee.examinee_code`, examExamineeColumns)
	rows := make([]models.ExamExaminee, 0)
	if err := r.db.SelectContext(ctx, &rows, query, examNo); err != nil {
		return nil, fmt.Errorf("list exam examinees: %w", err)
	}
	return rows, nil
}

// FindByExamAndExaminee fetches one enrollment row.
func (r *ExamExamineeRepository) FindByExamAndExaminee(ctx context.Context, examNo, examineeNo int64) (*models.ExamExaminee, error) {
	query := fmt.Sprintf(`SELECT %s FROM exam_examinee ee JOIN examinee x ON x.no = ee.examinee_no WHERE ee.exam_no = $1 AND ee.examinee_no = $2`, examExamineeColumns)
	var row models.ExamExaminee
	if err := r.db.GetContext(ctx, &row, query, examNo, examineeNo); err != nil {
		return nil, err
	}
	return &row, nil
}

// Status aggregates attendance and document progress for an exam.
func (r *ExamExamineeRepository) Status(ctx context.Context, examNo int64) (*dto.ExamStatus, error) {
	const query = `
		SELECT COUNT(*) AS total_examinee,
		       COUNT(*) FILTER (WHERE attendance) AS attended_examinee,
		       COUNT(*) FILTER (WHERE document = '서류_제출_완료') AS submitted_document,
		       COUNT(*) FILTER (WHERE document = '서류_미제출') AS missing_document,
		       COUNT(*) FILTER (WHERE compensation) AS compensated
		FROM exam_examinee WHERE exam_no = $1`
	var status dto.ExamStatus
	if err := r.db.GetContext(ctx, &status, query, examNo); err != nil {
		return nil, fmt.Errorf("aggregate exam status: %w", err)
	}
	status.ExamNo = examNo
	return &status, nil
}

// MarkAttendance flips attendance to true and stamps the time, only when the
// row is still marked absent. It returns the number of rows changed so the
// caller can tell a first check from a repeat.
func (r *ExamExamineeRepository) MarkAttendance(ctx context.Context, examNo, examineeNo int64, at time.Time) (int64, error) {
	const query = `UPDATE exam_examinee SET attendance = TRUE, attendance_time = $3 WHERE exam_no = $1 AND examinee_no = $2 AND attendance = FALSE`
	result, err := r.db.ExecContext(ctx, query, examNo, examineeNo, at)
	if err != nil {
		return 0, fmt.Errorf("mark attendance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark attendance rows: %w", err)
	}
	return affected, nil
}

// UpdateDocument sets the document status of an enrollment row.
func (r *ExamExamineeRepository) UpdateDocument(ctx context.Context, examNo, examineeNo int64, status models.DocumentStatus) error {
	const query = `UPDATE exam_examinee SET document = $3 WHERE exam_no = $1 AND examinee_no = $2`
	if _, err := r.db.ExecContext(ctx, query, examNo, examineeNo, string(status)); err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return nil
}

// ApplyCompensation records a compensation claim on an enrollment row.
func (r *ExamExamineeRepository) ApplyCompensation(ctx context.Context, examNo, examineeNo int64, compensationType, reason string) error {
	const query = `UPDATE exam_examinee SET compensation = TRUE, compensation_type = $3, compensation_reason = $4 WHERE exam_no = $1 AND examinee_no = $2`
	if _, err := r.db.ExecContext(ctx, query, examNo, examineeNo, compensationType, reason); err != nil {
		return fmt.Errorf("apply compensation: %w", err)
	}
	return nil
}

// UpdateImage stores the latest upload URL and its reason. Repeated uploads
// for the same row overwrite, so the most recent write wins.
func (r *ExamExamineeRepository) UpdateImage(ctx context.Context, examNo, examineeNo int64, imageURL, imageReason string) error {
	const query = `UPDATE exam_examinee SET image_url = $3, image_reason = $4 WHERE exam_no = $1 AND examinee_no = $2`
	if _, err := r.db.ExecContext(ctx, query, examNo, examineeNo, imageURL, imageReason); err != nil {
		return fmt.Errorf("update examinee image: %w", err)
	}
	return nil
}
