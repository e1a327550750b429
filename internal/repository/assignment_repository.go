package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/multicampussa/laams-director-api/internal/models"
)

// AssignmentRepository manages exam_director assignment request rows.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Find returns the assignment row for (examNo, directorNo), if any.
func (r *AssignmentRepository) Find(ctx context.Context, examNo, directorNo int64) (*models.ExamDirector, error) {
	const query = `SELECT no, exam_no, director_no, status, created_at FROM exam_director WHERE exam_no = $1 AND director_no = $2`
	var row models.ExamDirector
	if err := r.db.GetContext(ctx, &row, query, examNo, directorNo); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a requested row. The unique (exam_no, director_no)
// constraint makes repeats a no-op, so a concurrent double-submit cannot
// produce duplicates.
func (r *AssignmentRepository) Create(ctx context.Context, examNo, directorNo int64) error {
	const query = `INSERT INTO exam_director (exam_no, director_no, status, created_at) VALUES ($1, $2, 'REQUESTED', $3) ON CONFLICT (exam_no, director_no) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, examNo, directorNo, time.Now().UTC()); err != nil {
		return fmt.Errorf("create assignment request: %w", err)
	}
	return nil
}

// CountActive counts requested plus approved rows for an exam, the number
// that counts against capacity.
func (r *AssignmentRepository) CountActive(ctx context.Context, examNo int64) (int, error) {
	const query = `SELECT COUNT(*) FROM exam_director WHERE exam_no = $1 AND status IN ('REQUESTED','APPROVED')`
	var count int
	if err := r.db.GetContext(ctx, &count, query, examNo); err != nil {
		return 0, fmt.Errorf("count active assignments: %w", err)
	}
	return count, nil
}

// HasApproved reports whether the director holds an approved assignment on
// the exam.
func (r *AssignmentRepository) HasApproved(ctx context.Context, examNo, directorNo int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM exam_director WHERE exam_no = $1 AND director_no = $2 AND status = 'APPROVED')`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, examNo, directorNo); err != nil {
		return false, fmt.Errorf("check approved assignment: %w", err)
	}
	return exists, nil
}

// TodayApprovedExam resolves the exam the director is approved to supervise
// on the given day. Used by the home-screen check-in.
func (r *AssignmentRepository) TodayApprovedExam(ctx context.Context, directorNo int64, day time.Time) (*models.Exam, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	const query = `
		SELECT e.no, e.center_no, e.name, e.exam_date, e.capacity, e.running_directors, e.created_at, e.updated_at
		FROM exam e
		JOIN exam_director ed ON ed.exam_no = e.no
		WHERE ed.director_no = $1 AND ed.status = 'APPROVED' AND e.exam_date >= $2 AND e.exam_date < $3
		ORDER BY e.exam_date
		LIMIT 1`
	var exam models.Exam
	if err := r.db.GetContext(ctx, &exam, query, directorNo, from, to); err != nil {
		return nil, err
	}
	return &exam, nil
}
