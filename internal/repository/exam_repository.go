package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/multicampussa/laams-director-api/internal/dto"
	"github.com/multicampussa/laams-director-api/internal/models"
)

// ExamRepository manages persistence for exams and their calendar views.
type ExamRepository struct {
	db *sqlx.DB
}

// NewExamRepository constructs an ExamRepository.
func NewExamRepository(db *sqlx.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// PeriodRange converts a calendar period into a half-open [from, to) range.
// Day 0 selects the whole month.
func PeriodRange(period dto.CalendarPeriod) (time.Time, time.Time) {
	if period.Day == 0 {
		from := time.Date(period.Year, time.Month(period.Month), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0)
	}
	from := time.Date(period.Year, time.Month(period.Month), period.Day, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}

// FindByNo fetches an exam by its number.
func (r *ExamRepository) FindByNo(ctx context.Context, examNo int64) (*models.Exam, error) {
	const query = `SELECT no, center_no, name, exam_date, capacity, running_directors, created_at, updated_at FROM exam WHERE no = $1`
	var exam models.Exam
	if err := r.db.GetContext(ctx, &exam, query, examNo); err != nil {
		return nil, err
	}
	return &exam, nil
}

// CalendarForDirector lists exams visible to the director in the period:
// exams at the director's center plus exams they are assigned to.
func (r *ExamRepository) CalendarForDirector(ctx context.Context, directorNo int64, period dto.CalendarPeriod) ([]dto.ExamCalendarItem, error) {
	from, to := PeriodRange(period)
	const query = `
		SELECT e.no, e.name, e.exam_date, e.center_no, e.capacity,
		       (SELECT COUNT(*) FROM exam_director ed2 WHERE ed2.exam_no = e.no AND ed2.status = 'APPROVED') AS confirm_directors
		FROM exam e
		WHERE e.exam_date >= $2 AND e.exam_date < $3
		  AND (e.center_no = (SELECT d.center_no FROM director d WHERE d.no = $1)
		       OR EXISTS (SELECT 1 FROM exam_director ed WHERE ed.exam_no = e.no AND ed.director_no = $1 AND ed.status = 'APPROVED'))
		ORDER BY e.exam_date`
	items := make([]dto.ExamCalendarItem, 0)
	if err := r.db.SelectContext(ctx, &items, query, directorNo, from, to); err != nil {
		return nil, fmt.Errorf("list exam calendar: %w", err)
	}
	return items, nil
}

// UnappliedAndUnapproved lists center exams the director has not applied to
// and could still apply to, plus exams they applied to that remain unapproved.
func (r *ExamRepository) UnappliedAndUnapproved(ctx context.Context, directorNo, centerNo int64, period dto.CalendarPeriod) ([]dto.ExamCalendarItem, error) {
	from, to := PeriodRange(period)
	const query = `
		SELECT e.no, e.name, e.exam_date, e.center_no, e.capacity,
		       (SELECT COUNT(*) FROM exam_director ed2 WHERE ed2.exam_no = e.no AND ed2.status = 'APPROVED') AS confirm_directors
		FROM exam e
		WHERE e.center_no = $2 AND e.exam_date >= $3 AND e.exam_date < $4
		  AND (
			(NOT EXISTS (SELECT 1 FROM exam_director ed WHERE ed.exam_no = e.no AND ed.director_no = $1)
			 AND (SELECT COUNT(*) FROM exam_director ed3 WHERE ed3.exam_no = e.no AND ed3.status IN ('REQUESTED','APPROVED')) < e.capacity)
			OR EXISTS (SELECT 1 FROM exam_director ed4 WHERE ed4.exam_no = e.no AND ed4.director_no = $1 AND ed4.status = 'REQUESTED')
		  )
		ORDER BY e.exam_date`
	items := make([]dto.ExamCalendarItem, 0)
	if err := r.db.SelectContext(ctx, &items, query, directorNo, centerNo, from, to); err != nil {
		return nil, fmt.Errorf("list unapproved exams: %w", err)
	}
	return items, nil
}

// PossibleToApply lists center exams the director has not applied to and
// whose capacity is not yet exhausted.
func (r *ExamRepository) PossibleToApply(ctx context.Context, directorNo, centerNo int64, period dto.CalendarPeriod) ([]dto.ExamCalendarItem, error) {
	from, to := PeriodRange(period)
	const query = `
		SELECT e.no, e.name, e.exam_date, e.center_no, e.capacity,
		       (SELECT COUNT(*) FROM exam_director ed2 WHERE ed2.exam_no = e.no AND ed2.status = 'APPROVED') AS confirm_directors
		FROM exam e
		WHERE e.center_no = $2 AND e.exam_date >= $3 AND e.exam_date < $4
		  AND NOT EXISTS (SELECT 1 FROM exam_director ed WHERE ed.exam_no = e.no AND ed.director_no = $1)
		  AND (SELECT COUNT(*) FROM exam_director ed3 WHERE ed3.exam_no = e.no AND ed3.status IN ('REQUESTED','APPROVED')) < e.capacity
		ORDER BY e.exam_date`
	items := make([]dto.ExamCalendarItem, 0)
	if err := r.db.SelectContext(ctx, &items, query, directorNo, centerNo, from, to); err != nil {
		return nil, fmt.Errorf("list applicable exams: %w", err)
	}
	return items, nil
}

// AssignedDirectorNames returns the names of directors approved for the exam.
func (r *ExamRepository) AssignedDirectorNames(ctx context.Context, examNo int64) ([]string, error) {
	const query = `
		SELECT d.name FROM director d
		JOIN exam_director ed ON ed.director_no = d.no
		WHERE ed.exam_no = $1 AND ed.status = 'APPROVED'
		ORDER BY d.name`
	names := make([]string, 0)
	if err := r.db.SelectContext(ctx, &names, query, examNo); err != nil {
		return nil, fmt.Errorf("list assigned directors: %w", err)
	}
	return names, nil
}
