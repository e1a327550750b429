package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/multicampussa/laams-director-api/internal/models"
)

// DirectorAttendanceRepository stores director center check-in records.
type DirectorAttendanceRepository struct {
	db *sqlx.DB
}

// NewDirectorAttendanceRepository constructs a DirectorAttendanceRepository.
func NewDirectorAttendanceRepository(db *sqlx.DB) *DirectorAttendanceRepository {
	return &DirectorAttendanceRepository{db: db}
}

// Create inserts a check-in row, assigning an ID when absent.
func (r *DirectorAttendanceRepository) Create(ctx context.Context, record *models.DirectorAttendance) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	const query = `INSERT INTO director_attendance (id, exam_no, director_no, latitude, longitude, device, checked_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.ExamNo, record.DirectorNo, record.Latitude, record.Longitude, record.Device, record.CheckedAt); err != nil {
		return fmt.Errorf("create director attendance: %w", err)
	}
	return nil
}
