package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/multicampussa/laams-director-api/internal/models"
)

// DirectorRepository resolves director identities.
type DirectorRepository struct {
	db *sqlx.DB
}

// NewDirectorRepository constructs a DirectorRepository.
func NewDirectorRepository(db *sqlx.DB) *DirectorRepository {
	return &DirectorRepository{db: db}
}

// FindByLoginID resolves the director row for a token's id claim.
func (r *DirectorRepository) FindByLoginID(ctx context.Context, loginID string) (*models.Director, error) {
	const query = `SELECT no, login_id, name, center_no, COALESCE(email, '') AS email, COALESCE(phone, '') AS phone FROM director WHERE login_id = $1`
	var director models.Director
	if err := r.db.GetContext(ctx, &director, query, loginID); err != nil {
		return nil, err
	}
	return &director, nil
}

// FindByNo fetches a director by number.
func (r *DirectorRepository) FindByNo(ctx context.Context, no int64) (*models.Director, error) {
	const query = `SELECT no, login_id, name, center_no, COALESCE(email, '') AS email, COALESCE(phone, '') AS phone FROM director WHERE no = $1`
	var director models.Director
	if err := r.db.GetContext(ctx, &director, query, no); err != nil {
		return nil, err
	}
	return &director, nil
}
