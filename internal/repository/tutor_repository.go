package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutor-marketplace-api/internal/models"
)

// TutorRepository reads tutor profiles.
type TutorRepository struct {
	db *sqlx.DB
}

// NewTutorRepository constructs a TutorRepository.
func NewTutorRepository(db *sqlx.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

// FindByID fetches a tutor by ID. It returns sql.ErrNoRows when absent.
func (r *TutorRepository) FindByID(ctx context.Context, id int64) (*models.Tutor, error) {
	const query = `SELECT id, name, avatar, whatsapp, bio FROM tutors WHERE id = ?`
	var tutor models.Tutor
	if err := r.db.GetContext(ctx, &tutor, r.db.Rebind(query), id); err != nil {
		return nil, err
	}
	return &tutor, nil
}

// Exists reports whether a tutor with id exists.
func (r *TutorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT 1 FROM tutors WHERE id = ?`
	var exists int
	if err := r.db.GetContext(ctx, &exists, r.db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check tutor: %w", err)
	}
	return true, nil
}
