package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutor-marketplace-api/internal/models"
)

// ConnectionRepository stores student-to-tutor connections.
type ConnectionRepository struct {
	db *sqlx.DB
}

// NewConnectionRepository constructs a ConnectionRepository.
func NewConnectionRepository(db *sqlx.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Create inserts a connection for the tutor.
func (r *ConnectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	if conn.CreatedAt.IsZero() {
		conn.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO connections (tutor_id, created_at) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), conn.TutorID, conn.CreatedAt); err != nil {
		return fmt.Errorf("create connection: %w", err)
	}
	return nil
}

// Count returns the number of recorded connections.
func (r *ConnectionRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) AS total FROM connections`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count connections: %w", err)
	}
	return total, nil
}
