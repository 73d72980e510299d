package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutor-marketplace-api/pkg/config"
)

// SupportsReturning reports whether INSERT ... RETURNING is available for the driver.
func SupportsReturning(driverName string) bool {
	return driverName != config.DriverMySQL
}

// InsertID runs an INSERT written with '?' placeholders and returns the generated id.
func InsertID(ctx context.Context, tx *sqlx.Tx, query string, args ...interface{}) (int64, error) {
	if SupportsReturning(tx.DriverName()) {
		var id int64
		if err := tx.QueryRowxContext(ctx, tx.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}
