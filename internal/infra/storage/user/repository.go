package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/garizetu/booking-service/pkg/dbmetrics"
	"github.com/garizetu/booking-service/pkg/psqlbuilder"
)

// Repository resolves customer references. The booking engine only needs to
// know the customer exists; identity itself is handled upstream.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a user repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Exists checks that a user row is present.
func (r *Repository) Exists(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Exists - scan row: %v", ErrScanRow, err)
	}

	return nil
}
