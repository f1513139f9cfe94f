package car

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/garizetu/booking-service/internal/domain"
	"github.com/garizetu/booking-service/pkg/dbmetrics"
	"github.com/garizetu/booking-service/pkg/psqlbuilder"
)

// Repository reads the fleet projection the booking engine needs and writes
// the operational status side effect of booking transitions.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a car repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a car's daily rate and operational status.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "daily_price", "car_status").
		From("cars").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Car
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.DailyPrice, &c.Status)
	if err == sql.ErrNoRows {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan car: %v", ErrScanRow, err)
	}

	return &c, nil
}

// ListIDs returns all car IDs with their status, for the fleet availability report.
func (r *Repository) ListIDs(ctx context.Context) ([]*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "daily_price", "car_status").
		From("cars").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	cars := make([]*domain.Car, 0)
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.DailyPrice, &c.Status); err != nil {
			return nil, fmt.Errorf("%w: ListIDs - scan row: %v", ErrScanRow, err)
		}
		cars = append(cars, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIDs - rows error: %v", ErrScanRow, err)
	}

	return cars, nil
}

// UpdateStatus flips a car's operational status. Runs inside the caller's
// transaction so the car never drifts out of sync with the booking that
// caused the change.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.CarStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cars").
		Set("car_status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCarNotFound
	}

	return nil
}
