package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/garizetu/booking-service/internal/domain"
	"github.com/garizetu/booking-service/pkg/dbmetrics"
	"github.com/garizetu/booking-service/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"car_id",
	"pickup_date",
	"return_date",
	"pickup_location",
	"return_location",
	"special_requests",
	"daily_price",
	"total_price",
	"booking_status",
	"payment_status",
	"payment_method",
	"payment_reference",
	"payment_simulated_at",
	"payment_expires_at",
	"admin_notified_at",
	"admin_notification_read",
	"admin_notification_read_at",
	"created_at",
	"updated_at",
}

// Repository persists bookings in the bookings table.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking and fills in the generated ID and timestamps.
// If the context carries an active transaction it is used, so the conflict
// check and the insert share the same serialization scope.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"car_id",
			"pickup_date",
			"return_date",
			"pickup_location",
			"return_location",
			"special_requests",
			"daily_price",
			"total_price",
			"booking_status",
			"payment_status",
			"payment_expires_at",
			"admin_notification_read",
		).
		Values(
			b.UserID,
			b.CarID,
			b.PickupDate,
			b.ReturnDate,
			b.PickupLocation,
			b.ReturnLocation,
			b.SpecialRequests,
			b.DailyPrice,
			b.TotalPrice,
			b.BookingStatus,
			b.PaymentStatus,
			b.PaymentExpiresAt,
			b.AdminNotificationRead,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// Save writes the full mutable state of a booking and bumps updated_at.
func (r *Repository) Save(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("pickup_date", b.PickupDate).
		Set("return_date", b.ReturnDate).
		Set("pickup_location", b.PickupLocation).
		Set("return_location", b.ReturnLocation).
		Set("special_requests", b.SpecialRequests).
		Set("daily_price", b.DailyPrice).
		Set("total_price", b.TotalPrice).
		Set("booking_status", b.BookingStatus).
		Set("payment_status", b.PaymentStatus).
		Set("payment_method", b.PaymentMethod).
		Set("payment_reference", b.PaymentReference).
		Set("payment_simulated_at", b.PaymentSimulatedAt).
		Set("payment_expires_at", b.PaymentExpiresAt).
		Set("admin_notified_at", b.AdminNotifiedAt).
		Set("admin_notification_read", b.AdminNotificationRead).
		Set("admin_notification_read_at", b.AdminNotificationReadAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Save - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Save - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SaveAll persists a batch of bookings. Meant to run inside the caller's
// transaction (the expiry sweep).
func (r *Repository) SaveAll(ctx context.Context, bookings []*domain.Booking) error {
	for _, b := range bookings {
		if err := r.Save(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches one booking.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetAll returns every booking, newest first.
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	return r.list(ctx, "GetAll", nil, "created_at DESC")
}

// GetByUserID returns a customer's booking history, newest first.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return r.list(ctx, "GetByUserID", squirrel.Eq{"user_id": userID}, "created_at DESC")
}

// GetByCarID returns every booking ever made for a car.
func (r *Repository) GetByCarID(ctx context.Context, carID int64) ([]*domain.Booking, error) {
	return r.list(ctx, "GetByCarID", squirrel.Eq{"car_id": carID}, "created_at DESC")
}

// GetByStatus returns bookings in the given status, newest first.
func (r *Repository) GetByStatus(ctx context.Context, status domain.BookingStatus) ([]*domain.Booking, error) {
	return r.list(ctx, "GetByStatus", squirrel.Eq{"booking_status": status}, "created_at DESC")
}

// FindConflicting returns the bookings that block the candidate date range on
// a car as of the given instant:
//   - hard blocks (CONFIRMED / ACTIVE / legacy ADMIN_NOTIFIED), or
//   - unexpired soft locks (pending payment, unpaid or failed, deadline still open),
//
// overlapping with half-open semantics: existing.pickup < candidate.return
// AND existing.return > candidate.pickup.
//
// Inside a transaction the rows are locked with FOR UPDATE so a racing create
// on the same car serializes against this check.
func (r *Repository) FindConflicting(ctx context.Context, carID int64, pickupDate, returnDate time.Time, asOf time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"car_id": carID}).
		Where(blockingPredicate(asOf)).
		Where(squirrel.Lt{"pickup_date": returnDate}).
		Where(squirrel.Gt{"return_date": pickupDate})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicting - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindBlockingForCars returns all blocking bookings (hard blocks and unexpired
// soft locks) for a set of cars in one query, for listing pages.
func (r *Repository) FindBlockingForCars(ctx context.Context, carIDs []int64, asOf time.Time) ([]*domain.Booking, error) {
	if len(carIDs) == 0 {
		return []*domain.Booking{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"car_id": carIDs}).
		Where(blockingPredicate(asOf)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlockingForCars - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlockingForCars - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindExpiredPendingPayment returns pending-payment bookings whose window has
// elapsed. The predicate itself excludes already-expired rows, which is what
// makes the sweep idempotent.
func (r *Repository) FindExpiredPendingPayment(ctx context.Context, asOf time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_status": domain.SoftLockStatuses}).
		Where(squirrel.Eq{"payment_status": domain.SoftLockPaymentStatuses}).
		Where(squirrel.NotEq{"payment_expires_at": nil}).
		Where(squirrel.LtOrEq{"payment_expires_at": asOf}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindExpiredPendingPayment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindExpiredPendingPayment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UnreadNotifications returns bookings with a pending admin notification,
// newest notification first.
func (r *Repository) UnreadNotifications(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.NotEq{"admin_notified_at": nil}).
		Where("COALESCE(admin_notification_read, FALSE) = FALSE").
		OrderBy("admin_notified_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UnreadNotifications - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: UnreadNotifications - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// AllNotifications returns every booking that ever raised an admin
// notification, newest first.
func (r *Repository) AllNotifications(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.NotEq{"admin_notified_at": nil}).
		OrderBy("admin_notified_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AllNotifications - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: AllNotifications - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountByStatus counts bookings in a single status.
func (r *Repository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	return r.count(ctx, "CountByStatus", squirrel.Eq{"booking_status": status})
}

// CountTotal counts all bookings.
func (r *Repository) CountTotal(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountTotal", nil)
}

// CountOverdue counts ACTIVE bookings whose return date has passed.
func (r *Repository) CountOverdue(ctx context.Context, today time.Time) (int64, error) {
	return r.count(ctx, "CountOverdue", squirrel.And{
		squirrel.Eq{"booking_status": domain.StatusActive},
		squirrel.Lt{"return_date": today},
	})
}

// BackfillNullNotificationRead coerces legacy NULL admin_notification_read
// rows to FALSE. One-time migration, run at startup.
func (r *Repository) BackfillNullNotificationRead(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx,
		"UPDATE bookings SET admin_notification_read = FALSE WHERE admin_notification_read IS NULL")
	if err != nil {
		return 0, fmt.Errorf("%w: BackfillNullNotificationRead - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: BackfillNullNotificationRead - get rows affected: %v", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

// blockingPredicate is the availability conflict predicate shared by
// FindConflicting and FindBlockingForCars.
func blockingPredicate(asOf time.Time) squirrel.Sqlizer {
	return squirrel.Or{
		squirrel.Eq{"booking_status": domain.HardBlockingStatuses},
		squirrel.And{
			squirrel.Eq{"booking_status": domain.SoftLockStatuses},
			squirrel.Eq{"payment_status": domain.SoftLockPaymentStatuses},
			squirrel.NotEq{"payment_expires_at": nil},
			squirrel.Gt{"payment_expires_at": asOf},
		},
	}
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer, orderBy string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings").OrderBy(orderBy)
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *Repository) count(ctx context.Context, op string, where squirrel.Sqlizer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").From("bookings")
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build count query: %v", ErrBuildQuery, op, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, op, err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var notificationRead sql.NullBool
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.CarID,
		&b.PickupDate,
		&b.ReturnDate,
		&b.PickupLocation,
		&b.ReturnLocation,
		&b.SpecialRequests,
		&b.DailyPrice,
		&b.TotalPrice,
		&b.BookingStatus,
		&b.PaymentStatus,
		&b.PaymentMethod,
		&b.PaymentReference,
		&b.PaymentSimulatedAt,
		&b.PaymentExpiresAt,
		&b.AdminNotifiedAt,
		&notificationRead,
		&b.AdminNotificationReadAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Legacy rows may carry NULL here; coerce to false on load.
	b.AdminNotificationRead = notificationRead.Valid && notificationRead.Bool
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
