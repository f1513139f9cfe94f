package booking

import (
	"context"
	"database/sql"

	"github.com/garizetu/booking-service/pkg/dbmetrics"
)

// Reuse the dbmetrics interfaces so the repository works over *sql.DB,
// *dbmetrics.DB and transactions alike.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions. Supports *sql.DB and *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
