package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dgarza/barberbook/internal/domain"
	"github.com/dgarza/barberbook/pkg/dbmetrics"
	"github.com/dgarza/barberbook/pkg/psqlbuilder"
)

// Repository reads and settles product sales
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new sale repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetUnpaidSales fetches the barber's product sales in [from, to] that have
// not yet been settled in a payout. Inside a transaction the rows are locked.
func (r *Repository) GetUnpaidSales(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.ProductSale, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "barber_id", "product_id", "product_name", "quantity", "retail_price", "sold_at", "commission_paid", "payout_id",
	).
		From("product_sales").
		Where(squirrel.Eq{"barber_id": barberID, "commission_paid": false}).
		Where(squirrel.GtOrEq{"sold_at": from}).
		Where(squirrel.Lt{"sold_at": to.AddDate(0, 0, 1)}).
		OrderBy("sold_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnpaidSales - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnpaidSales - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sales := make([]*domain.ProductSale, 0)
	for rows.Next() {
		var s domain.ProductSale
		err := rows.Scan(
			&s.ID,
			&s.BarberID,
			&s.ProductID,
			&s.ProductName,
			&s.Quantity,
			&s.RetailPrice,
			&s.SoldAt,
			&s.CommissionPaid,
			&s.PayoutID,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetUnpaidSales - scan sale: %v", ErrScanRow, err)
		}
		sales = append(sales, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetUnpaidSales - rows error: %v", ErrScanRow, err)
	}

	return sales, nil
}

// MarkCommissionPaid flags the sales as settled and links them to the payout
func (r *Repository) MarkCommissionPaid(ctx context.Context, ids []int64, payoutID int64) error {
	if len(ids) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("product_sales").
		Set("commission_paid", true).
		Set("payout_id", payoutID).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkCommissionPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkCommissionPaid - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkCommissionPaid - get rows affected: %v", ErrExecQuery, err)
	}
	if affected != int64(len(ids)) {
		return fmt.Errorf("%w: MarkCommissionPaid - marked %d of %d sales", ErrExecQuery, affected, len(ids))
	}

	return nil
}
