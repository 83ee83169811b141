package payout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dgarza/barberbook/internal/domain"
	"github.com/dgarza/barberbook/pkg/dbmetrics"
	"github.com/dgarza/barberbook/pkg/psqlbuilder"
)

var payoutColumns = []string{
	"id",
	"reference",
	"barber_id",
	"period_start",
	"period_end",
	"services_count",
	"services_revenue",
	"services_rate",
	"services_commission",
	"services_item_ids",
	"products_count",
	"products_revenue",
	"products_rate",
	"products_commission",
	"products_item_ids",
	"tips_count",
	"tips_revenue",
	"tips_rate",
	"tips_commission",
	"tips_item_ids",
	"calculated_amount",
	"paid_amount",
	"override_note",
	"created_at",
}

// Repository persists payouts. The breakdown is stored denormalized on the
// payout row so the audit trail survives later edits to appointments.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new payout repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a payout together with its full breakdown
func (r *Repository) Create(ctx context.Context, p *domain.Payout) (*domain.Payout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payouts").
		Columns(payoutColumns[1 : len(payoutColumns)-1]...).
		Values(
			p.Reference,
			p.BarberID,
			p.PeriodStart,
			p.PeriodEnd,
			p.Breakdown.Services.Count,
			p.Breakdown.Services.TotalRevenue,
			p.Breakdown.Services.CommissionRate,
			p.Breakdown.Services.CommissionAmount,
			pq.Array(p.Breakdown.Services.ItemIDs),
			p.Breakdown.Products.Count,
			p.Breakdown.Products.TotalRevenue,
			p.Breakdown.Products.CommissionRate,
			p.Breakdown.Products.CommissionAmount,
			pq.Array(p.Breakdown.Products.ItemIDs),
			p.Breakdown.Tips.Count,
			p.Breakdown.Tips.TotalRevenue,
			p.Breakdown.Tips.CommissionRate,
			p.Breakdown.Tips.CommissionAmount,
			pq.Array(p.Breakdown.Tips.ItemIDs),
			p.CalculatedAmount,
			p.PaidAmount,
			p.OverrideNote,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetOverlapping fetches the barber's payouts whose period intersects
// [from, to]. Periods are inclusive on both ends.
func (r *Repository) GetOverlapping(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.Payout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(payoutColumns...).
		From("payouts").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.LtOrEq{"period_start": to}).
		Where(squirrel.GtOrEq{"period_end": from}).
		OrderBy("period_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryPayouts(ctx, executor, query, args, "GetOverlapping")
}

// ListByBarber fetches the barber's payout history, newest first
func (r *Repository) ListByBarber(ctx context.Context, barberID int64) ([]*domain.Payout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(payoutColumns...).
		From("payouts").
		Where(squirrel.Eq{"barber_id": barberID}).
		OrderBy("period_start DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBarber - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryPayouts(ctx, executor, query, args, "ListByBarber")
}

func (r *Repository) queryPayouts(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, method string) ([]*domain.Payout, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	payouts := make([]*domain.Payout, 0)
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan payout: %v", ErrScanRow, method, err)
		}
		payouts = append(payouts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return payouts, nil
}

func scanPayout(rows *sql.Rows) (*domain.Payout, error) {
	var p domain.Payout
	var serviceIDs, productIDs, tipIDs pq.Int64Array

	err := rows.Scan(
		&p.ID,
		&p.Reference,
		&p.BarberID,
		&p.PeriodStart,
		&p.PeriodEnd,
		&p.Breakdown.Services.Count,
		&p.Breakdown.Services.TotalRevenue,
		&p.Breakdown.Services.CommissionRate,
		&p.Breakdown.Services.CommissionAmount,
		&serviceIDs,
		&p.Breakdown.Products.Count,
		&p.Breakdown.Products.TotalRevenue,
		&p.Breakdown.Products.CommissionRate,
		&p.Breakdown.Products.CommissionAmount,
		&productIDs,
		&p.Breakdown.Tips.Count,
		&p.Breakdown.Tips.TotalRevenue,
		&p.Breakdown.Tips.CommissionRate,
		&p.Breakdown.Tips.CommissionAmount,
		&tipIDs,
		&p.CalculatedAmount,
		&p.PaidAmount,
		&p.OverrideNote,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Breakdown.Services.ItemIDs = []int64(serviceIDs)
	p.Breakdown.Products.ItemIDs = []int64(productIDs)
	p.Breakdown.Tips.ItemIDs = []int64(tipIDs)
	return &p, nil
}
