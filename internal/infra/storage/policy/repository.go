package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dgarza/barberbook/internal/domain"
	"github.com/dgarza/barberbook/pkg/dbmetrics"
	"github.com/dgarza/barberbook/pkg/psqlbuilder"
)

// shopPolicyID is the fixed id of the single shop policy row
const shopPolicyID = 1

// Repository persists the shop policy and per-barber overrides
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new policy repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetShopPolicy fetches the shop-wide booking policy
func (r *Repository) GetShopPolicy(ctx context.Context) (*domain.ShopPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"days_bookable_in_advance",
		"min_book_ahead_hours",
		"min_cancel_ahead_hours",
		"booking_interval_minutes",
		"created_at",
		"updated_at",
	).
		From("shop_policy").
		Where(squirrel.Eq{"id": shopPolicyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetShopPolicy - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.ShopPolicy
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&policy.DaysBookableInAdvance,
		&policy.MinBookAheadHours,
		&policy.MinCancelAheadHours,
		&policy.BookingIntervalMinutes,
		&policy.CreatedAt,
		&policy.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetShopPolicy - scan policy: %v", ErrScanRow, err)
	}

	return &policy, nil
}

// UpdateShopPolicy upserts the single shop policy row
func (r *Repository) UpdateShopPolicy(ctx context.Context, policy *domain.ShopPolicy) (*domain.ShopPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("shop_policy").
		Columns(
			"id",
			"days_bookable_in_advance",
			"min_book_ahead_hours",
			"min_cancel_ahead_hours",
			"booking_interval_minutes",
		).
		Values(
			shopPolicyID,
			policy.DaysBookableInAdvance,
			policy.MinBookAheadHours,
			policy.MinCancelAheadHours,
			policy.BookingIntervalMinutes,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			days_bookable_in_advance = EXCLUDED.days_bookable_in_advance,
			min_book_ahead_hours = EXCLUDED.min_book_ahead_hours,
			min_cancel_ahead_hours = EXCLUDED.min_cancel_ahead_hours,
			booking_interval_minutes = EXCLUDED.booking_interval_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateShopPolicy - build upsert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&policy.CreatedAt,
		&policy.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateShopPolicy - execute upsert: %v", ErrExecQuery, err)
	}

	return policy, nil
}

// GetBarberOverride fetches the barber's policy overrides and commission
// rates. Missing record is ErrOverrideNotFound; for booking rules callers
// treat that as "no overrides", for payouts it means the barber is not
// configured.
func (r *Repository) GetBarberOverride(ctx context.Context, barberID int64) (*domain.BarberPolicyOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"min_book_ahead_hours_override",
		"min_cancel_ahead_hours_override",
		"booking_interval_minutes_override",
		"service_commission_rate",
		"product_commission_rate",
		"tip_commission_rate",
		"created_at",
		"updated_at",
	).
		From("barber_policies").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBarberOverride - build select query: %v", ErrBuildQuery, err)
	}

	var override domain.BarberPolicyOverride
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&override.BarberID,
		&override.MinBookAheadHoursOverride,
		&override.MinCancelAheadHoursOverride,
		&override.BookingIntervalMinutesOverride,
		&override.CommissionRates.ServiceRate,
		&override.CommissionRates.ProductRate,
		&override.CommissionRates.TipRate,
		&override.CreatedAt,
		&override.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBarberOverride - scan override: %v", ErrScanRow, err)
	}

	return &override, nil
}
