package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dgarza/barberbook/internal/domain"
	"github.com/dgarza/barberbook/pkg/dbmetrics"
	"github.com/dgarza/barberbook/pkg/psqlbuilder"
	"github.com/dgarza/barberbook/pkg/types"
)

// Repository reads barber schedules, shop hours and time off
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new schedule repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDaySchedule fetches one barber's working window for the given weekday.
// Returns (nil, nil) when no record exists: that day is simply not worked.
func (r *Repository) GetDaySchedule(ctx context.Context, barberID int64, weekday time.Weekday) (*domain.DaySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "barber_id", "weekday", "active", "start_time", "end_time", "created_at", "updated_at",
	).
		From("barber_schedules").
		Where(squirrel.Eq{"barber_id": barberID, "weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDaySchedule - build select query: %v", ErrBuildQuery, err)
	}

	var sched domain.DaySchedule
	var weekdayRaw int
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sched.ID,
		&sched.BarberID,
		&weekdayRaw,
		&sched.Active,
		&sched.StartTime,
		&sched.EndTime,
		&sched.CreatedAt,
		&sched.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDaySchedule - scan schedule: %v", ErrScanRow, err)
	}
	sched.Weekday = time.Weekday(weekdayRaw)

	return &sched, nil
}

// GetWeekHours fetches the shop's operating hours for the full week. Days
// without a row, or with is_open=false, come back closed.
func (r *Repository) GetWeekHours(ctx context.Context) (*domain.WeekHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "is_open", "open_time", "close_time").
		From("shop_hours").
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var week domain.WeekHours
	for rows.Next() {
		var weekdayRaw int
		var isOpen bool
		var openTime, closeTime types.TimeString

		if err := rows.Scan(&weekdayRaw, &isOpen, &openTime, &closeTime); err != nil {
			return nil, fmt.Errorf("%w: GetWeekHours - scan shop hours: %v", ErrScanRow, err)
		}

		day := domain.DayHours{IsOpen: isOpen}
		if isOpen && !openTime.IsZero() && !closeTime.IsZero() {
			day.Open = &openTime
			day.Close = &closeTime
		} else {
			day.IsOpen = false
		}

		setWeekday(&week, time.Weekday(weekdayRaw), day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeekHours - rows error: %v", ErrScanRow, err)
	}

	return &week, nil
}

// GetTimeOff fetches a barber's time-off blocks attached to dates in
// [from, to)
func (r *Repository) GetTimeOff(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.TimeOffBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "barber_id", "date", "start_at", "end_at", "reason", "created_at",
	).
		From("time_off_blocks").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		OrderBy("date ASC, start_at ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.TimeOffBlock, 0)
	for rows.Next() {
		var block domain.TimeOffBlock
		err := rows.Scan(
			&block.ID,
			&block.BarberID,
			&block.Date,
			&block.StartAt,
			&block.EndAt,
			&block.Reason,
			&block.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetTimeOff - scan time-off block: %v", ErrScanRow, err)
		}
		blocks = append(blocks, &block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

func setWeekday(week *domain.WeekHours, weekday time.Weekday, day domain.DayHours) {
	switch weekday {
	case time.Monday:
		week.Monday = day
	case time.Tuesday:
		week.Tuesday = day
	case time.Wednesday:
		week.Wednesday = day
	case time.Thursday:
		week.Thursday = day
	case time.Friday:
		week.Friday = day
	case time.Saturday:
		week.Saturday = day
	case time.Sunday:
		week.Sunday = day
	}
}
