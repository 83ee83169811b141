package validate_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgarza/barberbook/internal/domain"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return loc
}

func basePolicy() domain.EffectivePolicy {
	return domain.EffectivePolicy{
		DaysBookableInAdvance:  30,
		MinBookAheadHours:      2,
		MinCancelAheadHours:    24,
		BookingIntervalMinutes: 15,
	}
}

func TestEvaluateRules_CreateAllowed(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)
	start := time.Date(2026, 3, 4, 10, 0, 0, 0, loc) // 40 hours out, aligned

	v := EvaluateRules(start, now, loc, domain.ActionCreate, basePolicy())
	assert.Nil(t, v)
}

func TestEvaluateRules_AdvanceWindow(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	// +30 days is the last bookable date
	onBoundary := time.Date(2026, 4, 1, 10, 0, 0, 0, loc)
	assert.Nil(t, EvaluateRules(onBoundary, now, loc, domain.ActionCreate, basePolicy()))

	beyond := time.Date(2026, 4, 2, 10, 0, 0, 0, loc)
	v := EvaluateRules(beyond, now, loc, domain.ActionCreate, basePolicy())
	require.NotNil(t, v)
	assert.Equal(t, "start_time", v.Field)
	assert.Contains(t, v.Message, "30 days")
	assert.Contains(t, v.MessageEs, "30 días")
}

func TestEvaluateRules_LeadTimeBoundaryInclusive(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	// exactly now+2h is allowed
	assert.Nil(t, EvaluateRules(now.Add(2*time.Hour), now, loc, domain.ActionCreate, basePolicy()))

	v := EvaluateRules(now.Add(2*time.Hour-time.Minute), now, loc, domain.ActionCreate, basePolicy())
	require.NotNil(t, v)
	assert.Equal(t, "start_time", v.Field)
	assert.Contains(t, v.Message, "2 hours")
}

func TestEvaluateRules_RuleOrder(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	// 10:59 is both too soon and unaligned; the lead-time rule runs first
	v := EvaluateRules(time.Date(2026, 3, 2, 10, 59, 0, 0, loc), now, loc, domain.ActionCreate, basePolicy())
	require.NotNil(t, v)
	assert.Contains(t, v.Message, "at least 2 hours")
}

func TestEvaluateRules_IntervalAlignment(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	// 40 hours out, minute offset 37
	v := EvaluateRules(time.Date(2026, 3, 4, 1, 37, 0, 0, loc), now, loc, domain.ActionCreate, basePolicy())
	require.NotNil(t, v)
	assert.Equal(t, "start_time", v.Field)
	assert.Contains(t, v.Message, "15-minute intervals")
	assert.Contains(t, v.MessageEs, "15 minutos")
}

func TestEvaluateRules_CancellationWindow(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	v := EvaluateRules(now.Add(23*time.Hour), now, loc, domain.ActionCancel, basePolicy())
	require.NotNil(t, v)
	assert.Equal(t, "start_time", v.Field)
	assert.Contains(t, v.Message, "24 hours")
	assert.Contains(t, v.MessageEs, "24 horas")

	// exactly now+24h is allowed
	assert.Nil(t, EvaluateRules(now.Add(24*time.Hour), now, loc, domain.ActionCancel, basePolicy()))
}

func TestEvaluateRules_CancelIgnoresPlacementRules(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	// 48 hours out at an unaligned minute: alignment only binds placement
	v := EvaluateRules(time.Date(2026, 3, 4, 9, 7, 0, 0, loc), now, loc, domain.ActionCancel, basePolicy())
	assert.Nil(t, v)
}

func TestEvaluateRules_RescheduleAppliesBothRuleSets(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	// placement rules run first: unaligned start outside the cancel window
	v := EvaluateRules(time.Date(2026, 3, 3, 10, 7, 0, 0, loc), now, loc, domain.ActionReschedule, basePolicy())
	require.NotNil(t, v)
	assert.Contains(t, v.Message, "15-minute intervals")

	// aligned and far enough ahead for placement, but inside the 24h window
	v = EvaluateRules(time.Date(2026, 3, 2, 19, 0, 0, 0, loc), now, loc, domain.ActionReschedule, basePolicy())
	require.NotNil(t, v)
	assert.Contains(t, v.Message, "please call the shop")

	assert.Nil(t, EvaluateRules(time.Date(2026, 3, 4, 10, 0, 0, 0, loc), now, loc, domain.ActionReschedule, basePolicy()))
}

func TestEvaluateRules_FractionalHourThresholds(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	policy := basePolicy()
	policy.MinBookAheadHours = 0.75
	policy.MinCancelAheadHours = 2.5

	v := EvaluateRules(now.Add(30*time.Minute), now, loc, domain.ActionCreate, policy)
	require.NotNil(t, v)
	assert.Contains(t, v.Message, "0.75 hours")
	assert.Contains(t, v.MessageEs, "0.75 horas")

	v = EvaluateRules(now.Add(2*time.Hour), now, loc, domain.ActionCancel, policy)
	require.NotNil(t, v)
	assert.Contains(t, v.Message, "2.5 hours")
}

func TestPolicyUnavailableViolation(t *testing.T) {
	v := PolicyUnavailableViolation()
	require.NotNil(t, v)
	assert.Equal(t, "policy", v.Field)
	assert.NotEmpty(t, v.Message)
	assert.NotEmpty(t, v.MessageEs)
}
