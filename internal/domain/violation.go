package domain

// BookingAction is the mutation being validated against the booking rules
type BookingAction string

const (
	ActionCreate     BookingAction = "create"
	ActionCancel     BookingAction = "cancel"
	ActionReschedule BookingAction = "reschedule"
)

// Valid reports whether the action is one of the known booking actions.
func (a BookingAction) Valid() bool {
	switch a {
	case ActionCreate, ActionCancel, ActionReschedule:
		return true
	default:
		return false
	}
}

// AffectsStart reports whether the rules for placing a new start time apply
// (advance window, lead time, interval alignment).
func (a BookingAction) AffectsStart() bool {
	return a == ActionCreate || a == ActionReschedule
}

// ReleasesSlot reports whether the cancellation-window rule applies.
func (a BookingAction) ReleasesSlot() bool {
	return a == ActionCancel || a == ActionReschedule
}

// BookingRuleViolation is a structured, bilingual rejection of a proposed
// booking action. It is a value, not an error: rule violations are expected,
// frequent, user-facing outcomes. A nil *BookingRuleViolation means the
// action is allowed.
type BookingRuleViolation struct {
	Field     string `json:"field"`
	Message   string `json:"message"`
	MessageEs string `json:"messageEs"`
}
