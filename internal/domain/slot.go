package domain

import "github.com/dgarza/barberbook/pkg/types"

// TimeSlot is one bookable candidate of exactly the requested service
// duration. Slots are emitted in ascending start order and never overlap
// each other (fixed-interval stepping, not exhaustive subdivision).
type TimeSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps reports whether the slot intersects [busyStart, busyEnd) using
// half-open interval semantics: touching endpoints do not overlap.
func (s TimeSlot) Overlaps(busyStart, busyEnd types.TimeString) bool {
	return types.Overlaps(s.Start, s.End, busyStart, busyEnd)
}
