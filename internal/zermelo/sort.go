package zermelo

import (
	"cmp"
	"slices"

	"zermelo-cli/internal/model"
)

// SortAppointments returns a copy ordered by ascending start. Appointments
// sharing a start time keep their response order.
func SortAppointments(in []model.Appointment) []model.Appointment {
	out := make([]model.Appointment, len(in))
	copy(out, in)
	slices.SortStableFunc(out, func(a, b model.Appointment) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return out
}
