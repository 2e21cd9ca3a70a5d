package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "zermelo-cli/internal/log"
	"zermelo-cli/internal/model"
)

const productID = "-//zermelo-cli//Appointments//EN"

// ExportOptions controls the generated calendar.
type ExportOptions struct {
	// School is used to build globally unique UIDs.
	School string
	// Now is written as DTSTAMP on every event. Zero means time.Now().
	Now time.Time
}

// Export writes appointments as an iCalendar (PUBLISH) document to w.
//
//   - One VEVENT per appointment, DTSTART/DTEND in UTC.
//   - SUMMARY is the subjects, or the time slot name for appointments
//     without subjects.
//   - The appointment type (lesson, exam, activity, ...) becomes CATEGORIES.
//   - Cancelled appointments carry STATUS:CANCELLED, others CONFIRMED.
func Export(w io.Writer, appointments []model.Appointment, opts ExportOptions) error {
	if opts.School == "" {
		return errors.New("ics export: school is empty")
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("Zermelo " + opts.School)

	for i, a := range appointments {
		ev := cal.AddEvent(eventUID(a, i, opts.School))
		ev.SetDtStampTime(now)
		ev.SetStartAt(time.Unix(a.Start, 0))
		ev.SetEndAt(time.Unix(a.End, 0))
		ev.SetSummary(summary(a))
		if len(a.Locations) > 0 {
			ev.SetLocation(strings.Join(a.Locations, ", "))
		}
		if a.Type != "" {
			ev.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(a.Type))
		}
		if d := description(a); d != "" {
			ev.SetDescription(d)
		}
		if a.Cancelled {
			ev.SetStatus(ical.ObjectStatusCancelled)
		} else {
			ev.SetStatus(ical.ObjectStatusConfirmed)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("ics export: %w", err)
	}
	appLog.Debug("ics export completed", "school", opts.School, "event_count", len(appointments))
	return nil
}

// eventUID prefers the appointment id; appointments without one fall back
// to their start and position so UIDs stay unique within the document.
func eventUID(a model.Appointment, idx int, school string) string {
	if a.ID != 0 {
		return fmt.Sprintf("%d@%s.zportal.nl", a.ID, school)
	}
	return fmt.Sprintf("%d-%d@%s.zportal.nl", a.Start, idx, school)
}

func summary(a model.Appointment) string {
	if len(a.Subjects) > 0 {
		return strings.Join(a.Subjects, ", ")
	}
	if a.StartTimeSlotName != "" {
		return a.StartTimeSlotName
	}
	return "Appointment"
}

func description(a model.Appointment) string {
	var lines []string
	if len(a.Teachers) > 0 {
		lines = append(lines, "Teachers: "+strings.Join(a.Teachers, ", "))
	}
	if len(a.Groups) > 0 {
		lines = append(lines, "Groups: "+strings.Join(a.Groups, ", "))
	}
	if a.ChangeDescription != "" {
		lines = append(lines, a.ChangeDescription)
	}
	return strings.Join(lines, "\n")
}
