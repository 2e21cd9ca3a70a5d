package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"zermelo-cli/internal/model"
)

func TestExportRoundTrip(t *testing.T) {
	start := time.Date(2026, time.October, 19, 6, 30, 0, 0, time.UTC)
	appointments := []model.Appointment{
		{
			ID:        42,
			Type:      "lesson",
			Start:     start.Unix(),
			End:       start.Add(50 * time.Minute).Unix(),
			Subjects:  []string{"wisb"},
			Teachers:  []string{"abc"},
			Groups:    []string{"h4a"},
			Locations: []string{"101", "102"},
		},
		{
			ID:                43,
			Start:             start.Add(time.Hour).Unix(),
			End:               start.Add(110 * time.Minute).Unix(),
			StartTimeSlotName: "u3",
			Cancelled:         true,
			ChangeDescription: "teacher ill",
		},
	}

	var buf bytes.Buffer
	err := Export(&buf, appointments, ExportOptions{School: "demo", Now: start})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	cal, err := ical.ParseCalendar(&buf)
	if err != nil {
		t.Fatalf("parse exported calendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	first := events[0]
	if first.Id() != "42@demo.zportal.nl" {
		t.Errorf("uid = %q", first.Id())
	}
	if p := first.GetProperty(ical.ComponentPropertySummary); p == nil || p.Value != "wisb" {
		t.Errorf("summary = %v", p)
	}
	if p := first.GetProperty(ical.ComponentPropertyLocation); p == nil || !strings.Contains(p.Value, "101") {
		t.Errorf("location = %v", p)
	}
	if p := first.GetProperty(ical.ComponentPropertyCategories); p == nil || p.Value != "LESSON" {
		t.Errorf("categories = %v, want LESSON", p)
	}
	if second := events[1]; second.GetProperty(ical.ComponentPropertyCategories) != nil {
		t.Error("appointment without type should have no CATEGORIES")
	}
	gotStart, err := first.GetStartAt()
	if err != nil || !gotStart.Equal(start) {
		t.Errorf("start = %s (%v), want %s", gotStart, err, start)
	}
	if p := first.GetProperty(ical.ComponentPropertyStatus); p == nil || p.Value != string(ical.ObjectStatusConfirmed) {
		t.Errorf("status = %v, want CONFIRMED", p)
	}

	second := events[1]
	if p := second.GetProperty(ical.ComponentPropertySummary); p == nil || p.Value != "u3" {
		t.Errorf("summary = %v, want time slot name", p)
	}
	if p := second.GetProperty(ical.ComponentPropertyStatus); p == nil || p.Value != string(ical.ObjectStatusCancelled) {
		t.Errorf("status = %v, want CANCELLED", p)
	}
}

func TestExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, nil, ExportOptions{School: "demo"}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "BEGIN:VCALENDAR") || strings.Contains(out, "BEGIN:VEVENT") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestExportRequiresSchool(t *testing.T) {
	if err := Export(&bytes.Buffer{}, nil, ExportOptions{}); err == nil {
		t.Error("expected error for empty school")
	}
}

func TestEventUIDFallback(t *testing.T) {
	a := model.Appointment{Start: 1000}
	if got := eventUID(a, 3, "demo"); got != "1000-3@demo.zportal.nl" {
		t.Errorf("eventUID = %q", got)
	}
}
