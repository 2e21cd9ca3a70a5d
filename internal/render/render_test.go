package render

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"zermelo-cli/internal/model"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func amsterdam(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func sample(loc *time.Location) model.Appointment {
	return model.Appointment{
		Start:     time.Date(2026, time.October, 19, 8, 30, 0, 0, loc).Unix(),
		End:       time.Date(2026, time.October, 19, 9, 20, 0, 0, loc).Unix(),
		Subjects:  []string{"wisb"},
		Teachers:  []string{"abc", "def"},
		Groups:    []string{"h4a"},
		Locations: []string{"101"},
	}
}

func TestLinePlain(t *testing.T) {
	loc := amsterdam(t)
	r := New(Options{Location: loc})

	got := r.Line(sample(loc))

	want := "    wisb - abc, def - h4a - 101 - (08:30-09:20)"
	if got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestLineEmptySegments(t *testing.T) {
	loc := amsterdam(t)
	r := New(Options{Location: loc})
	a := sample(loc)
	a.Teachers = nil
	a.Locations = []string{}

	got := r.Line(a)

	want := "    wisb -  - h4a -  - (08:30-09:20)"
	if got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestLineCancelledPlainHasMarker(t *testing.T) {
	loc := amsterdam(t)
	r := New(Options{Location: loc})
	a := sample(loc)
	normal := r.Line(a)
	a.Cancelled = true

	got := r.Line(a)

	if got != normal+" "+CancelledMarker {
		t.Errorf("Line() = %q, want %q", got, normal+" "+CancelledMarker)
	}
}

func TestLineCancelledColorSameContent(t *testing.T) {
	loc := amsterdam(t)
	r := New(Options{Location: loc, Color: true})
	a := sample(loc)
	normal := r.Line(a)
	a.Cancelled = true
	cancelled := r.Line(a)

	if normal == cancelled {
		t.Fatal("cancelled line is not visually distinct")
	}
	if !strings.Contains(cancelled, "41") {
		t.Errorf("cancelled line lacks red background: %q", cancelled)
	}
	if ansi.ReplaceAllString(normal, "") != ansi.ReplaceAllString(cancelled, "") {
		t.Errorf("text content differs:\n%q\n%q", ansi.ReplaceAllString(normal, ""), ansi.ReplaceAllString(cancelled, ""))
	}
	if strings.Contains(cancelled, CancelledMarker) {
		t.Error("marker should only be used without colour")
	}
}

func TestLineColorSegments(t *testing.T) {
	loc := amsterdam(t)
	r := New(Options{Location: loc, Color: true})

	got := r.Line(sample(loc))

	if !ansi.MatchString(got) {
		t.Fatalf("no colour codes in %q", got)
	}
	if plain := ansi.ReplaceAllString(got, ""); plain != "    wisb - abc, def - h4a - 101 - (08:30-09:20)" {
		t.Errorf("stripped line = %q", plain)
	}
}

func TestLineUsesOffsetOfEachInstant(t *testing.T) {
	loc := amsterdam(t)
	r := New(Options{Location: loc})
	// 2026-10-25 is the CEST -> CET switch; 01:00Z is 03:00 before and
	// 02:00 after the change.
	a := model.Appointment{
		Start: time.Date(2026, time.October, 24, 22, 0, 0, 0, time.UTC).Unix(),
		End:   time.Date(2026, time.October, 25, 12, 0, 0, 0, time.UTC).Unix(),
	}

	got := r.Line(a)

	if !strings.HasSuffix(got, "(00:00-13:00)") {
		t.Errorf("Line() = %q, want times (00:00-13:00)", got)
	}
}

func TestHeader(t *testing.T) {
	r := New(Options{})
	want := "    SUBJECT(S) - TEACHER(S) - GROUP(S) - LOCATION(S) - (START-END)"
	if got := r.Header(); got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := New(Options{}).Table(&buf, nil); err != nil {
		t.Fatalf("Table: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 || lines[0] != "APPOINTMENTS:" || !strings.Contains(lines[1], "SUBJECT(S)") {
		t.Errorf("unexpected table output: %q", buf.String())
	}
}

func TestTableOneLinePerAppointment(t *testing.T) {
	loc := amsterdam(t)
	var buf bytes.Buffer
	a := sample(loc)
	b := sample(loc)
	b.Subjects = []string{"netl"}

	if err := New(Options{Location: loc}).Table(&buf, []model.Appointment{a, b}); err != nil {
		t.Fatalf("Table: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[3], "    netl") {
		t.Errorf("last line = %q", lines[3])
	}
}
