// Package render formats appointments as terminal lines.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"zermelo-cli/internal/model"
)

const (
	indent = "    "
	sep    = " - "

	// CancelledMarker is appended to cancelled lines when colour is off,
	// so the information survives pipes and dumb terminals.
	CancelledMarker = "[CANCELLED]"
)

// Options configures a Renderer.
type Options struct {
	// Location converts epoch seconds to wall-clock time. Nil means
	// time.Local.
	Location *time.Location
	// Color enables ANSI colours and the highlighted cancelled style.
	Color bool
}

// Renderer turns appointments into single display lines.
type Renderer struct {
	loc   *time.Location
	color bool

	subjects  *color.Color
	teachers  *color.Color
	groups    *color.Color
	locations *color.Color
	start     *color.Color
	end       *color.Color
	cancelled *color.Color
}

func New(opts Options) *Renderer {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	r := &Renderer{
		loc:       loc,
		color:     opts.Color,
		subjects:  color.New(color.FgHiBlue),
		teachers:  color.New(color.FgHiRed),
		groups:    color.New(color.FgHiGreen),
		locations: color.New(color.FgHiYellow),
		start:     color.New(color.FgHiCyan),
		end:       color.New(color.FgHiMagenta),
		cancelled: color.New(color.BgRed, color.FgHiWhite),
	}
	// Force the decision either way instead of relying on the global
	// color.NoColor detection.
	for _, c := range []*color.Color{r.subjects, r.teachers, r.groups, r.locations, r.start, r.end, r.cancelled} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Fields returns the six display segments of a: subjects, teachers,
// groups, locations, start and end time.
func (r *Renderer) Fields(a model.Appointment) [6]string {
	return [6]string{
		strings.Join(a.Subjects, ", "),
		strings.Join(a.Teachers, ", "),
		strings.Join(a.Groups, ", "),
		strings.Join(a.Locations, ", "),
		a.StartTime(r.loc).Format("15:04"),
		a.EndTime(r.loc).Format("15:04"),
	}
}

// Line renders one appointment:
//
//	SUBJECTS - TEACHERS - GROUPS - LOCATIONS - (START-END)
func (r *Renderer) Line(a model.Appointment) string {
	f := r.Fields(a)

	if a.Cancelled {
		plain := indent + layout(f)
		if r.color {
			return r.cancelled.Sprint(plain)
		}
		return plain + " " + CancelledMarker
	}

	return indent + layout([6]string{
		r.subjects.Sprint(f[0]),
		r.teachers.Sprint(f[1]),
		r.groups.Sprint(f[2]),
		r.locations.Sprint(f[3]),
		r.start.Sprint(f[4]),
		r.end.Sprint(f[5]),
	})
}

// Header renders the column labels line.
func (r *Renderer) Header() string {
	return indent + layout([6]string{
		r.subjects.Sprint("SUBJECT(S)"),
		r.teachers.Sprint("TEACHER(S)"),
		r.groups.Sprint("GROUP(S)"),
		r.locations.Sprint("LOCATION(S)"),
		r.start.Sprint("START"),
		r.end.Sprint("END"),
	})
}

// Table writes the title, the header and one line per appointment.
func (r *Renderer) Table(w io.Writer, appointments []model.Appointment) error {
	if _, err := fmt.Fprintln(w, "APPOINTMENTS:"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, r.Header()); err != nil {
		return err
	}
	for _, a := range appointments {
		if _, err := fmt.Fprintln(w, r.Line(a)); err != nil {
			return err
		}
	}
	return nil
}

func layout(f [6]string) string {
	return f[0] + sep + f[1] + sep + f[2] + sep + f[3] + sep + "(" + f[4] + "-" + f[5] + ")"
}
