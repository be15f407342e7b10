package views

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/alexanderramin/showrunner/internal/domain"
)

// ErrNoAttendees is returned when an export would contain no rows.
var ErrNoAttendees = errors.New("no attendee data to download for this form")

var whitespace = regexp.MustCompile(`\s`)

// TimestampLayout is ISO 8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// CSVFileName is "<tour>_<form>_attendees.csv" with each whitespace
// character replaced by an underscore.
func CSVFileName(tourName, formName string) string {
	return whitespace.ReplaceAllString(tourName, "_") + "_" + whitespace.ReplaceAllString(formName, "_") + "_attendees.csv"
}

// WriteAttendeeCSV writes the attendee report of one form. The header is
// "Registration Date" followed by the field labels in field order. Each row
// starts with the registration time in TimestampLayout; every response cell
// is double quoted, multi-values are joined with "; " and a missing response
// is "". Rows are separated by "\n".
func WriteAttendeeCSV(w io.Writer, form domain.RegistrationForm, attendees []domain.Attendee) error {
	if len(attendees) == 0 {
		return ErrNoAttendees
	}
	header := make([]string, 0, len(form.Fields)+1)
	header = append(header, "Registration Date")
	for _, f := range form.Fields {
		header = append(header, f.Label)
	}
	lines := []string{strings.Join(header, ",")}

	for _, a := range attendees {
		row := make([]string, 0, len(form.Fields)+1)
		row = append(row, a.RegistrationDate.UTC().Format(TimestampLayout))
		for _, f := range form.Fields {
			var cell string
			if v, ok := a.Response(f.ID); ok {
				cell = v.String()
			}
			row = append(row, quote(cell))
		}
		lines = append(lines, strings.Join(row, ","))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
