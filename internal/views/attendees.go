package views

import (
	"strings"

	"github.com/alexanderramin/showrunner/internal/domain"
)

// FilterAll is the filter value that disables a field filter.
const FilterAll = "all"

// FilterableFields are the fields the attendee table offers filters for.
func FilterableFields(form domain.RegistrationForm) []domain.FormField {
	var out []domain.FormField
	for _, f := range form.Fields {
		switch f.Type {
		case domain.FieldText, domain.FieldEmail, domain.FieldTel, domain.FieldNumber,
			domain.FieldSelect, domain.FieldRadio:
			out = append(out, f)
		}
	}
	return out
}

// FilterAttendees returns the attendees of form whose responses satisfy every
// active filter. filters maps field ID to the wanted value; empty values and
// "all" are inactive. An attendee without a response to a filtered field, or
// a filter on a field the form does not have, never matches.
func FilterAttendees(form domain.RegistrationForm, attendees []domain.Attendee, filters map[string]string) []domain.Attendee {
	fields := make(map[string]domain.FormField, len(form.Fields))
	for _, f := range form.Fields {
		fields[f.ID] = f
	}
	active := make(map[string]string)
	for id, v := range filters {
		if v != "" && v != FilterAll {
			active[id] = v
		}
	}

	var out []domain.Attendee
	for _, a := range attendees {
		if a.FormID != form.ID {
			continue
		}
		if matchesAll(a, fields, active) {
			out = append(out, a)
		}
	}
	return out
}

func matchesAll(a domain.Attendee, fields map[string]domain.FormField, filters map[string]string) bool {
	for fieldID, want := range filters {
		field, ok := fields[fieldID]
		if !ok {
			return false
		}
		value, ok := a.Response(fieldID)
		if !ok || !matchField(field.Type, value, want) {
			return false
		}
	}
	return true
}

func matchField(t domain.FieldType, value domain.ResponseValue, want string) bool {
	flat := strings.Join(value.Values(), " ")
	if t.FreeText() {
		return strings.Contains(strings.ToLower(flat), strings.ToLower(want))
	}
	switch t {
	case domain.FieldSelect, domain.FieldRadio:
		return flat == want
	case domain.FieldCheckbox:
		if value.IsMulti() {
			for _, v := range value.Multi {
				if v == want {
					return true
				}
			}
			return false
		}
		return flat == want
	default:
		return false
	}
}

// MissingRequired returns the labels of required fields without a usable
// response, in field order.
func MissingRequired(form domain.RegistrationForm, responses []domain.RegistrationResponse) []string {
	byField := make(map[string]domain.ResponseValue, len(responses))
	for _, r := range responses {
		byField[r.FieldID] = r.Value
	}
	var missing []string
	for _, f := range form.Fields {
		if !f.Required {
			continue
		}
		if v, ok := byField[f.ID]; !ok || v.Empty() {
			missing = append(missing, f.Label)
		}
	}
	return missing
}
