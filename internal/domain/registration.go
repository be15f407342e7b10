package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type FormField struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
}

type RegistrationForm struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Status FormStatus  `json:"status"`
	Fields []FormField `json:"fields"`
}

// IsOpen reports whether the form accepts public submissions.
func (f RegistrationForm) IsOpen() bool {
	return f.Status == FormOpen
}

// ResponseValue holds either a single answer or, for checkbox fields, a list
// of selected options. It encodes as a JSON string or array respectively.
type ResponseValue struct {
	Single string
	Multi  []string
	multi  bool
}

// StringValue builds a single-valued response.
func StringValue(s string) ResponseValue {
	return ResponseValue{Single: s}
}

// ListValue builds a multi-valued response.
func ListValue(values ...string) ResponseValue {
	return ResponseValue{Multi: append([]string(nil), values...), multi: true}
}

// IsMulti reports whether the response carries a list of values.
func (v ResponseValue) IsMulti() bool {
	return v.multi || v.Multi != nil
}

// Values returns the response as a list, wrapping single values.
func (v ResponseValue) Values() []string {
	if v.IsMulti() {
		return v.Multi
	}
	return []string{v.Single}
}

// String joins multi-valued responses with "; ".
func (v ResponseValue) String() string {
	if v.IsMulti() {
		return strings.Join(v.Multi, "; ")
	}
	return v.Single
}

// Empty reports whether the response carries no usable answer.
func (v ResponseValue) Empty() bool {
	if v.IsMulti() {
		return len(v.Multi) == 0
	}
	return strings.TrimSpace(v.Single) == ""
}

func (v ResponseValue) MarshalJSON() ([]byte, error) {
	if v.IsMulti() {
		if v.Multi == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Multi)
	}
	return json.Marshal(v.Single)
}

func (v *ResponseValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("decoding response list: %w", err)
		}
		if list == nil {
			list = []string{}
		}
		*v = ResponseValue{Multi: list, multi: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding response value: %w", err)
	}
	*v = ResponseValue{Single: s}
	return nil
}

type RegistrationResponse struct {
	FieldID string        `json:"fieldId"`
	Value   ResponseValue `json:"value"`
}

type Attendee struct {
	ID               string                 `json:"id"`
	FormID           string                 `json:"formId"`
	RegistrationDate time.Time              `json:"registrationDate"`
	Responses        []RegistrationResponse `json:"responses"`
}

// Response returns the attendee's answer for fieldID.
func (a Attendee) Response(fieldID string) (ResponseValue, bool) {
	for _, r := range a.Responses {
		if r.FieldID == fieldID {
			return r.Value, true
		}
	}
	return ResponseValue{}, false
}

// Registration bundles a tour's forms with every attendee across them.
type Registration struct {
	Forms     []RegistrationForm `json:"forms"`
	Attendees []Attendee         `json:"attendees"`
}

// FindForm returns the form with the given ID.
func (r Registration) FindForm(formID string) (RegistrationForm, bool) {
	for _, f := range r.Forms {
		if f.ID == formID {
			return f, true
		}
	}
	return RegistrationForm{}, false
}

// AttendeesFor returns the attendees of one form, in registration order.
func (r Registration) AttendeesFor(formID string) []Attendee {
	var out []Attendee
	for _, a := range r.Attendees {
		if a.FormID == formID {
			out = append(out, a)
		}
	}
	return out
}
