package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/spf13/pflag"
)

// enumValue is a pflag.Value restricted to a fixed set of strings.
type enumValue[T ~string] struct {
	value   *T
	allowed []T
}

var _ pflag.Value = (*enumValue[domain.Role])(nil)

func newEnumValue[T ~string](value *T, allowed []T) *enumValue[T] {
	return &enumValue[T]{value: value, allowed: allowed}
}

func (e *enumValue[T]) String() string {
	if e.value == nil {
		return ""
	}
	return string(*e.value)
}

func (e *enumValue[T]) Set(s string) error {
	for _, v := range e.allowed {
		if strings.EqualFold(string(v), s) {
			*e.value = v
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", e.choices())
}

func (e *enumValue[T]) Type() string { return "string" }

func (e *enumValue[T]) choices() string {
	parts := make([]string, len(e.allowed))
	for i, v := range e.allowed {
		parts[i] = fmt.Sprintf("%q", string(v))
	}
	return strings.Join(parts, ", ")
}

func enumFlag[T ~string](fs *pflag.FlagSet, value *T, name string, allowed []T, usage string) {
	e := newEnumValue(value, allowed)
	fs.Var(e, name, fmt.Sprintf("%s (%s)", usage, e.choices()))
}

var campaignStatuses = []domain.CampaignStatus{domain.CampaignDraft, domain.CampaignScheduled, domain.CampaignSent}

// parseAssignments reads "personID:permission" pairs. A missing permission
// means read.
func parseAssignments(pairs []string) ([]domain.EventAssignment, error) {
	out := make([]domain.EventAssignment, 0, len(pairs))
	for _, pair := range pairs {
		id, perm, found := strings.Cut(pair, ":")
		if !found {
			perm = string(domain.PermissionRead)
		}
		p := domain.Permission(strings.ToLower(perm))
		if strings.TrimSpace(id) == "" || !p.Valid() {
			return nil, fmt.Errorf("invalid assignment %q: use PERSON_ID[:read|write]", pair)
		}
		out = append(out, domain.EventAssignment{PersonID: strings.TrimSpace(id), Permission: p})
	}
	return out, nil
}

// parseResponses reads "fieldID=value" pairs. Checkbox answers list their
// options separated by ";".
func parseResponses(form domain.RegistrationForm, pairs []string) ([]domain.RegistrationResponse, error) {
	types := make(map[string]domain.FieldType, len(form.Fields))
	for _, f := range form.Fields {
		types[f.ID] = f.Type
	}
	out := make([]domain.RegistrationResponse, 0, len(pairs))
	for _, pair := range pairs {
		id, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid response %q: use FIELD_ID=VALUE", pair)
		}
		r := domain.RegistrationResponse{FieldID: id, Value: domain.StringValue(value)}
		if types[id] == domain.FieldCheckbox {
			var opts []string
			for _, o := range strings.Split(value, ";") {
				if o = strings.TrimSpace(o); o != "" {
					opts = append(opts, o)
				}
			}
			r.Value = domain.ListValue(opts...)
		}
		out = append(out, r)
	}
	return out, nil
}

// splitOptions parses a comma-separated option list.
func splitOptions(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
