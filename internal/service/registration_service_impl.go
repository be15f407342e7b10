package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/mutation"
	"github.com/alexanderramin/showrunner/internal/views"
)

type registrationService struct {
	ws *Workspace
}

func NewRegistrationService(ws *Workspace) RegistrationService {
	return &registrationService{ws: ws}
}

func (s *registrationService) editTour(ctx context.Context, name, tourID string, fields map[string]any, fn func(domain.Tour) (domain.Tour, error)) error {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["tour_id"] = tourID
	return s.ws.mutate(ctx, name, fields, func(st domain.State) (domain.State, []domain.StateKey, error) {
		if _, err := requireManager(st, name); err != nil {
			return st, nil, err
		}
		t, err := resolveTour(st, tourID)
		if err != nil {
			return st, nil, err
		}
		next, err := mutation.UpdateTour(st, t.ID, fn)
		return next, changed(domain.KeyTours), err
	})
}

func (s *registrationService) AddForm(ctx context.Context, tourID string) (domain.RegistrationForm, error) {
	form := domain.RegistrationForm{
		ID:     s.ws.newID("form"),
		Name:   "New Registration Form",
		Status: domain.FormOpen,
		Fields: []domain.FormField{},
	}
	err := s.editTour(ctx, "add-form", tourID, nil, func(t domain.Tour) (domain.Tour, error) {
		return mutation.AddForm(t, form), nil
	})
	if err != nil {
		return domain.RegistrationForm{}, err
	}
	return form, nil
}

// UpdateForm replaces a form's name, status and fields.
func (s *registrationService) UpdateForm(ctx context.Context, tourID string, form domain.RegistrationForm) error {
	if strings.TrimSpace(form.Name) == "" {
		return invalid("Please enter a form name.")
	}
	if form.Status != domain.FormOpen && form.Status != domain.FormClosed {
		return invalid(fmt.Sprintf("Unknown form status %q.", form.Status))
	}
	return s.editTour(ctx, "update-form", tourID, map[string]any{"form_id": form.ID}, func(t domain.Tour) (domain.Tour, error) {
		return mutation.UpdateForm(t, form.ID, func(domain.RegistrationForm) (domain.RegistrationForm, error) {
			if form.Fields == nil {
				form.Fields = []domain.FormField{}
			}
			return form, nil
		})
	})
}

func (s *registrationService) ToggleFormStatus(ctx context.Context, tourID, formID string) (domain.FormStatus, error) {
	var status domain.FormStatus
	err := s.editTour(ctx, "toggle-form-status", tourID, map[string]any{"form_id": formID}, func(t domain.Tour) (domain.Tour, error) {
		return mutation.UpdateForm(t, formID, func(f domain.RegistrationForm) (domain.RegistrationForm, error) {
			if f.IsOpen() {
				f.Status = domain.FormClosed
			} else {
				f.Status = domain.FormOpen
			}
			status = f.Status
			return f, nil
		})
	})
	return status, err
}

func (s *registrationService) DeleteForm(ctx context.Context, tourID, formID string) (bool, error) {
	const prompt = "Are you sure you want to delete this form and all its attendee data? This cannot be undone."
	return s.ws.destroy(ctx, "delete-form", prompt, map[string]any{"tour_id": tourID, "form_id": formID},
		func(st domain.State) (domain.State, []domain.StateKey, error) {
			if _, err := requireManager(st, "delete form"); err != nil {
				return st, nil, err
			}
			t, err := resolveTour(st, tourID)
			if err != nil {
				return st, nil, err
			}
			return mutation.Delete(st, mutation.Target{Kind: mutation.KindForm, TourID: t.ID, ID: formID})
		})
}

func defaultFieldLabel(t domain.FieldType) string {
	name := string(t)
	if name == "" {
		return "New Field"
	}
	return "New " + strings.ToUpper(name[:1]) + name[1:] + " Field"
}

func validateField(f domain.FormField) error {
	if !f.Type.Valid() {
		return invalid(fmt.Sprintf("Unknown field type %q.", f.Type))
	}
	if strings.TrimSpace(f.Label) == "" {
		return invalid("Please enter a field label.")
	}
	if f.Type.HasOptions() && len(f.Options) == 0 {
		return invalid("Please add at least one option.")
	}
	return nil
}

// AddField appends a field. A missing label becomes "New <Type> Field" and
// option fields without options get two placeholders.
func (s *registrationService) AddField(ctx context.Context, tourID, formID string, in FieldInput) (domain.FormField, error) {
	field := domain.FormField{
		ID:          s.ws.newID("field"),
		Type:        in.Type,
		Label:       strings.TrimSpace(in.Label),
		Placeholder: in.Placeholder,
		Required:    in.Required,
		Options:     in.Options,
	}
	if field.Label == "" {
		field.Label = defaultFieldLabel(in.Type)
	}
	if field.Type.HasOptions() && len(field.Options) == 0 {
		field.Options = []string{"Option 1", "Option 2"}
	}
	if err := validateField(field); err != nil {
		return domain.FormField{}, err
	}
	err := s.editTour(ctx, "add-field", tourID, map[string]any{"form_id": formID}, func(t domain.Tour) (domain.Tour, error) {
		return mutation.AddField(t, formID, field)
	})
	if err != nil {
		return domain.FormField{}, err
	}
	return field, nil
}

func (s *registrationService) UpdateField(ctx context.Context, tourID, formID string, field domain.FormField) error {
	if err := validateField(field); err != nil {
		return err
	}
	return s.editTour(ctx, "update-field", tourID, map[string]any{"form_id": formID, "field_id": field.ID}, func(t domain.Tour) (domain.Tour, error) {
		return mutation.UpdateField(t, formID, field)
	})
}

func (s *registrationService) DeleteField(ctx context.Context, tourID, formID, fieldID string) error {
	fields := map[string]any{"tour_id": tourID, "form_id": formID, "field_id": fieldID}
	return s.ws.mutate(ctx, "delete-field", fields, func(st domain.State) (domain.State, []domain.StateKey, error) {
		if _, err := requireManager(st, "delete field"); err != nil {
			return st, nil, err
		}
		t, err := resolveTour(st, tourID)
		if err != nil {
			return st, nil, err
		}
		return mutation.Delete(st, mutation.Target{Kind: mutation.KindField, TourID: t.ID, ParentID: formID, ID: fieldID})
	})
}

// Submit needs no session. Responses must reference fields of the form.
func (s *registrationService) Submit(ctx context.Context, tourID, formID string, responses []domain.RegistrationResponse) (domain.Attendee, error) {
	var attendee domain.Attendee
	err := s.ws.mutate(ctx, "submit-registration", map[string]any{"tour_id": tourID, "form_id": formID}, func(st domain.State) (domain.State, []domain.StateKey, error) {
		t, ok := st.FindTour(tourID)
		if !ok {
			return st, nil, domain.NotFound("tour", tourID)
		}
		form, ok := t.RegistrationOrEmpty().FindForm(formID)
		if !ok {
			return st, nil, domain.NotFound("form", formID)
		}
		known := make(map[string]bool, len(form.Fields))
		for _, f := range form.Fields {
			known[f.ID] = true
		}
		for _, r := range responses {
			if !known[r.FieldID] {
				return st, nil, invalid(fmt.Sprintf("Unknown field %q.", r.FieldID))
			}
		}
		attendee = domain.Attendee{
			ID:               s.ws.newID("att"),
			FormID:           formID,
			RegistrationDate: s.ws.now().UTC(),
			Responses:        append([]domain.RegistrationResponse{}, responses...),
		}
		next, err := mutation.UpdateTour(st, t.ID, func(tour domain.Tour) (domain.Tour, error) {
			return mutation.AddAttendee(tour, attendee), nil
		})
		return next, changed(domain.KeyTours), err
	})
	if err != nil {
		return domain.Attendee{}, err
	}
	return attendee, nil
}

func (s *registrationService) PublicForm(_ context.Context, tourID, formID string) (domain.RegistrationForm, error) {
	t, ok := s.ws.Snapshot().FindTour(tourID)
	if !ok {
		return domain.RegistrationForm{}, domain.NotFound("form", formID)
	}
	form, ok := t.RegistrationOrEmpty().FindForm(formID)
	if !ok || !form.IsOpen() {
		return domain.RegistrationForm{}, domain.NotFound("form", formID)
	}
	return form, nil
}

func (s *registrationService) formAttendees(tourID, formID string, filters map[string]string) (domain.Tour, domain.RegistrationForm, []domain.Attendee, error) {
	st := s.ws.Snapshot()
	if _, err := requireManager(st, "view attendees"); err != nil {
		return domain.Tour{}, domain.RegistrationForm{}, nil, err
	}
	t, err := resolveTour(st, tourID)
	if err != nil {
		return domain.Tour{}, domain.RegistrationForm{}, nil, err
	}
	reg := t.RegistrationOrEmpty()
	form, ok := reg.FindForm(formID)
	if !ok {
		return t, form, nil, domain.NotFound("form", formID)
	}
	return t, form, views.FilterAttendees(form, reg.AttendeesFor(formID), filters), nil
}

func (s *registrationService) Attendees(_ context.Context, tourID, formID string, filters map[string]string) ([]domain.Attendee, error) {
	_, _, attendees, err := s.formAttendees(tourID, formID, filters)
	return attendees, err
}

func (s *registrationService) DeleteAttendee(ctx context.Context, tourID, attendeeID string) (bool, error) {
	return s.ws.destroy(ctx, "delete-attendee", "Are you sure you want to remove this attendee?",
		map[string]any{"tour_id": tourID, "attendee_id": attendeeID},
		func(st domain.State) (domain.State, []domain.StateKey, error) {
			if _, err := requireManager(st, "delete attendee"); err != nil {
				return st, nil, err
			}
			t, err := resolveTour(st, tourID)
			if err != nil {
				return st, nil, err
			}
			return mutation.Delete(st, mutation.Target{Kind: mutation.KindAttendee, TourID: t.ID, ID: attendeeID})
		})
}

func (s *registrationService) ExportCSV(_ context.Context, w io.Writer, tourID, formID string, filters map[string]string) (string, error) {
	t, form, attendees, err := s.formAttendees(tourID, formID, filters)
	if err != nil {
		return "", err
	}
	if err := views.WriteAttendeeCSV(w, form, attendees); err != nil {
		if errors.Is(err, views.ErrNoAttendees) {
			return "", invalid("No attendee data to download for this form.")
		}
		return "", fmt.Errorf("writing attendee csv: %w", err)
	}
	return views.CSVFileName(t.TourName, form.Name), nil
}
