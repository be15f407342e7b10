package mutation

import "github.com/alexanderramin/showrunner/internal/domain"

func withRegistration(t domain.Tour, fn func(domain.Registration) domain.Registration) domain.Tour {
	r := fn(t.RegistrationOrEmpty())
	t.Registration = &r
	return t
}

// AddForm appends a registration form.
func AddForm(t domain.Tour, f domain.RegistrationForm) domain.Tour {
	if f.Fields == nil {
		f.Fields = []domain.FormField{}
	}
	return withRegistration(t, func(r domain.Registration) domain.Registration {
		r.Forms = appendItem(r.Forms, f)
		return r
	})
}

// UpdateForm replaces the form returned by fn.
func UpdateForm(t domain.Tour, id string, fn func(domain.RegistrationForm) (domain.RegistrationForm, error)) (domain.Tour, error) {
	r := t.RegistrationOrEmpty()
	forms, found, err := replaceByID(r.Forms, formID, id, fn)
	if !found {
		return t, domain.NotFound("form", id)
	}
	if err != nil {
		return t, err
	}
	r.Forms = forms
	t.Registration = &r
	return t, nil
}

// AddField appends a field to a form.
func AddField(t domain.Tour, formID string, f domain.FormField) (domain.Tour, error) {
	return UpdateForm(t, formID, func(form domain.RegistrationForm) (domain.RegistrationForm, error) {
		form.Fields = appendItem(form.Fields, f)
		return form, nil
	})
}

// UpdateField replaces one field wholesale, keeping its ID.
func UpdateField(t domain.Tour, formID string, f domain.FormField) (domain.Tour, error) {
	return UpdateForm(t, formID, func(form domain.RegistrationForm) (domain.RegistrationForm, error) {
		fields, found, _ := replaceByID(form.Fields, fieldID, f.ID, func(domain.FormField) (domain.FormField, error) {
			return f, nil
		})
		if !found {
			return form, domain.NotFound("field", f.ID)
		}
		form.Fields = fields
		return form, nil
	})
}

// AddAttendee records a submission. The form's open/closed status is not
// consulted here.
func AddAttendee(t domain.Tour, a domain.Attendee) domain.Tour {
	return withRegistration(t, func(r domain.Registration) domain.Registration {
		r.Attendees = appendItem(r.Attendees, a)
		return r
	})
}
