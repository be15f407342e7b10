package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/views"
	"github.com/gin-gonic/gin"
)

// WebsiteResponse is the public rendering of a deployed tour website.
type WebsiteResponse struct {
	TourID     string                  `json:"tourId"`
	ArtistName string                  `json:"artistName"`
	TourName   string                  `json:"tourName"`
	StartDate  string                  `json:"startDate"`
	EndDate    string                  `json:"endDate"`
	ImageURL   string                  `json:"imageUrl"`
	Sections   []domain.WebsiteSection `json:"sections"`
}

// FormResponse is the public rendering of an open registration form.
type FormResponse struct {
	TourID   string             `json:"tourId"`
	TourName string             `json:"tourName,omitempty"`
	FormID   string             `json:"formId"`
	Name     string             `json:"name"`
	Fields   []domain.FormField `json:"fields"`
}

type SubmitRequest struct {
	Responses []domain.RegistrationResponse `json:"responses"`
}

// publicView handles GET /?view=website|form. Anything else is not a
// public view.
func (s *Server) publicView(c *gin.Context) {
	tourID := c.Query("tourId")
	switch c.Query("view") {
	case "website":
		if tourID == "" {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tourId is required")
			return
		}
		t, err := s.marketing.PublicWebsite(c.Request.Context(), tourID)
		if err != nil {
			s.failErr(c, err)
			return
		}
		sections := t.Website
		if sections == nil {
			sections = []domain.WebsiteSection{}
		}
		success(c, http.StatusOK, WebsiteResponse{
			TourID:     t.ID,
			ArtistName: t.ArtistName,
			TourName:   t.TourName,
			StartDate:  t.StartDate,
			EndDate:    t.EndDate,
			ImageURL:   t.ImageURL,
			Sections:   sections,
		})
	case "form":
		formID := c.Query("formId")
		if tourID == "" || formID == "" {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tourId and formId are required")
			return
		}
		form, err := s.registration.PublicForm(c.Request.Context(), tourID, formID)
		if err != nil {
			s.failErr(c, err)
			return
		}
		fields := form.Fields
		if fields == nil {
			fields = []domain.FormField{}
		}
		success(c, http.StatusOK, FormResponse{TourID: tourID, FormID: form.ID, Name: form.Name, Fields: fields})
	default:
		fail(c, http.StatusNotFound, ErrCodeNotFound, "This page is not available.")
	}
}

// submitRegistration handles POST /public/tours/:tourId/forms/:formId/submissions.
// Only open forms accept submissions here.
func (s *Server) submitRegistration(c *gin.Context) {
	tourID, formID := c.Param("tourId"), c.Param("formId")
	form, err := s.registration.PublicForm(c.Request.Context(), tourID, formID)
	if err != nil {
		s.failErr(c, err)
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body")
		return
	}
	if missing := views.MissingRequired(form, req.Responses); len(missing) > 0 {
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, fmt.Sprintf("%s is required.", missing[0]))
		return
	}

	attendee, err := s.registration.Submit(c.Request.Context(), tourID, formID, req.Responses)
	if err != nil {
		s.failErr(c, err)
		return
	}
	success(c, http.StatusCreated, attendee)
}

// exportAttendees handles GET /tours/:tourId/forms/:formId/export. Query
// parameters are attendee filters keyed by field ID.
func (s *Server) exportAttendees(c *gin.Context) {
	filters := map[string]string{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}

	var buf bytes.Buffer
	name, err := s.registration.ExportCSV(c.Request.Context(), &buf, c.Param("tourId"), c.Param("formId"), filters)
	if err != nil {
		s.failErr(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", strings.ReplaceAll(name, `"`, "")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
