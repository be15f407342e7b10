package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderramin/showrunner/internal/blob"
	"github.com/alexanderramin/showrunner/internal/domain"
	"github.com/alexanderramin/showrunner/internal/metrics"
	"github.com/alexanderramin/showrunner/internal/repository"
	"github.com/alexanderramin/showrunner/internal/service"
	"github.com/alexanderramin/showrunner/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type envelope[T any] struct {
	Success bool       `json:"success"`
	Data    T          `json:"data"`
	Error   *ErrorInfo `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

var requiredName = domain.FormField{ID: "field-1", Type: domain.FieldText, Label: "Full Name", Required: true}

func testState() domain.State {
	people := []domain.Person{
		testutil.NewTestPerson("person-1", "Alex Johnson", testutil.WithRole(domain.RoleTourManager)),
		testutil.NewTestPerson("person-2", "Casey Lee"),
	}
	tour := testutil.NewTestTour("tour-1", "Brightside World Tour",
		testutil.WithWebsite(true, domain.WebsiteSection{ID: "ws-1", Type: domain.SectionHero, Content: domain.SectionContent{Headline: "Brightside"}}),
		testutil.WithForms(
			domain.RegistrationForm{ID: "form-1", Name: "General Admission", Status: domain.FormOpen, Fields: []domain.FormField{requiredName}},
			domain.RegistrationForm{ID: "form-2", Name: "VIP", Status: domain.FormClosed, Fields: []domain.FormField{}},
		),
	)
	dark := testutil.NewTestTour("tour-2", "Dark Tour", testutil.WithWebsite(false))
	return testutil.NewTestState(people, []domain.Tour{tour, dark}, nil)
}

type fixture struct {
	handler http.Handler
	ws      *service.Workspace
}

func newFixture(t *testing.T, reg *prometheus.Registry) *fixture {
	t.Helper()
	repo := repository.NewBlobStateRepo(blob.NewMemory(), zap.NewNop(), testState)
	var observers []service.UseCaseObserver
	var gatherer prometheus.Gatherer
	if reg != nil {
		rec, err := metrics.NewRecorder(reg)
		require.NoError(t, err)
		observers = append(observers, rec)
		gatherer = reg
	}
	ws, err := service.OpenWorkspace(context.Background(), repo,
		service.WithClock(testutil.FixedClock(testutil.FixedNow)),
		service.WithIDGenerator(testutil.SequentialIDs()),
		service.WithObservers(observers...),
	)
	require.NoError(t, err)

	return &fixture{
		ws: ws,
		handler: NewHandler(Deps{
			Marketing:    service.NewMarketingService(ws),
			Registration: service.NewRegistrationService(ws),
			Gatherer:     gatherer,
		}),
	}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) get(target string) *httptest.ResponseRecorder {
	return f.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func TestPublicWebsite(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.get("/?view=website&tourId=tour-1")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[WebsiteResponse](t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Brightside World Tour", env.Data.TourName)
	require.Len(t, env.Data.Sections, 1)
	assert.Equal(t, "Brightside", env.Data.Sections[0].Content.Headline)

	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"not deployed", "/?view=website&tourId=tour-2", http.StatusNotFound, ErrCodeNotFound},
		{"unknown tour", "/?view=website&tourId=tour-9", http.StatusNotFound, ErrCodeNotFound},
		{"missing tour", "/?view=website", http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown view", "/?view=dashboard", http.StatusNotFound, ErrCodeNotFound},
		{"no view", "/", http.StatusNotFound, ErrCodeNotFound},
		{"unknown route", "/admin", http.StatusNotFound, ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.get(tt.target)
			assert.Equal(t, tt.status, rec.Code)
			env := decode[json.RawMessage](t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestPublicForm(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.get("/?view=form&tourId=tour-1&formId=form-1")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[FormResponse](t, rec)
	want := FormResponse{TourID: "tour-1", FormID: "form-1", Name: "General Admission", Fields: []domain.FormField{requiredName}}
	if diff := cmp.Diff(want, env.Data); diff != "" {
		t.Errorf("form mismatch (-want +got):\n%s", diff)
	}

	rec = f.get("/?view=form&tourId=tour-1&formId=form-2")
	assert.Equal(t, http.StatusNotFound, rec.Code, "closed forms are not public")

	rec = f.get("/?view=form&tourId=tour-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func submit(f *fixture, formID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/public/tours/tour-1/forms/"+formID+"/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return f.do(req)
}

func TestSubmitRegistration(t *testing.T) {
	f := newFixture(t, nil)

	rec := submit(f, "form-1", `{"responses":[{"fieldId":"field-1","value":"Bob Smith"}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decode[domain.Attendee](t, rec)
	assert.Equal(t, "form-1", env.Data.FormID)
	assert.Equal(t, "Bob Smith", env.Data.Responses[0].Value.String())

	tour, _ := f.ws.Snapshot().FindTour("tour-1")
	assert.Len(t, tour.RegistrationOrEmpty().AttendeesFor("form-1"), 1)
}

func TestSubmitRegistrationRejected(t *testing.T) {
	tests := []struct {
		name    string
		formID  string
		body    string
		status  int
		message string
	}{
		{"missing required", "form-1", `{"responses":[{"fieldId":"field-1","value":"  "}]}`, http.StatusBadRequest, "Full Name is required."},
		{"unknown field", "form-1", `{"responses":[{"fieldId":"field-1","value":"Bob"},{"fieldId":"field-9","value":"x"}]}`, http.StatusBadRequest, `Unknown field "field-9".`},
		{"malformed", "form-1", `{"responses":`, http.StatusBadRequest, "Invalid request body"},
		{"closed form", "form-2", `{"responses":[]}`, http.StatusNotFound, "This page is not available."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)

			rec := submit(f, tt.formID, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			env := decode[json.RawMessage](t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.message, env.Error.Message)

			tour, _ := f.ws.Snapshot().FindTour("tour-1")
			assert.Empty(t, tour.RegistrationOrEmpty().Attendees)
		})
	}
}

func TestExportAttendees(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.get("/tours/tour-1/forms/form-1/export")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No attendee data to download for this form.", decode[json.RawMessage](t, rec).Error.Message)

	require.Equal(t, http.StatusCreated, submit(f, "form-1", `{"responses":[{"fieldId":"field-1","value":"Bob Smith"}]}`).Code)

	rec = f.get("/tours/tour-1/forms/form-1/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Brightside_World_Tour_General_Admission_attendees.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Registration Date,Full Name\n2024-08-16T12:00:00.000Z,\"Bob Smith\"", rec.Body.String())

	rec = f.get("/tours/tour-1/forms/form-1/export?field-1=Alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "filters apply to the export")
}

func TestExportAttendeesRequiresManager(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, service.NewAuthService(f.ws).Logout(context.Background()))

	rec := f.get("/tours/tour-1/forms/form-1/export")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIDAndCORS(t *testing.T) {
	f := newFixture(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	req.Header.Set("Origin", "https://fans.example.com")
	rec := f.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = f.get("/healthz")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, prometheus.NewRegistry())

	require.Equal(t, http.StatusCreated, submit(f, "form-1", `{"responses":[{"fieldId":"field-1","value":"Bob"}]}`).Code)

	rec := f.get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `showrunner_use_case_total{success="true",use_case="submit-registration"} 1`)

	assert.Equal(t, http.StatusNotFound, newFixture(t, nil).get("/metrics").Code)
}
