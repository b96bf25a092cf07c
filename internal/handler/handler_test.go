package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/service"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
)

type availabilityStub struct {
	slotsReq dto.FreeSlotsRequest
	hallsReq dto.AvailableHallsRequest
	err      error
}

func (s *availabilityStub) FreeSlots(ctx context.Context, req dto.FreeSlotsRequest) (*dto.FreeSlotsResponse, error) {
	s.slotsReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.FreeSlotsResponse{Date: req.Date, FreeSlots: []string{"08:00:00 - 09:00:00"}}, nil
}

func (s *availabilityStub) AvailableHalls(ctx context.Context, req dto.AvailableHallsRequest) (*dto.AvailableHallsResponse, error) {
	s.hallsReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AvailableHallsResponse{Date: req.Date, TimeSlot: req.TimeSlot, Available: []string{"H1", "H2"}}, nil
}

type rescheduleStub struct {
	created dto.CreateRescheduleRequest
	err     error
}

func (s *rescheduleStub) Create(ctx context.Context, req dto.CreateRescheduleRequest) (*dto.RescheduleResult, error) {
	s.created = req
	if s.err != nil {
		return &dto.RescheduleResult{State: models.RescheduleStateRejected}, s.err
	}
	return &dto.RescheduleResult{State: models.RescheduleStatePersisted, Reschedule: &models.Reschedule{ID: "r-1"}}, nil
}

func (s *rescheduleStub) Cancel(ctx context.Context, id string) (*dto.RescheduleResult, error) {
	if id != "r-1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "reschedule not found")
	}
	return &dto.RescheduleResult{State: models.RescheduleStateRemoved}, nil
}

func (s *rescheduleStub) Get(ctx context.Context, id string) (*models.Reschedule, error) {
	return &models.Reschedule{ID: id}, nil
}

func (s *rescheduleStub) ListByProfessor(ctx context.Context, professorID string) ([]models.Reschedule, error) {
	return []models.Reschedule{{ID: "r-1", ProfessorID: professorID}}, nil
}

type calendarStub struct {
	req dto.CalendarRequest
}

func (s *calendarStub) Calendar(ctx context.Context, req dto.CalendarRequest) ([]models.CalendarEvent, error) {
	s.req = req
	return []models.CalendarEvent{{ID: "s1-0", Type: models.EventTypeClass, Date: models.MustDate("2024-03-11")}}, nil
}

type exportStub struct {
	req dto.CalendarExportRequest
}

func (s *exportStub) Render(ctx context.Context, req dto.CalendarExportRequest) (*service.ExportResult, error) {
	s.req = req
	return &service.ExportResult{Filename: "timetable_professor_P.ics", ContentType: "text/calendar", Body: []byte("BEGIN:VCALENDAR")}, nil
}

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *appErrors.Error `json:"error"`
	Meta  map[string]any   `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func testRouter(h Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, "/api/v1", h)
	return router
}

func perform(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAvailabilityHandlerFreeSlots(t *testing.T) {
	stub := &availabilityStub{}
	router := testRouter(Handlers{Availability: NewAvailabilityHandler(stub, stub)})

	w := perform(router, http.MethodGet, "/api/v1/availability/free-slots?date=2024-03-11&professor_id=P&branch=CSE&semester=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.FreeSlotsRequest{Date: "2024-03-11", ProfessorID: "P", Branch: "CSE", Semester: 3}, stub.slotsReq)
	assert.Contains(t, w.Body.String(), `"free_slots":["08:00:00 - 09:00:00"]`)

	w = perform(router, http.MethodGet, "/api/v1/availability/free-slots?date=2024-03-11&semester=third", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decodeEnvelope(t, w).Error.Code)
}

func TestAvailabilityHandlerHalls(t *testing.T) {
	stub := &availabilityStub{}
	router := testRouter(Handlers{Availability: NewAvailabilityHandler(stub, stub)})

	w := perform(router, http.MethodGet, "/api/v1/availability/halls?date=2024-03-11&time_slot=10:00:00+-+11:00:00", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "10:00:00 - 11:00:00", stub.hallsReq.TimeSlot)
	assert.Contains(t, w.Body.String(), `"available_halls":["H1","H2"]`)

	stub.err = appErrors.Clone(appErrors.ErrValidation, "malformed time slot")
	w = perform(router, http.MethodGet, "/api/v1/availability/halls?date=2024-03-11&time_slot=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stub.err = appErrors.Store(assert.AnError)
	w = perform(router, http.MethodGet, "/api/v1/availability/halls?date=2024-03-11&time_slot=10:00:00+-+11:00:00", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestRescheduleHandlerCreate(t *testing.T) {
	stub := &rescheduleStub{}
	router := testRouter(Handlers{Reschedule: NewRescheduleHandler(stub)})
	payload := []byte(`{"course_id":"c1","professor_id":"P","lecture_hall":"H1","type":"class","original_date":"2024-03-11","original_start_time":"10:00:00","original_end_time":"11:00:00","rescheduled_date":"2024-03-13","new_start_time":"14:00:00"}`)

	w := perform(router, http.MethodPost, "/api/v1/reschedules", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "H1", stub.created.LectureHall)
	assert.Contains(t, w.Body.String(), `"state":"PERSISTED"`)

	w = perform(router, http.MethodPost, "/api/v1/reschedules", []byte(`{"course_id":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stub.err = appErrors.Clone(appErrors.ErrConflict, "hall already booked")
	w = perform(router, http.MethodPost, "/api/v1/reschedules", payload)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, appErrors.ErrConflict.Code, decodeEnvelope(t, w).Error.Code)

	stub.err = appErrors.Clone(appErrors.ErrInvalidHall, "unknown lecture hall")
	w = perform(router, http.MethodPost, "/api/v1/reschedules", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRescheduleHandlerCancelAndList(t *testing.T) {
	router := testRouter(Handlers{Reschedule: NewRescheduleHandler(&rescheduleStub{})})

	w := perform(router, http.MethodDelete, "/api/v1/reschedules/r-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"REMOVED"`)

	w = perform(router, http.MethodDelete, "/api/v1/reschedules/r-9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(router, http.MethodGet, "/api/v1/professors/P/reschedules", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"professor_id":"P"`)
}

func TestCalendarHandler(t *testing.T) {
	calendar := &calendarStub{}
	exporter := &exportStub{}
	router := testRouter(Handlers{Calendar: NewCalendarHandler(calendar, exporter)})

	w := perform(router, http.MethodGet, "/api/v1/calendar?branch=CSE&semester=3&lab_group=L1&weeks=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.CalendarRequest{Branch: "CSE", Semester: 3, LabGroup: "L1", Weeks: 2}, calendar.req)
	assert.EqualValues(t, 1, decodeEnvelope(t, w).Meta["count"])

	w = perform(router, http.MethodGet, "/api/v1/calendar/export?professor_id=P&format=ics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ics", exporter.req.Format)
	assert.Equal(t, "P", exporter.req.ProfessorID)
	assert.Equal(t, "text/calendar", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="timetable_professor_P.ics"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "BEGIN:VCALENDAR", w.Body.String())
}

func TestMetricsHandlerEndpoints(t *testing.T) {
	router := testRouter(Handlers{Metrics: NewMetricsHandler(service.NewMetricsService(), nil)})

	w := perform(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutines_total")
}

type failingPinger struct{}

func (failingPinger) PingContext(ctx context.Context) error { return assert.AnError }

func TestMetricsHandlerReadyUnavailable(t *testing.T) {
	router := testRouter(Handlers{Metrics: NewMetricsHandler(nil, failingPinger{})})

	w := perform(router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = perform(router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
