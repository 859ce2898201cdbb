package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource-console/models"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(opts ...Option) *Server {
	return New(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestTasks_CRUD(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/tasks", `{"title":"Write report","description":"","completed":false}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.Task](t, rec)
	assert.Equal(t, int64(1), created.ID)

	rec = do(t, s, http.MethodPut, "/tasks/1", `{"title":"Write report","description":"","completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.Task](t, rec).Completed)

	rec = do(t, s, http.MethodGet, "/tasks", "")
	assert.Len(t, decode[[]models.Task](t, rec), 1)

	rec = do(t, s, http.MethodDelete, "/tasks/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodDelete, "/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Task not found"}`, rec.Body.String())
}

func TestTasks_BadID(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodDelete, "/tasks/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestExpenses_FiltersAndTotal(t *testing.T) {
	s := newTestServer()
	for _, body := range []string{
		`{"amount":12.5,"category":"food","date":"2024-01-01"}`,
		`{"amount":30,"category":"transport","date":"2024-01-15"}`,
		`{"amount":7.5,"category":"food","date":"2024-02-01"}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/expenses", body).Code)
	}

	rec := do(t, s, http.MethodGet, "/api/expenses?start_date=2024-01-01&end_date=2024-01-15", "")
	assert.Len(t, decode[[]models.Expense](t, rec), 2)

	rec = do(t, s, http.MethodGet, "/api/expenses/category/food", "")
	food := decode[[]models.Expense](t, rec)
	require.Len(t, food, 2)
	for _, e := range food {
		assert.Equal(t, models.CategoryFood, e.Category)
	}

	rec = do(t, s, http.MethodGet, "/api/expenses/total", "")
	total := decode[models.ExpenseTotal](t, rec)
	assert.True(t, decimal.NewFromInt(50).Equal(total.Total))
	assert.True(t, decimal.NewFromInt(20).Equal(total.ByCategory[models.CategoryFood]))
}

func TestExpenses_CreateDefaultsDate(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/expenses", `{"amount":5,"category":"other"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "2024-05-01", decode[models.Expense](t, rec).Date.String())
}

func TestExpenses_RejectsInvalid(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/expenses", `{"amount":-1,"category":"yachts","date":"2024-01-01"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "amount")
	assert.Contains(t, rec.Body.String(), "category")
}

func TestExpenses_PartialUpdate(t *testing.T) {
	s := newTestServer()
	do(t, s, http.MethodPost, "/api/expenses", `{"amount":10,"category":"food","description":"lunch","date":"2024-01-01"}`)

	rec := do(t, s, http.MethodPut, "/api/expenses/1", `{"amount":11}`)

	require.Equal(t, http.StatusOK, rec.Code)
	e := decode[models.Expense](t, rec)
	assert.True(t, decimal.NewFromInt(11).Equal(e.Amount))
	assert.Equal(t, "lunch", e.Description)
	assert.Equal(t, models.CategoryFood, e.Category)
}

func TestBookings_CreateComputesTotal(t *testing.T) {
	s := newTestServer()
	do(t, s, http.MethodPost, "/venues", `{"name":"Hall","location":"Town","capacity":100}`)
	do(t, s, http.MethodPost, "/events", `{"name":"Gig","date":"2024-06-01T19:00:00","venue_id":1}`)
	do(t, s, http.MethodPost, "/ticket-types", `{"name":"General","price":25.00,"quantity_available":10,"event_id":1}`)

	rec := do(t, s, http.MethodPost, "/bookings",
		`{"user_name":"Ann","user_email":"ann@example.com","quantity":2,"event_id":1,"ticket_type_id":1}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	b := decode[models.Booking](t, rec)
	assert.True(t, decimal.NewFromInt(50).Equal(b.TotalPrice))
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Regexp(t, `^[A-Z0-9]{8}$`, b.ConfirmationCode)
	assert.True(t, fixedNow.Equal(b.BookingDate.Time))
}

func TestBookings_Availability(t *testing.T) {
	s := newTestServer()
	do(t, s, http.MethodPost, "/venues", `{"name":"Hall","location":"Town","capacity":100}`)
	do(t, s, http.MethodPost, "/events", `{"name":"Gig","date":"2024-06-01T19:00:00","venue_id":1}`)
	do(t, s, http.MethodPost, "/ticket-types", `{"name":"General","price":10,"quantity_available":3,"event_id":1}`)

	booking := `{"user_name":"Ann","user_email":"ann@example.com","quantity":2,"event_id":1,"ticket_type_id":1}`
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/bookings", booking).Code)

	rec := do(t, s, http.MethodPost, "/bookings", booking)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Not enough tickets available"}`, rec.Body.String())

	rec = do(t, s, http.MethodPatch, "/bookings/1/status", `{"status":"cancelled"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.BookingCancelled, decode[models.Booking](t, rec).Status)

	rec = do(t, s, http.MethodGet, "/events/1/available-tickets", "")
	avail := decode[[]models.AvailableTickets](t, rec)
	require.Len(t, avail, 1)
	assert.Equal(t, 3, avail[0].Available)

	assert.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/bookings", booking).Code)
}

func TestBookings_WrongEventForTicketType(t *testing.T) {
	s := newTestServer(WithSeed())

	rec := do(t, s, http.MethodPost, "/bookings",
		`{"user_name":"Ann","user_email":"ann@example.com","quantity":1,"event_id":2,"ticket_type_id":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookings_UpdateQuantityRecomputesTotal(t *testing.T) {
	s := newTestServer(WithSeed())

	rec := do(t, s, http.MethodPut, "/bookings/1", `{"quantity":3}`)

	require.Equal(t, http.StatusOK, rec.Code)
	b := decode[models.Booking](t, rec)
	assert.Equal(t, 3, b.Quantity)
	assert.True(t, decimal.NewFromInt(225).Equal(b.TotalPrice))
	assert.Equal(t, "John Doe", b.UserName)
}

func TestBookings_UpdateRejectsEmptyValues(t *testing.T) {
	s := newTestServer(WithSeed())

	for _, body := range []string{`{"quantity":0}`, `{"user_email":""}`, `{"quantity":0,"user_email":""}`} {
		rec := do(t, s, http.MethodPut, "/bookings/1", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, body)
	}

	rec := do(t, s, http.MethodGet, "/bookings/1", "")
	b := decode[models.Booking](t, rec)
	assert.Equal(t, 2, b.Quantity)
	assert.Equal(t, "john@example.com", b.UserEmail)
	assert.True(t, decimal.NewFromInt(150).Equal(b.TotalPrice))
}

func TestTicketTypes_FreeTicketsAllowed(t *testing.T) {
	s := newTestServer(WithSeed())

	rec := do(t, s, http.MethodPost, "/ticket-types", `{"name":"Guest list","price":0,"quantity_available":5,"event_id":1}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, decode[models.TicketType](t, rec).Price.IsZero())
}

func TestBookings_Search(t *testing.T) {
	s := newTestServer(WithSeed())

	rec := do(t, s, http.MethodGet, "/bookings/search?event=rock", "")
	found := decode[[]models.Booking](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, "John Doe", found[0].UserName)
	require.NotNil(t, found[0].Event)
	assert.Equal(t, "Rock Concert", found[0].Event.Name)

	rec = do(t, s, http.MethodGet, "/bookings/search?venue=theater&ticket_type=front", "")
	assert.Len(t, decode[[]models.Booking](t, rec), 2)
}

func TestBookings_InvalidStatus(t *testing.T) {
	rec := do(t, newTestServer(WithSeed()), http.MethodPatch, "/bookings/1/status", `{"status":"refunded"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestEvents_ListExpandsVenue(t *testing.T) {
	rec := do(t, newTestServer(WithSeed()), http.MethodGet, "/events", "")

	events := decode[[]models.Event](t, rec)
	require.Len(t, events, 4)
	require.NotNil(t, events[0].Venue)
	assert.Equal(t, "Grand Arena", events[0].Venue.Name)
}

func TestEvents_Revenue(t *testing.T) {
	rec := do(t, newTestServer(WithSeed()), http.MethodGet, "/events/1/revenue", "")

	r := decode[models.EventRevenue](t, rec)
	assert.Equal(t, "Rock Concert", r.EventName)
	assert.True(t, decimal.NewFromInt(150).Equal(r.TotalRevenue))
	assert.Equal(t, 2, r.TicketsSold)
	assert.Equal(t, 4098, r.TicketsAvailable)
}

func TestVenues_Occupancy(t *testing.T) {
	rec := do(t, newTestServer(WithSeed()), http.MethodGet, "/venues/3/occupancy", "")

	o := decode[models.VenueOccupancy](t, rec)
	assert.Equal(t, 1, o.TotalBookings)
	assert.InDelta(t, 0.33, o.OccupancyRate, 0.001)
}

func TestVenues_NotFound(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/venues/9/events", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Venue not found"}`, rec.Body.String())
}

func TestStats(t *testing.T) {
	rec := do(t, newTestServer(WithSeed()), http.MethodGet, "/booking-system/stats", "")

	stats := decode[models.BookingStats](t, rec)
	assert.Equal(t, 4, stats.TotalEvents)
	assert.Equal(t, 3, stats.TotalVenues)
	assert.Equal(t, 3, stats.TotalBookings)
	assert.True(t, decimal.NewFromInt(390).Equal(stats.TotalRevenue))
	assert.Equal(t, 10400-7, stats.AvailableTickets)
}

func TestServer_TokenRequired(t *testing.T) {
	s := newTestServer(WithToken("secret"))

	rec := do(t, s, http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, s.Requests())
}
