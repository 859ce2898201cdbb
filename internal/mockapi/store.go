package mockapi

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"resource-console/models"
)

type store struct {
	mu sync.Mutex

	tasks       []models.Task
	expenses    []models.Expense
	venues      []models.Venue
	events      []models.Event
	ticketTypes []models.TicketType
	bookings    []models.Booking

	lastID map[string]int64
}

func newStore() *store {
	return &store{lastID: map[string]int64{}}
}

func (st *store) nextID(kind string) int64 {
	st.lastID[kind]++
	return st.lastID[kind]
}

func indexByID[T interface{ GetID() int64 }](rows []T, id int64) int {
	for i := range rows {
		if rows[i].GetID() == id {
			return i
		}
	}
	return -1
}

func removeAt[T any](rows []T, i int) []T {
	return append(rows[:i], rows[i+1:]...)
}

func (st *store) venue(id int64) (models.Venue, bool) {
	if i := indexByID(st.venues, id); i >= 0 {
		return st.venues[i], true
	}
	return models.Venue{}, false
}

func (st *store) event(id int64) (models.Event, bool) {
	if i := indexByID(st.events, id); i >= 0 {
		return st.events[i], true
	}
	return models.Event{}, false
}

func (st *store) ticketType(id int64) (models.TicketType, bool) {
	if i := indexByID(st.ticketTypes, id); i >= 0 {
		return st.ticketTypes[i], true
	}
	return models.TicketType{}, false
}

// withVenue expands the venue of an event.
func (st *store) withVenue(e models.Event) models.Event {
	if v, ok := st.venue(e.VenueID); ok {
		e.Venue = &v
	}
	return e
}

// withDetails expands the event and ticket type of a booking.
func (st *store) withDetails(b models.Booking) models.Booking {
	if e, ok := st.event(b.EventID); ok {
		b.Event = &e
	}
	if t, ok := st.ticketType(b.TicketTypeID); ok {
		b.TicketType = &t
	}
	return b
}

// booked counts tickets of a type held by bookings that are not cancelled.
func (st *store) booked(ticketTypeID int64) int {
	n := 0
	for _, b := range st.bookings {
		if b.TicketTypeID == ticketTypeID && b.Status != models.BookingCancelled {
			n += b.Quantity
		}
	}
	return n
}

func (st *store) available(t models.TicketType) int {
	return t.QuantityAvailable - st.booked(t.ID)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// seed loads a small demo data set relative to now.
func (st *store) seed(now time.Time) {
	day := models.NewDate
	for _, e := range []models.Expense{
		{Amount: decimal.RequireFromString("25.50"), Category: models.CategoryFood, Description: "Groceries", Date: day(2023, 11, 1)},
		{Amount: decimal.RequireFromString("45.00"), Category: models.CategoryTransport, Description: "Uber ride", Date: day(2023, 11, 2)},
		{Amount: decimal.RequireFromString("15.99"), Category: models.CategoryEntertainment, Description: "Movie ticket", Date: day(2023, 11, 3)},
		{Amount: decimal.RequireFromString("120.00"), Category: models.CategoryUtilities, Description: "Electricity bill", Date: day(2023, 11, 5)},
		{Amount: decimal.RequireFromString("800.00"), Category: models.CategoryRent, Description: "Monthly rent", Date: day(2023, 11, 1)},
	} {
		e.ID = st.nextID("expense")
		st.expenses = append(st.expenses, e)
	}

	for _, v := range []models.Venue{
		{Name: "Grand Arena", Location: "Downtown", Capacity: 5000, Description: "A large venue for concerts and sports events"},
		{Name: "City Theater", Location: "Westside", Capacity: 1000, Description: "A medium-sized theater for plays and performances"},
		{Name: "Community Hall", Location: "Eastside", Capacity: 300, Description: "A small venue for community events"},
	} {
		v.ID = st.nextID("venue")
		st.venues = append(st.venues, v)
	}

	at := func(days int) models.Timestamp {
		return models.Timestamp{Time: now.Add(time.Duration(days) * 24 * time.Hour).Truncate(time.Second)}
	}
	for _, e := range []models.Event{
		{Name: "Rock Concert", Description: "Annual rock music festival", Date: at(30), VenueID: 1},
		{Name: "Classical Symphony", Description: "Mozart and Beethoven classics", Date: at(15), VenueID: 2},
		{Name: "Comedy Night", Description: "Stand-up comedy show", Date: at(7), VenueID: 3},
		{Name: "Jazz Festival", Description: "Featuring top jazz artists", Date: at(45), VenueID: 1},
	} {
		e.ID = st.nextID("event")
		st.events = append(st.events, e)
	}

	for _, t := range []models.TicketType{
		{Name: "VIP", Price: decimal.NewFromInt(150), QuantityAvailable: 100, EventID: 1},
		{Name: "Standard", Price: decimal.NewFromInt(75), QuantityAvailable: 1000, EventID: 1},
		{Name: "Economy", Price: decimal.NewFromInt(40), QuantityAvailable: 3000, EventID: 1},
		{Name: "Premium", Price: decimal.NewFromInt(120), QuantityAvailable: 200, EventID: 2},
		{Name: "Regular", Price: decimal.NewFromInt(60), QuantityAvailable: 800, EventID: 2},
		{Name: "Front Row", Price: decimal.NewFromInt(80), QuantityAvailable: 50, EventID: 3},
		{Name: "General", Price: decimal.NewFromInt(40), QuantityAvailable: 250, EventID: 3},
		{Name: "VIP", Price: decimal.NewFromInt(200), QuantityAvailable: 200, EventID: 4},
		{Name: "Regular", Price: decimal.NewFromInt(100), QuantityAvailable: 4800, EventID: 4},
	} {
		t.ID = st.nextID("ticket_type")
		st.ticketTypes = append(st.ticketTypes, t)
	}

	for _, b := range []models.Booking{
		{UserName: "John Doe", UserEmail: "john@example.com", Quantity: 2, EventID: 1, TicketTypeID: 2,
			TotalPrice: decimal.NewFromInt(150), BookingDate: at(-5), Status: models.BookingConfirmed, ConfirmationCode: "ABC12345"},
		{UserName: "Jane Smith", UserEmail: "jane@example.com", Quantity: 4, EventID: 2, TicketTypeID: 5,
			TotalPrice: decimal.NewFromInt(240), BookingDate: at(-3), Status: models.BookingConfirmed, ConfirmationCode: "DEF67890"},
		{UserName: "Sam Lee", UserEmail: "sam@example.com", Quantity: 1, EventID: 3, TicketTypeID: 6,
			TotalPrice: decimal.NewFromInt(80), BookingDate: at(-1), Status: models.BookingPending, ConfirmationCode: "GHI13579"},
	} {
		b.ID = st.nextID("booking")
		st.bookings = append(st.bookings, b)
	}
}
