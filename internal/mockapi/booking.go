package mockapi

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/shopspring/decimal"

	"resource-console/models"
	"resource-console/utils"
)

func (s *Server) listVenues(c echo.Context) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	return c.JSON(http.StatusOK, append([]models.Venue{}, st.venues...))
}

func (s *Server) createVenue(c echo.Context) error {
	var v models.Venue
	if err := c.Bind(&v); err != nil {
		return invalid(c, err)
	}
	if err := v.Validate(); err != nil {
		return invalid(c, err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	v.ID = st.nextID("venue")
	st.venues = append(st.venues, v)
	return c.JSON(http.StatusCreated, v)
}

func (s *Server) getVenue(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	v, found := st.venue(id)
	if !found {
		return detail(c, http.StatusNotFound, "Venue not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Server) venueEvents(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, found := st.venue(id); !found {
		return detail(c, http.StatusNotFound, "Venue not found")
	}
	out := []models.Event{}
	for _, e := range st.events {
		if e.VenueID == id {
			out = append(out, e)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) venueOccupancy(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	v, found := st.venue(id)
	if !found {
		return detail(c, http.StatusNotFound, "Venue not found")
	}

	total := 0
	for _, b := range st.bookings {
		e, ok := st.event(b.EventID)
		if ok && e.VenueID == id && b.Status != models.BookingCancelled {
			total += b.Quantity
		}
	}
	rate := 0.0
	if v.Capacity > 0 {
		rate = math.Round(float64(total)/float64(v.Capacity)*100*100) / 100
	}
	return c.JSON(http.StatusOK, models.VenueOccupancy{
		VenueID:       v.ID,
		VenueName:     v.Name,
		Capacity:      v.Capacity,
		TotalBookings: total,
		OccupancyRate: rate,
	})
}

func (s *Server) listEvents(c echo.Context) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]models.Event, 0, len(st.events))
	for _, e := range st.events {
		out = append(out, st.withVenue(e))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createEvent(c echo.Context) error {
	var e models.Event
	if err := c.Bind(&e); err != nil {
		return invalid(c, err)
	}
	if err := e.Validate(); err != nil {
		return invalid(c, err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, found := st.venue(e.VenueID); !found {
		return detail(c, http.StatusNotFound, "Venue not found")
	}
	e.ID = st.nextID("event")
	e.Venue = nil
	st.events = append(st.events, e)
	return c.JSON(http.StatusCreated, e)
}

func (s *Server) getEvent(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	e, found := st.event(id)
	if !found {
		return detail(c, http.StatusNotFound, "Event not found")
	}
	return c.JSON(http.StatusOK, st.withVenue(e))
}

func (s *Server) eventBookings(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, found := st.event(id); !found {
		return detail(c, http.StatusNotFound, "Event not found")
	}
	out := []models.Booking{}
	for _, b := range st.bookings {
		if b.EventID == id {
			out = append(out, b)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) availableTickets(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, found := st.event(id); !found {
		return detail(c, http.StatusNotFound, "Event not found")
	}
	out := []models.AvailableTickets{}
	for _, t := range st.ticketTypes {
		if t.EventID != id {
			continue
		}
		out = append(out, models.AvailableTickets{
			TicketTypeID: t.ID,
			Name:         t.Name,
			Price:        t.Price,
			Available:    st.available(t),
			Total:        t.QuantityAvailable,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) eventRevenue(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	e, found := st.event(id)
	if !found {
		return detail(c, http.StatusNotFound, "Event not found")
	}

	revenue := decimal.Zero
	sold := 0
	for _, b := range st.bookings {
		if b.EventID == id && b.Status == models.BookingConfirmed {
			revenue = revenue.Add(b.TotalPrice)
			sold += b.Quantity
		}
	}
	total := 0
	for _, t := range st.ticketTypes {
		if t.EventID == id {
			total += t.QuantityAvailable
		}
	}
	return c.JSON(http.StatusOK, models.EventRevenue{
		EventID:          e.ID,
		EventName:        e.Name,
		TotalRevenue:     revenue,
		TicketsSold:      sold,
		TicketsAvailable: total - sold,
	})
}

func (s *Server) listTicketTypes(c echo.Context) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	return c.JSON(http.StatusOK, append([]models.TicketType{}, st.ticketTypes...))
}

func (s *Server) createTicketType(c echo.Context) error {
	var t models.TicketType
	if err := c.Bind(&t); err != nil {
		return invalid(c, err)
	}
	if err := t.Validate(); err != nil {
		return invalid(c, err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, found := st.event(t.EventID); !found {
		return detail(c, http.StatusNotFound, "Event not found")
	}
	t.ID = st.nextID("ticket_type")
	st.ticketTypes = append(st.ticketTypes, t)
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) getTicketType(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	t, found := st.ticketType(id)
	if !found {
		return detail(c, http.StatusNotFound, "Ticket type not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) ticketTypeBookings(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, found := st.ticketType(id); !found {
		return detail(c, http.StatusNotFound, "Ticket type not found")
	}
	out := []models.Booking{}
	for _, b := range st.bookings {
		if b.TicketTypeID == id {
			out = append(out, b)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) listBookings(c echo.Context) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]models.Booking, 0, len(st.bookings))
	for _, b := range st.bookings {
		out = append(out, st.withDetails(b))
	}
	return c.JSON(http.StatusOK, out)
}

// searchBookings matches any of the given terms, case-insensitively.
func (s *Server) searchBookings(c echo.Context) error {
	q := models.BookingSearch{
		Event:      c.QueryParam("event"),
		Venue:      c.QueryParam("venue"),
		TicketType: c.QueryParam("ticket_type"),
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	out := []models.Booking{}
	for _, b := range st.bookings {
		b = st.withDetails(b)
		if q.Empty() || st.matches(b, q) {
			out = append(out, b)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (st *store) matches(b models.Booking, q models.BookingSearch) bool {
	if q.Event != "" && b.Event != nil && containsFold(b.Event.Name, q.Event) {
		return true
	}
	if q.Venue != "" && b.Event != nil {
		if v, ok := st.venue(b.Event.VenueID); ok && containsFold(v.Name, q.Venue) {
			return true
		}
	}
	return q.TicketType != "" && b.TicketType != nil && containsFold(b.TicketType.Name, q.TicketType)
}

func (s *Server) getBooking(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	i := indexByID(st.bookings, id)
	if i < 0 {
		return detail(c, http.StatusNotFound, "Booking not found")
	}
	return c.JSON(http.StatusOK, st.withDetails(st.bookings[i]))
}

func (s *Server) createBooking(c echo.Context) error {
	var in models.BookingCreate
	if err := c.Bind(&in); err != nil {
		return invalid(c, err)
	}
	if err := in.Validate(); err != nil {
		return invalid(c, err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, found := st.event(in.EventID); !found {
		return detail(c, http.StatusNotFound, "Event not found")
	}
	t, found := st.ticketType(in.TicketTypeID)
	if !found {
		return detail(c, http.StatusNotFound, "Ticket type not found")
	}
	if t.EventID != in.EventID {
		return detail(c, http.StatusBadRequest, "Ticket type does not belong to this event")
	}
	if st.available(t) < in.Quantity {
		return detail(c, http.StatusBadRequest, "Not enough tickets available")
	}

	code, err := utils.GenerateConfirmationCode(8)
	if err != nil {
		return detail(c, http.StatusInternalServerError, "Could not generate confirmation code")
	}

	b := models.Booking{
		ID:               st.nextID("booking"),
		UserName:         in.UserName,
		UserEmail:        in.UserEmail,
		Quantity:         in.Quantity,
		EventID:          in.EventID,
		TicketTypeID:     in.TicketTypeID,
		TotalPrice:       t.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		BookingDate:      models.Timestamp{Time: s.now()},
		Status:           models.BookingPending,
		ConfirmationCode: code,
	}
	st.bookings = append(st.bookings, b)
	return c.JSON(http.StatusCreated, b)
}

func (s *Server) updateBooking(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var u models.BookingUpdate
	if err := c.Bind(&u); err != nil {
		return invalid(c, err)
	}
	if err := u.Validate(); err != nil {
		return invalid(c, err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	i := indexByID(st.bookings, id)
	if i < 0 {
		return detail(c, http.StatusNotFound, "Booking not found")
	}

	b := st.bookings[i]
	if u.Quantity != nil && *u.Quantity != b.Quantity {
		t, _ := st.ticketType(b.TicketTypeID)
		extra := *u.Quantity - b.Quantity
		if extra > 0 && b.Status != models.BookingCancelled && st.available(t) < extra {
			return detail(c, http.StatusBadRequest, "Not enough tickets available")
		}
		b.Quantity = *u.Quantity
		b.TotalPrice = t.Price.Mul(decimal.NewFromInt(int64(b.Quantity)))
	}
	if u.UserName != nil {
		b.UserName = *u.UserName
	}
	if u.UserEmail != nil {
		b.UserEmail = *u.UserEmail
	}
	st.bookings[i] = b
	return c.JSON(http.StatusOK, b)
}

func (s *Server) setBookingStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var in models.BookingStatusUpdate
	if err := c.Bind(&in); err != nil {
		return invalid(c, err)
	}
	if !in.Status.Valid() {
		return detail(c, http.StatusUnprocessableEntity, "status must be one of pending, confirmed, cancelled")
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	i := indexByID(st.bookings, id)
	if i < 0 {
		return detail(c, http.StatusNotFound, "Booking not found")
	}

	b := st.bookings[i]
	if b.Status == models.BookingCancelled && in.Status != models.BookingCancelled {
		t, _ := st.ticketType(b.TicketTypeID)
		if st.available(t) < b.Quantity {
			return detail(c, http.StatusBadRequest, "Not enough tickets available")
		}
	}
	b.Status = in.Status
	st.bookings[i] = b
	return c.JSON(http.StatusOK, b)
}

func (s *Server) deleteBooking(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	i := indexByID(st.bookings, id)
	if i < 0 {
		return detail(c, http.StatusNotFound, "Booking not found")
	}
	st.bookings = removeAt(st.bookings, i)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) stats(c echo.Context) error {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	revenue := decimal.Zero
	for _, b := range st.bookings {
		if b.Status == models.BookingConfirmed {
			revenue = revenue.Add(b.TotalPrice)
		}
	}
	available := 0
	for _, t := range st.ticketTypes {
		available += st.available(t)
	}
	return c.JSON(http.StatusOK, models.BookingStats{
		TotalEvents:      len(st.events),
		TotalVenues:      len(st.venues),
		TotalBookings:    len(st.bookings),
		TotalRevenue:     revenue,
		AvailableTickets: available,
	})
}
