package services

import (
	"context"
	"fmt"
	"net/url"

	"resource-console/internal/resource"
	"resource-console/internal/restclient"
	"resource-console/models"
)

var (
	venueMessages = resource.Messages{
		List:   "Failed to load venues. Please try again later.",
		Get:    "Failed to load venue details. Please try again later.",
		Create: "Failed to create venue. Please try again.",
		Update: "Failed to update venue. Please try again.",
		Delete: "Failed to delete venue. Please try again.",
	}
	eventMessages = resource.Messages{
		List:   "Failed to load events. Please try again later.",
		Get:    "Failed to load event details. Please try again later.",
		Create: "Failed to create event. Please try again.",
		Update: "Failed to update event. Please try again.",
		Delete: "Failed to delete event. Please try again.",
	}
	ticketTypeMessages = resource.Messages{
		List:   "Failed to load ticket types. Please try again later.",
		Get:    "Failed to load ticket type. Please try again later.",
		Create: "Failed to create ticket type. Please try again.",
		Update: "Failed to update ticket type. Please try again.",
		Delete: "Failed to delete ticket type. Please try again.",
	}
	bookingMessages = resource.Messages{
		List:    "Failed to load bookings. Please try again later.",
		Get:     "Failed to load booking. Please try again later.",
		Create:  "Failed to create booking. Please try again.",
		Update:  "Failed to update booking. Please try again.",
		Delete:  "Failed to cancel booking. Please try again.",
		Confirm: "Are you sure you want to cancel this booking?",
	}
)

const (
	statusMessage    = "Failed to update booking status. Please try again."
	dashboardMessage = "Failed to load dashboard data. Please try again later."
)

// Booking groups the services of the ticket booking app. They share one
// banner.
type Booking struct {
	Venues      *VenueService
	Events      *EventService
	TicketTypes *TicketTypeService
	Bookings    *BookingService
	Dashboard   *DashboardService
}

func NewBooking(client *restclient.Client, opts Options) *Booking {
	opts = opts.withDefaults()
	venues := NewVenueService(client, opts)
	events := NewEventService(client, opts)
	return &Booking{
		Venues:      venues,
		Events:      events,
		TicketTypes: NewTicketTypeService(client, opts),
		Bookings:    NewBookingService(client, opts),
		Dashboard:   NewDashboardService(client, events, venues, opts),
	}
}

type VenueService struct {
	*resource.Controller[models.Venue]
	view view
}

func NewVenueService(client *restclient.Client, opts Options) *VenueService {
	opts = opts.withDefaults()
	ep := resource.NewEndpoint[models.Venue](client, "/venues")
	return &VenueService{
		Controller: resource.NewController[models.Venue]("venues", ep, opts.controller(venueMessages)),
		view:       view{name: "venues", client: client, banner: opts.Banner, logger: opts.Logger},
	}
}

func (s *VenueService) Events(ctx context.Context, id int64) ([]models.Event, error) {
	return fetch[[]models.Event](ctx, s.view, venueMessages.Get, fmt.Sprintf("/venues/%d/events", id), nil)
}

func (s *VenueService) Occupancy(ctx context.Context, id int64) (models.VenueOccupancy, error) {
	return fetch[models.VenueOccupancy](ctx, s.view, venueMessages.Get, fmt.Sprintf("/venues/%d/occupancy", id), nil)
}

type EventService struct {
	*resource.Controller[models.Event]
	view view
}

func NewEventService(client *restclient.Client, opts Options) *EventService {
	opts = opts.withDefaults()
	ep := resource.NewEndpoint[models.Event](client, "/events")
	return &EventService{
		Controller: resource.NewController[models.Event]("events", ep, opts.controller(eventMessages)),
		view:       view{name: "events", client: client, banner: opts.Banner, logger: opts.Logger},
	}
}

func (s *EventService) Bookings(ctx context.Context, id int64) ([]models.Booking, error) {
	return fetch[[]models.Booking](ctx, s.view, eventMessages.Get, fmt.Sprintf("/events/%d/bookings", id), nil)
}

func (s *EventService) AvailableTickets(ctx context.Context, id int64) ([]models.AvailableTickets, error) {
	return fetch[[]models.AvailableTickets](ctx, s.view, eventMessages.Get, fmt.Sprintf("/events/%d/available-tickets", id), nil)
}

func (s *EventService) Revenue(ctx context.Context, id int64) (models.EventRevenue, error) {
	return fetch[models.EventRevenue](ctx, s.view, eventMessages.Get, fmt.Sprintf("/events/%d/revenue", id), nil)
}

// EventDetail is everything the event page shows.
type EventDetail struct {
	Event   models.Event
	Tickets []models.AvailableTickets
	Revenue models.EventRevenue
}

// Detail reads the event, its ticket availability and its revenue. The
// first failure stops it.
func (s *EventService) Detail(ctx context.Context, id int64) (EventDetail, error) {
	var d EventDetail
	var err error
	if d.Event, err = s.Get(ctx, id); err != nil {
		return d, err
	}
	if d.Tickets, err = s.AvailableTickets(ctx, id); err != nil {
		return d, err
	}
	d.Revenue, err = s.Revenue(ctx, id)
	return d, err
}

type TicketTypeService struct {
	*resource.Controller[models.TicketType]
	view view
}

func NewTicketTypeService(client *restclient.Client, opts Options) *TicketTypeService {
	opts = opts.withDefaults()
	ep := resource.NewEndpoint[models.TicketType](client, "/ticket-types")
	return &TicketTypeService{
		Controller: resource.NewController[models.TicketType]("ticket_types", ep, opts.controller(ticketTypeMessages)),
		view:       view{name: "ticket_types", client: client, banner: opts.Banner, logger: opts.Logger},
	}
}

func (s *TicketTypeService) Bookings(ctx context.Context, id int64) ([]models.Booking, error) {
	return fetch[[]models.Booking](ctx, s.view, ticketTypeMessages.Get, fmt.Sprintf("/ticket-types/%d/bookings", id), nil)
}

// ForEvent filters the cached ticket types by event.
func (s *TicketTypeService) ForEvent(eventID int64) []models.TicketType {
	var out []models.TicketType
	for _, t := range s.Items() {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	return out
}

// bookingRoute switches to /bookings/search when search terms are set.
func bookingRoute(base string, f resource.Filter) (string, url.Values) {
	q := f.Values()
	if len(q) > 0 {
		return base + "/search", q
	}
	return base, q
}

type BookingService struct {
	*resource.Controller[models.Booking]
	ep *resource.Endpoint[models.Booking]
}

func NewBookingService(client *restclient.Client, opts Options) *BookingService {
	opts = opts.withDefaults()
	ep := resource.NewEndpoint[models.Booking](client, "/bookings").WithRoute(bookingRoute)
	return &BookingService{
		Controller: resource.NewController[models.Booking]("bookings", ep, opts.controller(bookingMessages)),
		ep:         ep,
	}
}

func (s *BookingService) Load(ctx context.Context) ([]models.Booking, error) {
	return s.List(ctx, resource.Filter{})
}

// Search replaces the cache with the bookings matching q. An empty search
// lists everything.
func (s *BookingService) Search(ctx context.Context, q models.BookingSearch) ([]models.Booking, error) {
	return s.List(ctx, resource.Filter{Search: q.Params()})
}

func (s *BookingService) Book(ctx context.Context, in models.BookingCreate) (models.Booking, error) {
	return s.Create(ctx, in)
}

func (s *BookingService) Edit(ctx context.Context, id int64, u models.BookingUpdate) (models.Booking, error) {
	return s.Update(ctx, id, u)
}

// SetStatus patches the status of booking id. Any known status is sent;
// the backend decides whether the transition is allowed.
func (s *BookingService) SetStatus(ctx context.Context, id int64, status models.BookingStatus) (models.Booking, error) {
	body := models.BookingStatusUpdate{Status: status}
	if err := body.Validate(); err != nil {
		return models.Booking{}, err
	}
	return s.Mutate(ctx, "status", statusMessage, id, func(ctx context.Context) (models.Booking, error) {
		var out models.Booking
		err := s.ep.Client().Patch(ctx, s.ep.ItemPath(id)+"/status", body, &out)
		return out, err
	})
}

// Cancel deletes booking id after confirmation.
func (s *BookingService) Cancel(ctx context.Context, id int64) (bool, error) {
	return s.Remove(ctx, id)
}

// Dashboard is the landing page of the booking app.
type Dashboard struct {
	Stats  models.BookingStats
	Events []models.Event
	Venues []models.Venue
}

type DashboardService struct {
	view   view
	events *EventService
	venues *VenueService
}

func NewDashboardService(client *restclient.Client, events *EventService, venues *VenueService, opts Options) *DashboardService {
	opts = opts.withDefaults()
	return &DashboardService{
		view:   view{name: "dashboard", client: client, banner: opts.Banner, logger: opts.Logger},
		events: events,
		venues: venues,
	}
}

func (s *DashboardService) Stats(ctx context.Context) (models.BookingStats, error) {
	return fetch[models.BookingStats](ctx, s.view, dashboardMessage, "/booking-system/stats", nil)
}

// Load reads the stats and refreshes the event and venue lists.
func (s *DashboardService) Load(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	var err error
	if d.Stats, err = s.Stats(ctx); err != nil {
		return d, err
	}
	if d.Events, err = s.events.List(ctx, resource.Filter{}); err != nil {
		return d, err
	}
	d.Venues, err = s.venues.List(ctx, resource.Filter{})
	return d, err
}
