package models

import "github.com/shopspring/decimal"

type EventRevenue struct {
	EventID          int64           `json:"event_id"`
	EventName        string          `json:"event_name"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TicketsSold      int             `json:"tickets_sold"`
	TicketsAvailable int             `json:"tickets_available"`
}

type VenueOccupancy struct {
	VenueID       int64   `json:"venue_id"`
	VenueName     string  `json:"venue_name"`
	Capacity      int     `json:"capacity"`
	TotalBookings int     `json:"total_bookings"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// AvailableTickets is one row of /events/{id}/available-tickets.
type AvailableTickets struct {
	TicketTypeID int64           `json:"ticket_type_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Available    int             `json:"available"`
	Total        int             `json:"total"`
}

type BookingStats struct {
	TotalEvents      int             `json:"total_events"`
	TotalVenues      int             `json:"total_venues"`
	TotalBookings    int             `json:"total_bookings"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	AvailableTickets int             `json:"available_tickets"`
}
