package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

type Venue struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description,omitempty"`
}

func (v Venue) GetID() int64 { return v.ID }

func (v Venue) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Name, notBlank),
		validation.Field(&v.Location, notBlank),
		validation.Field(&v.Capacity, validation.Required, validation.Min(1)),
	)
}

type Event struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Date        Timestamp `json:"date"`
	VenueID     int64     `json:"venue_id"`

	// Venue is expanded by list and detail reads.
	Venue *Venue `json:"venue,omitempty"`
}

func (e Event) GetID() int64 { return e.ID }

func (e Event) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, notBlank),
		validation.Field(&e.Date, requiredDate),
		validation.Field(&e.VenueID, validation.Required),
	)
}

type TicketType struct {
	ID                int64           `json:"id,omitempty"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int             `json:"quantity_available"`
	EventID           int64           `json:"event_id"`
}

func (t TicketType) GetID() int64 { return t.ID }

func (t TicketType) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, notBlank),
		validation.Field(&t.Price, nonNegativeAmount),
		validation.Field(&t.QuantityAvailable, validation.Min(0)),
		validation.Field(&t.EventID, validation.Required),
	)
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking is a reservation of Quantity tickets of one ticket type. The
// backend assigns TotalPrice, BookingDate, Status and ConfirmationCode.
type Booking struct {
	ID               int64           `json:"id,omitempty"`
	UserName         string          `json:"user_name"`
	UserEmail        string          `json:"user_email"`
	Quantity         int             `json:"quantity"`
	EventID          int64           `json:"event_id"`
	TicketTypeID     int64           `json:"ticket_type_id"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	BookingDate      Timestamp       `json:"booking_date"`
	Status           BookingStatus   `json:"status"`
	ConfirmationCode string          `json:"confirmation_code"`

	Event      *Event      `json:"event,omitempty"`
	TicketType *TicketType `json:"ticket_type,omitempty"`
}

func (b Booking) GetID() int64 { return b.ID }

type BookingCreate struct {
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	Quantity     int    `json:"quantity"`
	EventID      int64  `json:"event_id"`
	TicketTypeID int64  `json:"ticket_type_id"`
}

func (b BookingCreate) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.UserName, notBlank),
		validation.Field(&b.UserEmail, validation.Required, is.EmailFormat),
		validation.Field(&b.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&b.EventID, validation.Required),
		validation.Field(&b.TicketTypeID, validation.Required),
	)
}

// BookingUpdate changes customer details or quantity; the backend
// recomputes the total price when the quantity changes. A field that is
// set must hold a usable value.
type BookingUpdate struct {
	UserName  *string `json:"user_name,omitempty"`
	UserEmail *string `json:"user_email,omitempty"`
	Quantity  *int    `json:"quantity,omitempty"`
}

func (b BookingUpdate) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.UserName, notBlank),
		validation.Field(&b.UserEmail, validation.When(b.UserEmail != nil, validation.Required, is.EmailFormat)),
		validation.Field(&b.Quantity, validation.When(b.Quantity != nil, validation.Required, validation.Min(1))),
	)
}

var statusValues = func() []any {
	out := make([]any, len(BookingStatuses))
	for i, st := range BookingStatuses {
		out[i] = st
	}
	return out
}()

// BookingStatusUpdate only checks that the status is a known one. Which
// transitions are allowed is up to the backend.
type BookingStatusUpdate struct {
	Status BookingStatus `json:"status"`
}

func (u BookingStatusUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Status, validation.Required, validation.In(statusValues...)),
	)
}

// BookingSearch matches bookings by substring of the event, venue or ticket
// type name. Any non-empty field is enough for a match.
type BookingSearch struct {
	Event      string
	Venue      string
	TicketType string
}

func (s BookingSearch) Empty() bool {
	return s.Event == "" && s.Venue == "" && s.TicketType == ""
}

// Params returns the non-empty terms keyed by their query parameter.
func (s BookingSearch) Params() map[string]string {
	out := map[string]string{}
	if s.Event != "" {
		out["event"] = s.Event
	}
	if s.Venue != "" {
		out["venue"] = s.Venue
	}
	if s.TicketType != "" {
		out["ticket_type"] = s.TicketType
	}
	return out
}
