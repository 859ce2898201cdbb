package ui

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"resource-console/models"
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func Tasks(tasks []models.Task) string {
	if len(tasks) == 0 {
		return Current().Muted.Render("No tasks yet.")
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{id(t.ID), Check(t.Completed), t.Title, t.Description})
	}
	return Table([]string{"ID", "", "Title", "Description"}, rows)
}

func Expenses(expenses []models.Expense) string {
	if len(expenses) == 0 {
		return Current().Muted.Render("No expenses found.")
	}
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{id(e.ID), e.Date.String(), string(e.Category), money(e.Amount), e.Description})
	}
	return Table([]string{"ID", "Date", "Category", "Amount", "Description"}, rows)
}

// ExpenseSummary lists the total and a bar per category.
func ExpenseSummary(total models.ExpenseTotal) string {
	lines := []string{"Total: " + money(total.Total)}
	for _, c := range models.Categories {
		amount, ok := total.ByCategory[c]
		if !ok {
			continue
		}
		share := 0
		if total.Total.IsPositive() {
			share = int(amount.Div(total.Total).Mul(decimal.NewFromInt(100)).IntPart())
		}
		lines = append(lines, fmt.Sprintf("%-13s %10s  %s", c, money(amount), ProgressBar(share, 100, 20)))
	}
	return Panel("Summary", lines...)
}

func Venues(venues []models.Venue) string {
	if len(venues) == 0 {
		return Current().Muted.Render("No venues found.")
	}
	rows := make([][]string, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, []string{id(v.ID), v.Name, v.Location, strconv.Itoa(v.Capacity), v.Description})
	}
	return Table([]string{"ID", "Name", "Location", "Capacity", "Description"}, rows)
}

func Events(events []models.Event) string {
	if len(events) == 0 {
		return Current().Muted.Render("No events found.")
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		venue := "#" + id(e.VenueID)
		if e.Venue != nil {
			venue = e.Venue.Name
		}
		rows = append(rows, []string{id(e.ID), e.Name, e.Date.String(), venue})
	}
	return Table([]string{"ID", "Name", "Date", "Venue"}, rows)
}

func TicketTypes(types []models.TicketType) string {
	if len(types) == 0 {
		return Current().Muted.Render("No ticket types found.")
	}
	rows := make([][]string, 0, len(types))
	for _, t := range types {
		rows = append(rows, []string{id(t.ID), t.Name, money(t.Price), strconv.Itoa(t.QuantityAvailable), id(t.EventID)})
	}
	return Table([]string{"ID", "Name", "Price", "Quantity", "Event"}, rows)
}

func Bookings(bookings []models.Booking) string {
	if len(bookings) == 0 {
		return Current().Muted.Render("No bookings found.")
	}
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		event := "#" + id(b.EventID)
		if b.Event != nil {
			event = b.Event.Name
		}
		ticket := "#" + id(b.TicketTypeID)
		if b.TicketType != nil {
			ticket = b.TicketType.Name
		}
		rows = append(rows, []string{
			id(b.ID), b.ConfirmationCode, b.UserName, b.UserEmail, event, ticket,
			strconv.Itoa(b.Quantity), money(b.TotalPrice), StatusBadge(b.Status),
		})
	}
	return Table([]string{"ID", "Code", "Name", "Email", "Event", "Ticket", "Qty", "Total", "Status"}, rows)
}

func Availability(tickets []models.AvailableTickets) string {
	if len(tickets) == 0 {
		return Current().Muted.Render("No ticket types for this event.")
	}
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []string{id(t.TicketTypeID), t.Name, money(t.Price), fmt.Sprintf("%d / %d", t.Available, t.Total)})
	}
	return Table([]string{"ID", "Ticket", "Price", "Available"}, rows)
}

func Revenue(r models.EventRevenue) string {
	sold := r.TicketsSold
	return Panel("Revenue: "+r.EventName,
		"Revenue:   "+money(r.TotalRevenue),
		fmt.Sprintf("Sold:      %d", sold),
		fmt.Sprintf("Remaining: %d", r.TicketsAvailable),
		ProgressBar(sold, sold+r.TicketsAvailable, 30),
	)
}

func Occupancy(o models.VenueOccupancy) string {
	return Panel("Occupancy: "+o.VenueName,
		fmt.Sprintf("Capacity: %d", o.Capacity),
		fmt.Sprintf("Booked:   %d (%.2f%%)", o.TotalBookings, o.OccupancyRate),
		ProgressBar(o.TotalBookings, o.Capacity, 30),
	)
}

func Stats(s models.BookingStats) string {
	return Panel("Booking system",
		fmt.Sprintf("Events:    %d", s.TotalEvents),
		fmt.Sprintf("Venues:    %d", s.TotalVenues),
		fmt.Sprintf("Bookings:  %d", s.TotalBookings),
		"Revenue:   "+money(s.TotalRevenue),
		fmt.Sprintf("Available: %d", s.AvailableTickets),
	)
}
