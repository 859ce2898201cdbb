package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"resource-console/internal/resource"
	"resource-console/internal/ui"
	"resource-console/models"
)

func newVenuesCmd(a *app) *cobra.Command {
	var cached bool
	cmd := &cobra.Command{
		Use:   "venues",
		Short: "List venues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.bookingApp().Venues
			items, note, err := listed(cmd.Context(), a, "venues", cached, listAll(svc.List), svc.Restore)
			if err != nil {
				return err
			}
			show(a.out, ui.Venues(items))
			show(a.out, note)
			return nil
		},
	}
	cachedFlag(cmd, &cached)

	var v models.Venue
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a venue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.bookingApp().Venues.Create(cmd.Context(), v)
			if err != nil {
				return err
			}
			show(a.out, fmt.Sprintf("Created venue %d", created.ID))
			return nil
		},
	}
	add.Flags().StringVar(&v.Name, "name", "", "venue name")
	add.Flags().StringVar(&v.Location, "location", "", "where it is")
	add.Flags().IntVar(&v.Capacity, "capacity", 0, "number of seats")
	add.Flags().StringVar(&v.Description, "description", "", "optional description")

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a venue with its events and occupancy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc := a.bookingApp().Venues
			a.loading("venue")
			venue, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			events, err := svc.Events(cmd.Context(), id)
			if err != nil {
				return err
			}
			occ, err := svc.Occupancy(cmd.Context(), id)
			if err != nil {
				return err
			}
			show(a.out, ui.Venues([]models.Venue{venue}))
			show(a.out, ui.Events(events))
			show(a.out, ui.Occupancy(occ))
			return nil
		},
	}

	cmd.AddCommand(add, showCmd)
	return cmd
}

func newEventsCmd(a *app) *cobra.Command {
	var cached bool
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.bookingApp().Events
			items, note, err := listed(cmd.Context(), a, "events", cached, listAll(svc.List), svc.Restore)
			if err != nil {
				return err
			}
			show(a.out, ui.Events(items))
			show(a.out, note)
			return nil
		},
	}
	cachedFlag(cmd, &cached)

	var (
		e    models.Event
		date string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				ts, err := models.ParseTimestamp(date)
				if err != nil {
					return err
				}
				e.Date = ts
			}
			created, err := a.bookingApp().Events.Create(cmd.Context(), e)
			if err != nil {
				return err
			}
			show(a.out, fmt.Sprintf("Created event %d", created.ID))
			return nil
		},
	}
	add.Flags().StringVar(&e.Name, "name", "", "event name")
	add.Flags().StringVar(&e.Description, "description", "", "optional description")
	add.Flags().StringVar(&date, "date", "", "start time (YYYY-MM-DDTHH:MM:SS)")
	add.Flags().Int64Var(&e.VenueID, "venue", 0, "venue id")

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show an event with ticket availability and revenue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a.loading("event")
			d, err := a.bookingApp().Events.Detail(cmd.Context(), id)
			if err != nil {
				return err
			}
			show(a.out, ui.Events([]models.Event{d.Event}))
			show(a.out, ui.Availability(d.Tickets))
			show(a.out, ui.Revenue(d.Revenue))
			return nil
		},
	}

	bookings := &cobra.Command{
		Use:   "bookings ID",
		Short: "List the bookings of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			items, err := a.bookingApp().Events.Bookings(cmd.Context(), id)
			if err != nil {
				return err
			}
			show(a.out, ui.Bookings(items))
			return nil
		},
	}

	cmd.AddCommand(add, showCmd, bookings)
	return cmd
}

func newTicketTypesCmd(a *app) *cobra.Command {
	var (
		cached  bool
		eventID int64
	)
	cmd := &cobra.Command{
		Use:   "ticket-types",
		Short: "List ticket types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.bookingApp().TicketTypes
			items, note, err := listed(cmd.Context(), a, "ticket_types", cached, listAll(svc.List), svc.Restore)
			if err != nil {
				return err
			}
			if eventID != 0 {
				items = svc.ForEvent(eventID)
			}
			show(a.out, ui.TicketTypes(items))
			show(a.out, note)
			return nil
		},
	}
	cachedFlag(cmd, &cached)
	cmd.Flags().Int64Var(&eventID, "event", 0, "only ticket types of this event")

	var (
		t     models.TicketType
		price string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a ticket type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseDecimal("price", price)
			if err != nil {
				return err
			}
			t.Price = p
			created, err := a.bookingApp().TicketTypes.Create(cmd.Context(), t)
			if err != nil {
				return err
			}
			show(a.out, fmt.Sprintf("Created ticket type %d", created.ID))
			return nil
		},
	}
	add.Flags().StringVar(&t.Name, "name", "", "ticket type name")
	add.Flags().StringVar(&price, "price", "0", "price per ticket")
	add.Flags().IntVar(&t.QuantityAvailable, "quantity", 0, "tickets on sale")
	add.Flags().Int64Var(&t.EventID, "event", 0, "event id")

	bookings := &cobra.Command{
		Use:   "bookings ID",
		Short: "List the bookings of a ticket type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			items, err := a.bookingApp().TicketTypes.Bookings(cmd.Context(), id)
			if err != nil {
				return err
			}
			show(a.out, ui.Bookings(items))
			return nil
		},
	}

	cmd.AddCommand(add, bookings)
	return cmd
}

func newBookingsCmd(a *app) *cobra.Command {
	var (
		cached bool
		search models.BookingSearch
	)
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List or search bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.bookingApp().Bookings
			name := "bookings"
			if !search.Empty() {
				name = snapshotName(name, resource.Filter{Search: search.Params()})
			}
			load := func(ctx context.Context) ([]models.Booking, error) { return svc.Search(ctx, search) }
			items, note, err := listed(cmd.Context(), a, name, cached, load, svc.Restore)
			if err != nil {
				return err
			}
			show(a.out, ui.Bookings(items))
			show(a.out, note)
			return nil
		},
	}
	cachedFlag(cmd, &cached)
	cmd.Flags().StringVar(&search.Event, "event", "", "event name contains")
	cmd.Flags().StringVar(&search.Venue, "venue", "", "venue name contains")
	cmd.Flags().StringVar(&search.TicketType, "ticket-type", "", "ticket type name contains")

	var in models.BookingCreate
	book := &cobra.Command{
		Use:   "book",
		Short: "Book tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.bookingApp().Bookings.Book(cmd.Context(), in)
			if err != nil {
				return err
			}
			show(a.out, fmt.Sprintf("Booked %d tickets for %s, confirmation code %s", b.Quantity, b.TotalPrice.StringFixed(2), b.ConfirmationCode))
			return nil
		},
	}
	book.Flags().StringVar(&in.UserName, "name", "", "customer name")
	book.Flags().StringVar(&in.UserEmail, "email", "", "customer email")
	book.Flags().IntVar(&in.Quantity, "quantity", 1, "number of tickets")
	book.Flags().Int64Var(&in.EventID, "event", 0, "event id")
	book.Flags().Int64Var(&in.TicketTypeID, "ticket-type", 0, "ticket type id")

	var (
		name, email string
		quantity    int
	)
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the customer details or quantity of a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var u models.BookingUpdate
			if cmd.Flags().Changed("name") {
				u.UserName = &name
			}
			if cmd.Flags().Changed("email") {
				u.UserEmail = &email
			}
			if cmd.Flags().Changed("quantity") {
				u.Quantity = &quantity
			}
			b, err := a.bookingApp().Bookings.Edit(cmd.Context(), id, u)
			if err != nil {
				return err
			}
			show(a.out, fmt.Sprintf("Updated booking %d, total %s", b.ID, b.TotalPrice.StringFixed(2)))
			return nil
		},
	}
	edit.Flags().StringVar(&name, "name", "", "customer name")
	edit.Flags().StringVar(&email, "email", "", "customer email")
	edit.Flags().IntVar(&quantity, "quantity", 0, "number of tickets")

	status := &cobra.Command{
		Use:       "status ID STATUS",
		Short:     "Set the status of a booking (pending, confirmed, cancelled)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(models.BookingPending), string(models.BookingConfirmed), string(models.BookingCancelled)},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, err := a.bookingApp().Bookings.SetStatus(cmd.Context(), id, models.BookingStatus(args[1]))
			if err != nil {
				return err
			}
			show(a.out, fmt.Sprintf("Booking %d is %s", b.ID, ui.StatusBadge(b.Status)))
			return nil
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel ID",
		Short: "Delete a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			removed, err := a.bookingApp().Bookings.Cancel(cmd.Context(), id)
			if err != nil {
				return err
			}
			if removed {
				show(a.out, fmt.Sprintf("Cancelled booking %d", id))
			}
			return nil
		},
	}

	cmd.AddCommand(book, edit, status, cancel)
	return cmd
}

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show booking system statistics with events and venues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.loading("dashboard")
			d, err := a.bookingApp().Dashboard.Load(cmd.Context())
			if err != nil {
				return err
			}
			show(a.out, ui.Stats(d.Stats))
			show(a.out, ui.Events(d.Events))
			show(a.out, ui.Venues(d.Venues))
			return nil
		},
	}
}

// listAll adapts a controller List to an unfiltered load.
func listAll[T any](list func(context.Context, resource.Filter) ([]T, error)) func(context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		return list(ctx, resource.Filter{})
	}
}
