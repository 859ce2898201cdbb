// Package mockapi is an in-memory stand-in for the task, expense and
// booking backends. It serves all three from one router: tasks at /tasks,
// expenses under /api and the booking system at the root.
package mockapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v5"

	"resource-console/security"
)

type Option func(*Server)

// WithToken requires a bearer token on every request.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// WithSeed loads the demo data set.
func WithSeed() Option {
	return func(s *Server) { s.seed = true }
}

// WithRateLimit caps requests per second per client.
func WithRateLimit(perSecond float64) Option {
	return func(s *Server) { s.rateLimit = perSecond }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

type Server struct {
	token     string
	seed      bool
	rateLimit float64
	now       func() time.Time

	mu       sync.Mutex
	store    *store
	requests int

	e *echo.Echo
}

func New(opts ...Option) *Server {
	s := &Server{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	s.store = newStore()
	if s.seed {
		s.store.seed(s.now())
	}

	s.e = echo.New()
	s.e.Use(s.count, security.RequestID(), security.BearerAuth(s.token))
	if s.rateLimit > 0 {
		s.e.Use(security.RateLimit(s.rateLimit))
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.e.GET("/tasks", s.listTasks)
	s.e.POST("/tasks", s.createTask)
	s.e.PUT("/tasks/:id", s.updateTask)
	s.e.DELETE("/tasks/:id", s.deleteTask)

	api := s.e.Group("/api")
	api.GET("/expenses", s.listExpenses)
	api.POST("/expenses", s.createExpense)
	api.GET("/expenses/total", s.totalExpenses)
	api.GET("/expenses/category/:category", s.listExpensesByCategory)
	api.PUT("/expenses/:id", s.updateExpense)
	api.DELETE("/expenses/:id", s.deleteExpense)

	s.e.GET("/venues", s.listVenues)
	s.e.POST("/venues", s.createVenue)
	s.e.GET("/venues/:id", s.getVenue)
	s.e.GET("/venues/:id/events", s.venueEvents)
	s.e.GET("/venues/:id/occupancy", s.venueOccupancy)

	s.e.GET("/events", s.listEvents)
	s.e.POST("/events", s.createEvent)
	s.e.GET("/events/:id", s.getEvent)
	s.e.GET("/events/:id/bookings", s.eventBookings)
	s.e.GET("/events/:id/available-tickets", s.availableTickets)
	s.e.GET("/events/:id/revenue", s.eventRevenue)

	s.e.GET("/ticket-types", s.listTicketTypes)
	s.e.POST("/ticket-types", s.createTicketType)
	s.e.GET("/ticket-types/:id", s.getTicketType)
	s.e.GET("/ticket-types/:id/bookings", s.ticketTypeBookings)

	s.e.GET("/bookings", s.listBookings)
	s.e.POST("/bookings", s.createBooking)
	s.e.GET("/bookings/search", s.searchBookings)
	s.e.GET("/bookings/:id", s.getBooking)
	s.e.PUT("/bookings/:id", s.updateBooking)
	s.e.PATCH("/bookings/:id/status", s.setBookingStatus)
	s.e.DELETE("/bookings/:id", s.deleteBooking)

	s.e.GET("/booking-system/stats", s.stats)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Requests reports how many requests reached the server.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *Server) count(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		return next(c)
	}
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{Addr: addr, Handler: s}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("mock backend listening", "addr", addr, "auth", s.token != "")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func detail(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"detail": msg})
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.PathParam("id"), 10, 64)
	return id, err == nil
}

func badID(c echo.Context) error {
	return detail(c, http.StatusUnprocessableEntity, "id must be an integer")
}

// invalid reports a rejected payload the way the real backends do: a 422
// with one entry per failing field.
func invalid(c echo.Context, err error) error {
	type item struct {
		Loc []string `json:"loc"`
		Msg string   `json:"msg"`
	}
	var items []item
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for f := range verrs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			items = append(items, item{Loc: []string{"body", f}, Msg: f + ": " + verrs[f].Error()})
		}
	} else {
		items = append(items, item{Loc: []string{"body"}, Msg: err.Error()})
	}
	return c.JSON(http.StatusUnprocessableEntity, map[string]any{"detail": items})
}
