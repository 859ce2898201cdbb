package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"resource-console/config"
	"resource-console/internal/resource"
	"resource-console/internal/restclient"
	"resource-console/internal/services"
	"resource-console/internal/snapshot"
	"resource-console/internal/ui"
	"resource-console/utils"
)

// app holds what the commands share within one process. Services are
// built on first use and kept, so the shell reuses caches and banners.
type app struct {
	cfg *config.Config
	in  *bufio.Reader
	out io.Writer
	log *slog.Logger

	// assumeYes skips delete confirmations.
	assumeYes bool
	// interactive is set by the shell; it prints loading lines.
	interactive bool

	once      sync.Once
	rdb       *redis.Client
	snapshots *snapshot.Store

	tasks    *services.TaskService
	expenses *services.ExpenseService
	booking  *services.Booking
}

func newApp(cfg *config.Config, in io.Reader, out io.Writer) *app {
	return &app{
		cfg: cfg,
		in:  bufio.NewReader(in),
		out: out,
		log: slog.Default(),
	}
}

func (a *app) client(name, baseURL string) *restclient.Client {
	opts := []restclient.Option{
		restclient.WithToken(a.cfg.APIToken),
		restclient.WithLogger(a.log.With("backend", name)),
	}
	if a.cfg.EnableCircuitBreaker {
		opts = append(opts, restclient.WithBreaker(utils.NewCircuitBreaker(name)))
	}
	return restclient.New(baseURL, opts...)
}

func (a *app) serviceOptions() services.Options {
	return services.Options{
		Banner:    resource.NewBanner(),
		Confirmer: resource.ConfirmFunc(a.confirm),
		Logger:    a.log,
	}
}

func (a *app) taskService() *services.TaskService {
	if a.tasks == nil {
		a.tasks = services.NewTaskService(a.client("tasks", a.cfg.TasksAPIURL), a.serviceOptions())
	}
	return a.tasks
}

func (a *app) expenseService() *services.ExpenseService {
	if a.expenses == nil {
		a.expenses = services.NewExpenseService(a.client("expenses", a.cfg.ExpensesAPIURL), a.serviceOptions())
	}
	return a.expenses
}

func (a *app) bookingApp() *services.Booking {
	if a.booking == nil {
		a.booking = services.NewBooking(a.client("booking", a.cfg.BookingAPIURL), a.serviceOptions())
	}
	return a.booking
}

// confirm asks on the terminal. Anything but y or yes declines.
func (a *app) confirm(_ context.Context, prompt string) (bool, error) {
	if a.assumeYes {
		return true, nil
	}
	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// snapshotStore connects to Redis on first use. It returns nil when no
// REDIS_URL is configured or the server is unreachable.
func (a *app) snapshotStore(ctx context.Context) *snapshot.Store {
	a.once.Do(func() {
		if a.cfg.RedisURL == "" {
			return
		}
		rdb, err := snapshot.Connect(ctx, a.cfg.RedisURL, a.cfg.RedisDB)
		if err != nil {
			a.log.Warn("snapshots disabled", "error", err)
			return
		}
		a.rdb = rdb
		a.snapshots = snapshot.New(rdb, a.cfg.SnapshotTTL)
	})
	return a.snapshots
}

func (a *app) close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}

func (a *app) loading(what string) {
	if a.interactive {
		fmt.Fprintln(a.out, ui.Loading(what))
	}
}

// banners returns the non-empty failure messages of the apps in use.
func (a *app) banners() []string {
	var out []string
	if a.tasks != nil && a.tasks.Banner().Message() != "" {
		out = append(out, a.tasks.Banner().Message())
	}
	if a.expenses != nil && a.expenses.Banner().Message() != "" {
		out = append(out, a.expenses.Banner().Message())
	}
	if a.booking != nil && a.booking.Bookings.Banner().Message() != "" {
		out = append(out, a.booking.Bookings.Banner().Message())
	}
	return out
}
