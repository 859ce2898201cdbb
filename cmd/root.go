// Package cmd is the command-line front end: one subcommand tree per
// record family plus an interactive shell and the mock backend.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cobra"

	"resource-console/config"
	"resource-console/internal/restclient"
	"resource-console/internal/ui"
)

// Execute runs the command line and reports whether it succeeded.
func Execute() error {
	cfg := config.LoadConfig()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, os.Stdin, os.Stdout)
	defer a.close()

	root := newRootCmd(a)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, describeError(err, a.banners()))
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	var theme string

	root := &cobra.Command{
		Use:           "resource-console",
		Short:         "Manage tasks, expenses and ticket bookings over their REST backends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.SetTheme(theme)
		},
	}
	root.SetOut(a.out)

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.assumeYes, "yes", "y", false, "do not ask before deleting")
	pf.StringVar(&theme, "theme", "classic", "color theme (classic, mono)")

	root.AddCommand(
		newTasksCmd(a),
		newExpensesCmd(a),
		newVenuesCmd(a),
		newEventsCmd(a),
		newTicketTypesCmd(a),
		newBookingsCmd(a),
		newDashboardCmd(a),
		newShellCmd(a),
		newMockServerCmd(a),
	)
	return root
}

// describeError prefers the banner text over transport details, and lists
// field problems for rejected input.
func describeError(err error, banners []string) string {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return "Invalid input: " + verrs.Error()
	}
	var se *restclient.StatusError
	if len(banners) > 0 {
		msg := strings.Join(banners, "\n")
		if errors.As(err, &se) && se.Detail != "" {
			msg += " (" + se.Detail + ")"
		}
		return ui.Banner(msg)
	}
	return "Error: " + err.Error()
}

func show(w io.Writer, s string) {
	if s != "" {
		fmt.Fprintln(w, s)
	}
}
