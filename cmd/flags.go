package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"resource-console/internal/resource"
	"resource-console/internal/snapshot"
	"resource-console/models"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseDecimal(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", name, s)
	}
	return d, nil
}

// filterFlags are the list filters of the expense tracker.
type filterFlags struct {
	from, to string
	category string
}

func (f *filterFlags) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.from, "from", "", "first day to include (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "last day to include (YYYY-MM-DD)")
	fs.StringVar(&f.category, "category", "", "only this category")
}

func (f *filterFlags) filter() (resource.Filter, error) {
	var out resource.Filter
	if f.from != "" {
		d, err := models.ParseDate(f.from)
		if err != nil {
			return out, err
		}
		out.StartDate = d.Time
	}
	if f.to != "" {
		d, err := models.ParseDate(f.to)
		if err != nil {
			return out, err
		}
		out.EndDate = d.Time
	}
	out.Category = f.category
	return out, nil
}

// resetFlags puts every flag of cmd and its children back to its default,
// so a shell can run the same command twice.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// cachedFlag adds --cached to a list command.
func cachedFlag(cmd *cobra.Command, v *bool) {
	cmd.Flags().BoolVar(v, "cached", false, "print the last saved snapshot instead of calling the backend")
}

// listed runs load and saves the result as a snapshot, or with cached
// restores the last snapshot into the cache without a request.
func listed[T any](ctx context.Context, a *app, name string, cached bool,
	load func(context.Context) ([]T, error), restore func([]T)) ([]T, string, error) {

	store := a.snapshotStore(ctx)
	if cached {
		if store == nil {
			return nil, "", fmt.Errorf("--cached needs REDIS_URL")
		}
		snap, found, err := snapshot.Load[T](ctx, store, name)
		if err != nil {
			return nil, "", err
		}
		if !found {
			return nil, "", fmt.Errorf("no saved %s", name)
		}
		restore(snap.Items)
		return snap.Items, fmt.Sprintf("(saved %s)", snap.SavedAt.Local().Format(time.DateTime)), nil
	}

	a.loading(name)
	items, err := load(ctx)
	if err != nil {
		return nil, "", err
	}
	if store != nil {
		if err := snapshot.Save(ctx, store, name, items); err != nil {
			a.log.Warn("could not save snapshot", "resource", name, "error", err)
		}
	}
	return items, "", nil
}

func today() models.Date {
	now := time.Now()
	return models.NewDate(now.Year(), now.Month(), now.Day())
}
