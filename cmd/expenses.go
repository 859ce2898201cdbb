package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resource-console/internal/resource"
	"resource-console/internal/services"
	"resource-console/internal/ui"
	"resource-console/models"
)

func newExpensesCmd(a *app) *cobra.Command {
	var (
		filters filterFlags
		cached  bool
	)
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "List expenses with their summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filters.filter()
			if err != nil {
				return err
			}
			svc := a.expenseService()
			load := func(ctx context.Context) ([]models.Expense, error) { return svc.Load(ctx, f) }
			items, note, err := listed(cmd.Context(), a, snapshotName("expenses", f), cached, load, svc.Restore)
			if err != nil {
				return err
			}
			show(a.out, ui.Expenses(items))
			if !cached {
				show(a.out, ui.ExpenseSummary(svc.Total()))
			}
			show(a.out, note)
			return nil
		},
	}
	filters.AddFlags(cmd.Flags())
	cachedFlag(cmd, &cached)

	var in expenseInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := in.expense()
			if err != nil {
				return err
			}
			created, err := a.expenseService().Add(cmd.Context(), e)
			if err != nil {
				return err
			}
			show(a.out, fmt.Sprintf("Added expense %d", created.ID))
			return nil
		},
	}
	in.AddFlags(add)

	var upd expenseInput
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Change some fields of an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			u, err := upd.update(cmd)
			if err != nil {
				return err
			}
			if _, err := a.expenseService().Edit(cmd.Context(), id, u); err != nil {
				return err
			}
			show(a.out, fmt.Sprintf("Updated expense %d", id))
			return nil
		},
	}
	upd.AddFlags(edit)

	rm := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			removed, err := a.expenseService().Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if removed {
				show(a.out, fmt.Sprintf("Deleted expense %d", id))
			}
			return nil
		},
	}

	var summaryFilters filterFlags
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Show totals per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := summaryFilters.filter()
			if err != nil {
				return err
			}
			svc := a.expenseService()
			if _, err := svc.Load(cmd.Context(), f); err != nil {
				return err
			}
			show(a.out, ui.ExpenseSummary(svc.Total()))
			return nil
		},
	}
	summaryFilters.AddFlags(summary.Flags())

	var (
		exportFilters filterFlags
		format, path  string
	)
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the expenses and their totals as json, csv or pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := exportFilters.filter()
			if err != nil {
				return err
			}
			svc := a.expenseService()
			if _, err := svc.Load(cmd.Context(), f); err != nil {
				return err
			}
			if path == "" || path == "-" {
				return svc.Export(a.out, format)
			}
			file, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := svc.Export(file, format); err != nil {
				_ = file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			show(a.out, fmt.Sprintf("Wrote %s", path))
			return nil
		},
	}
	exportFilters.AddFlags(export.Flags())
	export.Flags().StringVarP(&format, "format", "f", "csv", "output format ("+strings.Join(services.ExportFormats, ", ")+")")
	export.Flags().StringVarP(&path, "output", "o", "", "file to write, stdout when empty")

	cmd.AddCommand(add, edit, rm, summary, export)
	return cmd
}

// snapshotName keys filtered lists apart from the full one.
func snapshotName(base string, f resource.Filter) string {
	if f.IsZero() {
		return base
	}
	parts := []string{base}
	if f.Category != "" {
		parts = append(parts, f.Category)
	}
	if q := f.Values().Encode(); q != "" {
		parts = append(parts, q)
	}
	return strings.Join(parts, ":")
}

type expenseInput struct {
	amount, category, date, description string
}

func (in *expenseInput) AddFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&in.amount, "amount", "a", "", "amount, greater than zero")
	fs.StringVarP(&in.category, "category", "c", "", "one of "+joinCategories())
	fs.StringVar(&in.date, "date", "", "day of the expense (YYYY-MM-DD), today when empty")
	fs.StringVarP(&in.description, "description", "d", "", "what it was for")
}

func joinCategories() string {
	names := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func (in *expenseInput) expense() (models.Expense, error) {
	e := models.Expense{
		Category:    models.Category(in.category),
		Description: in.description,
	}
	if in.amount != "" {
		d, err := parseDecimal("amount", in.amount)
		if err != nil {
			return e, err
		}
		e.Amount = d
	}
	if in.date == "" {
		e.Date = today()
		return e, nil
	}
	d, err := models.ParseDate(in.date)
	if err != nil {
		return e, err
	}
	e.Date = d
	return e, nil
}

// update carries only the flags that were given.
func (in *expenseInput) update(cmd *cobra.Command) (models.ExpenseUpdate, error) {
	var u models.ExpenseUpdate
	fs := cmd.Flags()
	if fs.Changed("amount") {
		d, err := parseDecimal("amount", in.amount)
		if err != nil {
			return u, err
		}
		u.Amount = &d
	}
	if fs.Changed("category") {
		c := models.Category(in.category)
		u.Category = &c
	}
	if fs.Changed("date") {
		d, err := models.ParseDate(in.date)
		if err != nil {
			return u, err
		}
		u.Date = &d
	}
	if fs.Changed("description") {
		desc := in.description
		u.Description = &desc
	}
	return u, nil
}
