package services

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/shopspring/decimal"

	"resource-console/internal/resource"
	"resource-console/internal/restclient"
	"resource-console/models"
)

var expenseMessages = resource.Messages{
	List:    "Failed to load expenses. Please try again.",
	Get:     "Failed to load expense. Please try again.",
	Create:  "Failed to add expense. Please try again.",
	Update:  "Failed to update expense. Please try again.",
	Delete:  "Failed to delete expense. Please try again.",
	Confirm: "Are you sure you want to delete this expense?",
}

const totalMessage = "Failed to load expense summary. Please try again."

// expenseRoute sends a category filter through /expenses/category/{cat}.
func expenseRoute(base string, f resource.Filter) (string, url.Values) {
	q := f.Values()
	if f.Category != "" {
		return base + "/category/" + url.PathEscape(f.Category), q
	}
	return base, q
}

// ExpenseService keeps the expense list and its totals. Totals are re-read
// after every change, over the date range of the last load.
type ExpenseService struct {
	*resource.Controller[models.Expense]
	view view

	mu     sync.RWMutex
	filter resource.Filter
	total  models.ExpenseTotal
}

func NewExpenseService(client *restclient.Client, opts Options) *ExpenseService {
	opts = opts.withDefaults()
	ep := resource.NewEndpoint[models.Expense](client, "/expenses").WithRoute(expenseRoute)
	return &ExpenseService{
		Controller: resource.NewController[models.Expense]("expenses", ep, opts.controller(expenseMessages)),
		view:       view{name: "expenses", client: client, banner: opts.Banner, logger: opts.Logger},
		total:      emptyTotal(),
	}
}

func emptyTotal() models.ExpenseTotal {
	return models.ExpenseTotal{Total: decimal.Zero, ByCategory: map[models.Category]decimal.Decimal{}}
}

// Load lists expenses matching f and refreshes the totals for the same
// date range.
func (s *ExpenseService) Load(ctx context.Context, f resource.Filter) ([]models.Expense, error) {
	if f.Category != "" && !models.Category(f.Category).Valid() {
		return nil, fmt.Errorf("load expenses: unknown category %q", f.Category)
	}
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()

	items, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if _, err := s.RefreshTotal(ctx); err != nil {
		return items, err
	}
	return items, nil
}

func (s *ExpenseService) Add(ctx context.Context, e models.Expense) (models.Expense, error) {
	created, err := s.Create(ctx, e)
	if err != nil {
		return created, err
	}
	_, err = s.RefreshTotal(ctx)
	return created, err
}

func (s *ExpenseService) Edit(ctx context.Context, id int64, u models.ExpenseUpdate) (models.Expense, error) {
	updated, err := s.Update(ctx, id, u)
	if err != nil {
		return updated, err
	}
	_, err = s.RefreshTotal(ctx)
	return updated, err
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.Remove(ctx, id)
	if err != nil || !removed {
		return removed, err
	}
	_, err = s.RefreshTotal(ctx)
	return true, err
}

// RefreshTotal re-reads /expenses/total. The category of the last filter
// is ignored; totals always cover every category.
func (s *ExpenseService) RefreshTotal(ctx context.Context) (models.ExpenseTotal, error) {
	s.mu.RLock()
	q := resource.Filter{StartDate: s.filter.StartDate, EndDate: s.filter.EndDate}.Values()
	s.mu.RUnlock()

	total, err := fetch[models.ExpenseTotal](ctx, s.view, totalMessage, "/expenses/total", q)
	if err != nil {
		return s.Total(), err
	}
	if total.ByCategory == nil {
		total.ByCategory = map[models.Category]decimal.Decimal{}
	}

	s.mu.Lock()
	s.total = total
	s.mu.Unlock()
	return total, nil
}

func (s *ExpenseService) Total() models.ExpenseTotal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := models.ExpenseTotal{Total: s.total.Total, ByCategory: make(map[models.Category]decimal.Decimal, len(s.total.ByCategory))}
	for k, v := range s.total.ByCategory {
		out.ByCategory[k] = v
	}
	return out
}
