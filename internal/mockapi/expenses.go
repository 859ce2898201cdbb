package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/shopspring/decimal"

	"resource-console/models"
)

// dateRange reads the inclusive start_date/end_date filters.
func dateRange(c echo.Context) (from, to models.Date, err error) {
	if v := c.QueryParam("start_date"); v != "" {
		if from, err = models.ParseDate(v); err != nil {
			return
		}
	}
	if v := c.QueryParam("end_date"); v != "" {
		to, err = models.ParseDate(v)
	}
	return
}

func inRange(d, from, to models.Date) bool {
	if !from.IsZero() && d.Before(from.Time) {
		return false
	}
	if !to.IsZero() && d.After(to.Time) {
		return false
	}
	return true
}

func (st *store) filterExpenses(from, to models.Date, category models.Category) []models.Expense {
	out := []models.Expense{}
	for _, e := range st.expenses {
		if category != "" && e.Category != category {
			continue
		}
		if inRange(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Server) listExpenses(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return invalid(c, err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	return c.JSON(http.StatusOK, st.filterExpenses(from, to, ""))
}

func (s *Server) listExpensesByCategory(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return invalid(c, err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	return c.JSON(http.StatusOK, st.filterExpenses(from, to, models.Category(c.PathParam("category"))))
}

func (s *Server) totalExpenses(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return invalid(c, err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	total := models.ExpenseTotal{Total: decimal.Zero, ByCategory: map[models.Category]decimal.Decimal{}}
	for _, e := range st.filterExpenses(from, to, "") {
		total.Total = total.Total.Add(e.Amount)
		total.ByCategory[e.Category] = total.ByCategory[e.Category].Add(e.Amount)
	}
	return c.JSON(http.StatusOK, total)
}

func (s *Server) createExpense(c echo.Context) error {
	var e models.Expense
	if err := c.Bind(&e); err != nil {
		return invalid(c, err)
	}
	if e.Date.IsZero() {
		now := s.now()
		e.Date = models.NewDate(now.Year(), now.Month(), now.Day())
	}
	if err := e.Validate(); err != nil {
		return invalid(c, err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	e.ID = st.nextID("expense")
	st.expenses = append(st.expenses, e)
	return c.JSON(http.StatusCreated, e)
}

func (s *Server) updateExpense(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var u models.ExpenseUpdate
	if err := c.Bind(&u); err != nil {
		return invalid(c, err)
	}
	if err := u.Validate(); err != nil {
		return invalid(c, err)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	i := indexByID(st.expenses, id)
	if i < 0 {
		return detail(c, http.StatusNotFound, "Expense not found")
	}

	e := st.expenses[i]
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	st.expenses[i] = e
	return c.JSON(http.StatusOK, e)
}

func (s *Server) deleteExpense(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()
	i := indexByID(st.expenses, id)
	if i < 0 {
		return detail(c, http.StatusNotFound, "Expense not found")
	}
	st.expenses = removeAt(st.expenses, i)
	return c.NoContent(http.StatusNoContent)
}
