package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"
	CategoryRent          Category = "rent"
	CategoryOther         Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryRent,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

var categoryValues = func() []any {
	out := make([]any, len(Categories))
	for i, c := range Categories {
		out[i] = c
	}
	return out
}()

type Expense struct {
	ID          int64           `json:"id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        Date            `json:"date"`
}

func (e Expense) GetID() int64 { return e.ID }

func (e Expense) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Amount, positiveAmount),
		validation.Field(&e.Category, validation.Required, validation.In(categoryValues...)),
		validation.Field(&e.Date, requiredDate),
	)
}

// ExpenseUpdate is a partial replacement; nil fields are left as they are
// on the server.
type ExpenseUpdate struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *Category        `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *Date            `json:"date,omitempty"`
}

func (u ExpenseUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Amount, positiveAmount),
		validation.Field(&u.Category, validation.When(u.Category != nil, validation.Required, validation.In(categoryValues...))),
		validation.Field(&u.Date, requiredDate),
	)
}

// ExpenseTotal is the aggregate served by /expenses/total.
type ExpenseTotal struct {
	Total      decimal.Decimal              `json:"total"`
	ByCategory map[Category]decimal.Decimal `json:"by_category"`
}
