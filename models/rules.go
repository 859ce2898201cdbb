package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

var (
	errBlank       = validation.NewError("validation_blank", "cannot be blank")
	errNotPositive = validation.NewError("validation_not_positive", "must be a positive number")
	errNegative    = validation.NewError("validation_negative", "must not be negative")
	errNoDate      = validation.NewError("validation_date_required", "is required")
	errNotDecimal  = validation.NewError("validation_not_decimal", "must be a decimal number")
)

// notBlank rejects empty and whitespace-only strings. A nil *string passes,
// which lets partial updates skip fields they do not carry.
var notBlank = validation.By(func(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, _ := v.(string)
	if strings.TrimSpace(s) == "" {
		return errBlank
	}
	return nil
})

var positiveAmount = decimalRule(func(d decimal.Decimal) error {
	if !d.IsPositive() {
		return errNotPositive
	}
	return nil
})

var nonNegativeAmount = decimalRule(func(d decimal.Decimal) error {
	if d.IsNegative() {
		return errNegative
	}
	return nil
})

// decimalRule inspects the raw value: validation.Indirect would turn a
// decimal into its driver.Valuer string.
func decimalRule(check func(decimal.Decimal) error) validation.Rule {
	return validation.By(func(value any) error {
		switch d := value.(type) {
		case decimal.Decimal:
			return check(d)
		case *decimal.Decimal:
			if d == nil {
				return nil
			}
			return check(*d)
		}
		return errNotDecimal
	})
}

var requiredDate = validation.By(func(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	switch d := v.(type) {
	case Date:
		if d.IsZero() {
			return errNoDate
		}
	case Timestamp:
		if d.IsZero() {
			return errNoDate
		}
	}
	return nil
})
