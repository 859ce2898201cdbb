// Package models holds the record shapes exchanged with the task, expense and
// ticket booking backends, together with the validation rules the client
// evaluates before any create or update request is sent.
package models

import "github.com/shopspring/decimal"

func init() {
	// Backends declare money fields as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
