package models

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Task is a to-do entry of the task manager.
type Task struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func (t Task) GetID() int64 { return t.ID }

func (t Task) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Title, notBlank, validation.Length(0, 200)),
		validation.Field(&t.Description, validation.Length(0, 2000)),
	)
}
