package resource

import (
	"errors"
	"sync"
)

// Banner holds the last user-visible failure message. It is shared by the
// controllers of one app, so a success anywhere clears it.
type Banner struct {
	mu  sync.RWMutex
	msg string
}

func NewBanner() *Banner { return &Banner{} }

func (b *Banner) Set(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msg = msg
}

func (b *Banner) Clear() { b.Set("") }

func (b *Banner) Message() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.msg
}

// Err returns the message as an error, or nil when nothing failed.
func (b *Banner) Err() error {
	if msg := b.Message(); msg != "" {
		return errors.New(msg)
	}
	return nil
}
