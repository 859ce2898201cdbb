// Package resource keeps a local cache of one remote collection in sync
// with its REST endpoint.
package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"resource-console/monitoring"
)

var (
	ErrNotCached       = errors.New("record is not cached")
	ErrIdentityChanged = errors.New("response carries a different id")
)

// Record is anything with a server-assigned id.
type Record interface {
	GetID() int64
}

// Collection is the remote side of a controller.
type Collection[T Record] interface {
	List(ctx context.Context, f Filter) ([]T, error)
	Create(ctx context.Context, body any) (T, error)
	Update(ctx context.Context, id int64, body any) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Getter is implemented by collections that can read a single record.
type Getter[T Record] interface {
	Get(ctx context.Context, id int64) (T, error)
}

// Messages are the banner texts set when an operation fails. An empty
// Confirm means deletes need no confirmation.
type Messages struct {
	List    string
	Get     string
	Create  string
	Update  string
	Delete  string
	Confirm string
}

func DefaultMessages(singular, plural string) Messages {
	return Messages{
		List:   fmt.Sprintf("Failed to load %s. Please try again.", plural),
		Get:    fmt.Sprintf("Failed to load %s details. Please try again.", singular),
		Create: fmt.Sprintf("Failed to create %s. Please try again.", singular),
		Update: fmt.Sprintf("Failed to update %s. Please try again.", singular),
		Delete: fmt.Sprintf("Failed to delete %s. Please try again.", singular),
	}
}

type Options struct {
	Messages Messages

	// Banner defaults to a private one.
	Banner *Banner

	// Confirmer defaults to NeverConfirm when Messages.Confirm is set.
	Confirmer Confirmer

	Logger *slog.Logger
}

// Controller caches the records of one collection. The cache only changes
// after the backend confirmed an operation. Concurrent calls are allowed;
// the last response to arrive wins.
type Controller[T Record] struct {
	name    string
	coll    Collection[T]
	msgs    Messages
	banner  *Banner
	confirm Confirmer
	logger  *slog.Logger

	mu       sync.RWMutex
	items    []T
	inflight atomic.Int32
}

func NewController[T Record](name string, coll Collection[T], opts Options) *Controller[T] {
	c := &Controller[T]{
		name:    name,
		coll:    coll,
		msgs:    opts.Messages,
		banner:  opts.Banner,
		confirm: opts.Confirmer,
		logger:  opts.Logger,
		items:   []T{},
	}
	if c.banner == nil {
		c.banner = NewBanner()
	}
	if c.confirm == nil {
		c.confirm = NeverConfirm
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("resource", name)
	return c
}

func (c *Controller[T]) Name() string { return c.name }

func (c *Controller[T]) Banner() *Banner { return c.banner }

// List fetches the collection and replaces the cache with it.
func (c *Controller[T]) List(ctx context.Context, f Filter) ([]T, error) {
	defer c.track()()

	items, err := c.coll.List(ctx, f)
	if err != nil {
		return nil, c.fail("list", c.msgs.List, err)
	}

	c.mu.Lock()
	c.items = append([]T(nil), items...)
	c.mu.Unlock()

	c.succeed("list")
	return c.Items(), nil
}

// Get reads one record without touching the cache. Collections that cannot
// read single records are served from the cache.
func (c *Controller[T]) Get(ctx context.Context, id int64) (T, error) {
	getter, ok := c.coll.(Getter[T])
	if !ok {
		if rec, found := c.Find(id); found {
			return rec, nil
		}
		var zero T
		return zero, fmt.Errorf("get %s %d: %w", c.name, id, ErrNotCached)
	}

	defer c.track()()
	rec, err := getter.Get(ctx, id)
	if err != nil {
		return rec, c.fail("get", c.msgs.Get, err)
	}
	c.succeed("get")
	return rec, nil
}

// Create validates body, sends it and appends the stored record. A body
// that fails validation is never sent.
func (c *Controller[T]) Create(ctx context.Context, body any) (T, error) {
	var zero T
	if err := c.validate("create", body); err != nil {
		return zero, err
	}

	defer c.track()()
	rec, err := c.coll.Create(ctx, body)
	if err != nil {
		return zero, c.fail("create", c.msgs.Create, err)
	}

	c.mu.Lock()
	if i := c.indexOf(rec.GetID()); i >= 0 {
		c.items[i] = rec
	} else {
		c.items = append(c.items, rec)
	}
	c.mu.Unlock()

	c.succeed("create")
	return rec, nil
}

// Update sends a full or partial replacement and swaps the cached record.
func (c *Controller[T]) Update(ctx context.Context, id int64, body any) (T, error) {
	var zero T
	if err := c.validate("update", body); err != nil {
		return zero, err
	}

	return c.Mutate(ctx, "update", c.msgs.Update, id, func(ctx context.Context) (T, error) {
		return c.coll.Update(ctx, id, body)
	})
}

// Mutate runs a call that returns the new state of record id and replaces
// the cached copy with it. It backs restricted updates such as a status
// change.
func (c *Controller[T]) Mutate(ctx context.Context, op, msg string, id int64, call func(context.Context) (T, error)) (T, error) {
	var zero T
	defer c.track()()

	rec, err := call(ctx)
	if err != nil {
		return zero, c.fail(op, msg, err)
	}
	if rec.GetID() != id {
		return zero, c.fail(op, msg, fmt.Errorf("sent %d, got %d: %w", id, rec.GetID(), ErrIdentityChanged))
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].GetID() == id {
			c.items[i] = rec
		}
	}
	c.mu.Unlock()

	c.succeed(op)
	return rec, nil
}

// Remove deletes record id after confirmation. It reports false with a nil
// error when the user declined, in which case nothing was sent.
func (c *Controller[T]) Remove(ctx context.Context, id int64) (bool, error) {
	if c.msgs.Confirm != "" {
		ok, err := c.confirm.Confirm(ctx, c.msgs.Confirm)
		if err != nil {
			return false, fmt.Errorf("delete %s %d: confirm: %w", c.name, id, err)
		}
		if !ok {
			monitoring.TrackOperation(c.name, "delete", "declined")
			c.logger.Debug("delete declined", "id", id)
			return false, nil
		}
	}

	defer c.track()()
	if err := c.coll.Delete(ctx, id); err != nil {
		return false, c.fail("delete", c.msgs.Delete, err)
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, rec := range c.items {
		if rec.GetID() != id {
			kept = append(kept, rec)
		}
	}
	c.items = kept
	c.mu.Unlock()

	c.succeed("delete")
	return true, nil
}

// Restore seeds the cache without a remote read, for instance from a
// saved snapshot.
func (c *Controller[T]) Restore(items []T) {
	c.mu.Lock()
	c.items = append([]T{}, items...)
	c.mu.Unlock()
	monitoring.TrackCacheSize(c.name, len(items))
}

// Items returns a copy of the cache in server order.
func (c *Controller[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T{}, c.items...)
}

func (c *Controller[T]) Find(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Loading reports whether a remote call is in flight.
func (c *Controller[T]) Loading() bool {
	return c.inflight.Load() > 0
}

// Err returns the banner message of the last failure, if it has not been
// cleared by a later success.
func (c *Controller[T]) Err() error {
	return c.banner.Err()
}

func (c *Controller[T]) indexOf(id int64) int {
	for i := range c.items {
		if c.items[i].GetID() == id {
			return i
		}
	}
	return -1
}

func (c *Controller[T]) track() func() {
	c.inflight.Add(1)
	return func() { c.inflight.Add(-1) }
}

func (c *Controller[T]) validate(op string, body any) error {
	v, ok := body.(validation.Validatable)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		monitoring.TrackOperation(c.name, op, "invalid")
		return err
	}
	return nil
}

func (c *Controller[T]) fail(op, msg string, err error) error {
	if msg == "" {
		msg = "Something went wrong. Please try again."
	}
	c.banner.Set(msg)
	monitoring.TrackOperation(c.name, op, "failure")
	c.logger.Warn("operation failed", "op", op, "error", err)
	return fmt.Errorf("%s %s: %w", op, c.name, err)
}

func (c *Controller[T]) succeed(op string) {
	c.banner.Clear()
	monitoring.TrackOperation(c.name, op, "success")

	c.mu.RLock()
	n := len(c.items)
	c.mu.RUnlock()
	monitoring.TrackCacheSize(c.name, n)
}
