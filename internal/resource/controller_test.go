package resource

import (
	"context"
	"errors"
	"sync"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

func (n note) GetID() int64 { return n.ID }

func (n note) Validate() error {
	return validation.ValidateStruct(&n, validation.Field(&n.Text, validation.Required))
}

// memCollection is an in-memory Collection that counts calls.
type memCollection struct {
	mu      sync.Mutex
	rows    []note
	nextID  int64
	calls   map[string]int
	failOn  map[string]error
	rewrite func(note) note
}

func newMemCollection(rows ...note) *memCollection {
	return &memCollection{rows: rows, nextID: 100, calls: map[string]int{}, failOn: map[string]error{}}
}

func (m *memCollection) hit(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
	return m.failOn[op]
}

func (m *memCollection) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *memCollection) List(_ context.Context, _ Filter) ([]note, error) {
	if err := m.hit("list"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]note{}, m.rows...), nil
}

func (m *memCollection) Create(_ context.Context, body any) (note, error) {
	if err := m.hit("create"); err != nil {
		return note{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := body.(note)
	m.nextID++
	n.ID = m.nextID
	m.rows = append(m.rows, n)
	return n, nil
}

func (m *memCollection) Update(_ context.Context, id int64, body any) (note, error) {
	if err := m.hit("update"); err != nil {
		return note{}, err
	}
	n := body.(note)
	n.ID = id
	if m.rewrite != nil {
		n = m.rewrite(n)
	}
	return n, nil
}

func (m *memCollection) Delete(_ context.Context, id int64) error {
	return m.hit("delete")
}

var errDown = errors.New("connection refused")

func newNotes(coll *memCollection, opts Options) *Controller[note] {
	if opts.Messages == (Messages{}) {
		opts.Messages = DefaultMessages("note", "notes")
	}
	return NewController[note]("notes", coll, opts)
}

func TestController_ListReplacesCache(t *testing.T) {
	coll := newMemCollection(note{1, "a"}, note{2, "b"})
	c := newNotes(coll, Options{})
	c.Restore([]note{{9, "stale"}})

	items, err := c.List(context.Background(), Filter{})

	require.NoError(t, err)
	assert.Equal(t, []note{{1, "a"}, {2, "b"}}, items)
	assert.Equal(t, items, c.Items())
	assert.NoError(t, c.Err())
	assert.False(t, c.Loading())
}

func TestController_ListFailureKeepsCache(t *testing.T) {
	coll := newMemCollection()
	coll.failOn["list"] = errDown
	c := newNotes(coll, Options{})
	c.Restore([]note{{1, "kept"}})

	_, err := c.List(context.Background(), Filter{})

	assert.ErrorIs(t, err, errDown)
	assert.Equal(t, []note{{1, "kept"}}, c.Items())
	assert.EqualError(t, c.Err(), "Failed to load notes. Please try again.")
}

func TestController_CreateAppendsOnce(t *testing.T) {
	coll := newMemCollection(note{1, "a"})
	c := newNotes(coll, Options{})
	_, err := c.List(context.Background(), Filter{})
	require.NoError(t, err)

	created, err := c.Create(context.Background(), note{Text: "new"})

	require.NoError(t, err)
	assert.Equal(t, int64(101), created.ID)
	assert.Equal(t, []note{{1, "a"}, {101, "new"}}, c.Items())
}

func TestController_CreateRejectsInvalidWithoutRequest(t *testing.T) {
	coll := newMemCollection()
	c := newNotes(coll, Options{})

	_, err := c.Create(context.Background(), note{})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "text")
	assert.Zero(t, coll.count("create"))
	assert.Empty(t, c.Items())
	assert.NoError(t, c.Err(), "validation errors do not raise the banner")
}

func TestController_CreateFailureLeavesCache(t *testing.T) {
	coll := newMemCollection()
	coll.failOn["create"] = errDown
	c := newNotes(coll, Options{})

	_, err := c.Create(context.Background(), note{Text: "x"})

	assert.Error(t, err)
	assert.Empty(t, c.Items())
	assert.EqualError(t, c.Err(), "Failed to create note. Please try again.")
}

func TestController_UpdateReplacesByID(t *testing.T) {
	coll := newMemCollection(note{1, "a"}, note{2, "b"})
	c := newNotes(coll, Options{})
	_, _ = c.List(context.Background(), Filter{})

	updated, err := c.Update(context.Background(), 2, note{Text: "changed"})

	require.NoError(t, err)
	assert.Equal(t, note{2, "changed"}, updated)
	assert.Equal(t, []note{{1, "a"}, {2, "changed"}}, c.Items())
}

func TestController_UpdateRejectsDifferentID(t *testing.T) {
	coll := newMemCollection(note{1, "a"})
	coll.rewrite = func(n note) note { n.ID = 77; return n }
	c := newNotes(coll, Options{})
	_, _ = c.List(context.Background(), Filter{})

	_, err := c.Update(context.Background(), 1, note{Text: "changed"})

	assert.ErrorIs(t, err, ErrIdentityChanged)
	assert.Equal(t, []note{{1, "a"}}, c.Items())
	assert.EqualError(t, c.Err(), "Failed to update note. Please try again.")
}

func TestController_RemoveDeclinedSendsNothing(t *testing.T) {
	coll := newMemCollection(note{1, "a"})
	msgs := DefaultMessages("note", "notes")
	msgs.Confirm = "Are you sure you want to delete this note?"

	var asked string
	c := newNotes(coll, Options{
		Messages: msgs,
		Confirmer: ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
			asked = prompt
			return false, nil
		}),
	})
	_, _ = c.List(context.Background(), Filter{})

	removed, err := c.Remove(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, msgs.Confirm, asked)
	assert.Zero(t, coll.count("delete"))
	assert.Len(t, c.Items(), 1)
}

func TestController_RemoveWithoutConfirmerDenies(t *testing.T) {
	coll := newMemCollection(note{1, "a"})
	msgs := DefaultMessages("note", "notes")
	msgs.Confirm = "Sure?"
	c := newNotes(coll, Options{Messages: msgs})

	removed, err := c.Remove(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Zero(t, coll.count("delete"))
}

func TestController_RemoveConfirmed(t *testing.T) {
	coll := newMemCollection(note{1, "a"}, note{2, "b"})
	msgs := DefaultMessages("note", "notes")
	msgs.Confirm = "Sure?"
	c := newNotes(coll, Options{Messages: msgs, Confirmer: AlwaysConfirm})
	_, _ = c.List(context.Background(), Filter{})

	removed, err := c.Remove(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, coll.count("delete"))
	assert.Equal(t, []note{{2, "b"}}, c.Items())
}

func TestController_RemoveFailureKeepsRecord(t *testing.T) {
	coll := newMemCollection(note{1, "a"})
	coll.failOn["delete"] = errDown
	c := newNotes(coll, Options{})
	_, _ = c.List(context.Background(), Filter{})

	removed, err := c.Remove(context.Background(), 1)

	assert.Error(t, err)
	assert.False(t, removed)
	assert.Len(t, c.Items(), 1)
	assert.EqualError(t, c.Err(), "Failed to delete note. Please try again.")
}

func TestController_SuccessClearsSharedBanner(t *testing.T) {
	banner := NewBanner()
	failing := newMemCollection()
	failing.failOn["list"] = errDown
	a := newNotes(failing, Options{Banner: banner})
	b := newNotes(newMemCollection(), Options{Banner: banner})

	_, _ = a.List(context.Background(), Filter{})
	require.Error(t, b.Err())

	_, err := b.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.NoError(t, a.Err())
}

func TestController_GetFallsBackToCache(t *testing.T) {
	c := newNotes(newMemCollection(), Options{})
	c.Restore([]note{{4, "cached"}})

	got, err := c.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "cached", got.Text)

	_, err = c.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotCached)
}

func TestController_ConcurrentCreates(t *testing.T) {
	coll := newMemCollection()
	c := newNotes(coll, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Create(context.Background(), note{Text: "x"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, c.Items(), 20)
}
