package resource

import (
	"context"
	"fmt"
	"net/url"

	"resource-console/internal/restclient"
)

// Route picks the list path and query for a filter.
type Route func(base string, f Filter) (string, url.Values)

// Endpoint is a REST collection: GET/POST on path, GET/PUT/DELETE on
// path/{id}.
type Endpoint[T Record] struct {
	client *restclient.Client
	path   string
	route  Route
}

func NewEndpoint[T Record](client *restclient.Client, path string) *Endpoint[T] {
	return &Endpoint[T]{client: client, path: path, route: defaultRoute}
}

// WithRoute replaces the list route, for backends that move a filter into
// the path.
func (e *Endpoint[T]) WithRoute(r Route) *Endpoint[T] {
	e.route = r
	return e
}

func defaultRoute(base string, f Filter) (string, url.Values) {
	q := f.Values()
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	return base, q
}

func (e *Endpoint[T]) Client() *restclient.Client { return e.client }

func (e *Endpoint[T]) Path() string { return e.path }

func (e *Endpoint[T]) ItemPath(id int64) string {
	return fmt.Sprintf("%s/%d", e.path, id)
}

func (e *Endpoint[T]) List(ctx context.Context, f Filter) ([]T, error) {
	path, query := e.route(e.path, f)
	var out []T
	if err := e.client.Get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (e *Endpoint[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	err := e.client.Get(ctx, e.ItemPath(id), nil, &out)
	return out, err
}

func (e *Endpoint[T]) Create(ctx context.Context, body any) (T, error) {
	var out T
	err := e.client.Post(ctx, e.path, body, &out)
	return out, err
}

func (e *Endpoint[T]) Update(ctx context.Context, id int64, body any) (T, error) {
	var out T
	err := e.client.Put(ctx, e.ItemPath(id), body, &out)
	return out, err
}

func (e *Endpoint[T]) Delete(ctx context.Context, id int64) error {
	return e.client.Delete(ctx, e.ItemPath(id))
}
