package restclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource-console/utils"
)

type item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestClient_GetDecodesAndSendsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/items", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"a"},{"id":2,"title":"b"}]`))
	}))
	defer server.Close()

	c := New(server.URL+"/api/", WithToken("secret"))
	var out []item
	err := c.Get(context.Background(), "/items", url.Values{"start_date": {"2024-01-01"}}, &out)

	require.NoError(t, err)
	assert.Equal(t, []item{{1, "a"}, {2, "b"}}, out)
}

func TestClient_PostEncodesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var in item
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.ID = 9
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	}))
	defer server.Close()

	c := New(server.URL)
	var out item
	err := c.Post(context.Background(), "/items", item{Title: "new"}, &out)

	require.NoError(t, err)
	assert.Equal(t, item{ID: 9, Title: "new"}, out)
}

func TestClient_DeleteNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	assert.NoError(t, New(server.URL).Delete(context.Background(), "/items/3"))
}

func TestClient_EmptyBodyWhenRecordExpected(t *testing.T) {
	tests := []struct {
		name   string
		status int
		call   func(c *Client, out *item) error
	}{
		{"post 201 without body", http.StatusCreated, func(c *Client, out *item) error {
			return c.Post(context.Background(), "/items", item{Title: "new"}, out)
		}},
		{"put 200 without body", http.StatusOK, func(c *Client, out *item) error {
			return c.Put(context.Background(), "/items/3", item{Title: "x"}, out)
		}},
		{"patch 204", http.StatusNoContent, func(c *Client, out *item) error {
			return c.Patch(context.Background(), "/items/3/status", item{}, out)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			var out item
			err := tt.call(New(server.URL), &out)
			assert.ErrorIs(t, err, ErrEmptyBody)
			assert.Zero(t, out.ID)
		})
	}
}

func TestClient_StatusErrorDetail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"string detail", http.StatusNotFound, `{"detail":"Task not found"}`, "Task not found"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"},{"msg":"value is not a valid email"}]}`, "field required; value is not a valid email"},
		{"plain text", http.StatusInternalServerError, "boom\n", "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := New(server.URL).Get(context.Background(), "/x", nil, nil)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.detail, se.Detail)
			assert.Equal(t, tt.status == http.StatusNotFound, IsNotFound(err))
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	err := New(addr).Get(context.Background(), "/items", nil, nil)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.MethodGet, te.Method)
	assert.Equal(t, "/items", te.Path)
}

func TestClient_BreakerIgnoresClientErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cb := utils.NewCircuitBreaker("items")
	c := New(server.URL, WithBreaker(cb))
	for i := 0; i < 30; i++ {
		err := c.Get(context.Background(), "/items/1", nil, nil)
		assert.True(t, IsNotFound(err))
	}

	assert.Equal(t, 30, calls)
	assert.Equal(t, utils.StateClosed, cb.State())
}

func TestClient_BreakerOpenIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cb := utils.NewCircuitBreaker("items")
	c := New(server.URL, WithBreaker(cb))
	for i := 0; i < 20; i++ {
		_ = c.Get(context.Background(), "/items", nil, nil)
	}
	require.Equal(t, utils.StateOpen, cb.State())

	err := c.Get(context.Background(), "/items", nil, nil)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.ErrorIs(t, err, utils.ErrCircuitOpen)
}
