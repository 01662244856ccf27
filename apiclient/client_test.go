package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
	AccessToken   string
	ContentType   string
	Body          map[string]interface{}
}

type recorder struct {
	mu   sync.Mutex
	last recordedRequest
}

func (r *recorder) get() recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.Query(),
			Authorization: r.Header.Get("Authorization"),
			AccessToken:   r.Header.Get("accesstoken"),
			ContentType:   r.Header.Get("Content-Type"),
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&got.Body)
		}
		rec.mu.Lock()
		rec.last = got
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestClient_AuthHeaders(t *testing.T) {
	ctx := context.Background()

	t.Run("token sets both headers", func(t *testing.T) {
		srv, rec := newTestServer(t, http.StatusOK, `{"success":true}`)
		c := New(srv.URL).WithToken("tok-123")

		require.NoError(t, c.Get(ctx, "/api/projects", nil, nil))
		assert.Equal(t, "Bearer tok-123", rec.get().Authorization)
		assert.Equal(t, "tok-123", rec.get().AccessToken)
		assert.Equal(t, "application/json", rec.get().ContentType)
	})

	t.Run("no token sends no auth headers", func(t *testing.T) {
		srv, rec := newTestServer(t, http.StatusOK, `{"success":true}`)
		c := New(srv.URL)

		require.NoError(t, c.Get(ctx, "/health", nil, nil))
		assert.Empty(t, rec.get().Authorization)
		assert.Empty(t, rec.get().AccessToken)
	})

	t.Run("WithToken does not mutate the original", func(t *testing.T) {
		srv, rec := newTestServer(t, http.StatusOK, `{"success":true}`)
		base := New(srv.URL)
		_ = base.WithToken("tok-123")

		require.NoError(t, base.Get(ctx, "/", nil, nil))
		assert.Empty(t, rec.get().Authorization)
	})
}

func TestClient_Methods(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantPath   string
		wantBody   map[string]interface{}
	}{
		{
			name:       "get with query",
			call:       func(c *Client) error { return c.Get(ctx, "/api/projects", url.Values{"status": {"Pending"}}, nil) },
			wantMethod: http.MethodGet,
			wantPath:   "/api/projects",
		},
		{
			name: "post body",
			call: func(c *Client) error {
				return c.Post(ctx, "/api/projects", map[string]interface{}{"projectName": "Site"}, nil)
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/projects",
			wantBody:   map[string]interface{}{"projectName": "Site"},
		},
		{
			name: "put body",
			call: func(c *Client) error {
				return c.Put(ctx, "/api/projects/p1", map[string]string{"description": "x"}, nil)
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/projects/p1",
			wantBody:   map[string]interface{}{"description": "x"},
		},
		{
			name: "patch body",
			call: func(c *Client) error {
				return c.Patch(ctx, "/api/projects/p1/status", map[string]string{"status": "Completed"}, nil)
			},
			wantMethod: http.MethodPatch,
			wantPath:   "/api/projects/p1/status",
			wantBody:   map[string]interface{}{"status": "Completed"},
		},
		{
			name:       "delete",
			call:       func(c *Client) error { return c.Delete(ctx, "/api/projects/p1", nil) },
			wantMethod: http.MethodDelete,
			wantPath:   "/api/projects/p1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, rec := newTestServer(t, http.StatusOK, `{"success":true}`)
			c := New(srv.URL + "/").WithToken("tok")

			require.NoError(t, tt.call(c))
			assert.Equal(t, tt.wantMethod, rec.get().Method)
			assert.Equal(t, tt.wantPath, rec.get().Path)
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, rec.get().Body)
			}
		})
	}

	t.Run("query is encoded", func(t *testing.T) {
		srv, rec := newTestServer(t, http.StatusOK, `{"success":true}`)
		c := New(srv.URL)
		q := url.Values{"status": {"In Progress"}, "clientId": {"3"}}

		require.NoError(t, c.Get(ctx, "/api/projects", q, nil))
		assert.Equal(t, "In Progress", rec.get().Query.Get("status"))
		assert.Equal(t, "3", rec.get().Query.Get("clientId"))
	})
}

func TestClient_Decode(t *testing.T) {
	ctx := context.Background()

	type payload struct {
		Items []string `json:"items"`
	}

	t.Run("payload decoded on success", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `{"success":true,"items":["a","b"]}`)
		var out payload
		require.NoError(t, New(srv.URL).Get(ctx, "/", nil, &out))
		assert.Equal(t, []string{"a", "b"}, out.Items)
	})

	t.Run("success false is an error", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `{"success":false,"message":"nope"}`)
		err := New(srv.URL).Get(ctx, "/", nil, nil)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusOK, apiErr.StatusCode)
		assert.Equal(t, "nope", apiErr.Message)
	})

	t.Run("error status carries the server message", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusBadRequest, `{"success":false,"message":"projectName: cannot be blank."}`)
		err := New(srv.URL).Post(ctx, "/", map[string]string{}, nil)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "projectName: cannot be blank.", apiErr.Message)
	})

	t.Run("error field is used when message is absent", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusInternalServerError, `{"error":"boom"}`)
		err := New(srv.URL).Get(ctx, "/", nil, nil)
		assert.EqualError(t, err, "API error (500): boom")
	})

	t.Run("401 matches ErrUnauthorized", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusUnauthorized, `{"success":false,"message":"invalid token"}`)
		err := New(srv.URL).Get(ctx, "/", nil, nil)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("404 matches ErrNotFound", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusNotFound, `{"success":false,"message":"project not found"}`)
		err := New(srv.URL).Delete(ctx, "/missing", nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-json error body becomes the message", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusBadGateway, `upstream down`)
		err := New(srv.URL).Get(ctx, "/", nil, nil)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "upstream down", apiErr.Message)
	})

	t.Run("non-json success body is malformed", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `<html>`)
		err := New(srv.URL).Get(ctx, "/", nil, &payload{})
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("empty body is fine", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusNoContent, ``)
		assert.NoError(t, New(srv.URL).Delete(ctx, "/x", &payload{}))
	})

	t.Run("connection failure is returned", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `{}`)
		srv.Close()
		assert.Error(t, New(srv.URL).Get(ctx, "/", nil, nil))
	})
}
