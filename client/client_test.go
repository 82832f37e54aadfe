package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starling/client"
	"starling/pkg/sentinel"
	"starling/pkg/testutil"
)

func newClient(srv *testutil.Server) *client.Client {
	return client.New(client.Config{AccessToken: "test-token", BaseURL: srv.URL})
}

func TestGetSendsAuthHeadersAndQuery(t *testing.T) {
	srv := testutil.NewServer(t)

	var gotAuth, gotAccept, gotQuery string
	srv.Handle(http.MethodGet, "/things", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.RawQuery
		testutil.WriteJSON(w, http.StatusOK, map[string]string{"name": "ok"})
	})

	var out struct {
		Name string `json:"name"`
	}
	query := url.Values{"month": {"AUGUST"}, "year": {"2026"}}
	require.NoError(t, newClient(srv).Get(context.Background(), "/things", query, &out))

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "month=AUGUST&year=2026", gotQuery)
	assert.Equal(t, "ok", out.Name)
}

func TestPutSendsJSONBody(t *testing.T) {
	srv := testutil.NewServer(t)

	var gotContentType string
	var gotBody map[string]int64
	srv.Handle(http.MethodPut, "/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		testutil.DecodeJSONBody(t, r, &gotBody)
		w.WriteHeader(http.StatusOK)
	})

	err := newClient(srv).Put(context.Background(), "/things/42", map[string]int64{"minorUnits": 1250}, nil)
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, int64(1250), gotBody["minorUnits"])
}

func TestStatusErrorMapping(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.GetStatus("/missing", http.StatusNotFound)
	srv.GetStatus("/forbidden", http.StatusForbidden)
	srv.GetStatus("/expired", http.StatusUnauthorized)
	srv.GetStatus("/flaky", http.StatusServiceUnavailable)

	c := newClient(srv)
	ctx := context.Background()

	assert.ErrorIs(t, c.Get(ctx, "/missing", nil, nil), sentinel.ErrNotFound)
	assert.ErrorIs(t, c.Get(ctx, "/forbidden", nil, nil), sentinel.ErrUnauthorized)
	assert.ErrorIs(t, c.Get(ctx, "/expired", nil, nil), sentinel.ErrUnauthorized)
	assert.ErrorIs(t, c.Get(ctx, "/flaky", nil, nil), sentinel.ErrUnavailable)
}

func TestUnexpectedStatusReturnsAPIError(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle(http.MethodGet, "/broken", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
	})

	err := newClient(srv).Get(context.Background(), "/broken", nil, nil)
	require.Error(t, err)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "/broken", apiErr.Path)
	assert.Contains(t, apiErr.Body, "boom")
}

func TestReadTimeoutBoundsGet(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle(http.MethodGet, "/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})

	c := client.New(client.Config{
		AccessToken: "test-token",
		BaseURL:     srv.URL,
		ReadTimeout: 50 * time.Millisecond,
	})

	start := time.Now()
	err := c.Get(context.Background(), "/slow", nil, nil)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestMalformedBodySurfacesDecodeError(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Handle(http.MethodGet, "/garbled", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{not json")) //nolint:errcheck // test fixture
	})

	var out map[string]any
	err := newClient(srv).Get(context.Background(), "/garbled", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
