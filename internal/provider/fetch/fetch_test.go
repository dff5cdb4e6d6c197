package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(retries int) *Client {
	return NewClient(5*time.Second, retries, NewHostLimiter(1000, 1000), zap.NewNop())
}

func TestGetSendsBrowserUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.UserAgent()
	}))
	defer srv.Close()

	res, err := testClient(1).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	res.Body.Close()
	assert.Contains(t, got, "Chrome/")
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	res, err := testClient(3).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(3).Get(context.Background(), srv.URL)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetReportsGonePages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer srv.Close()

	_, err := testClient(3).Get(context.Background(), srv.URL)
	assert.True(t, errors.Is(err, ErrGone))
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"NAD C316","price":"1500"}`))
	}))
	defer srv.Close()

	var out struct {
		Name  string `json:"name"`
		Price string `json:"price"`
	}
	require.NoError(t, testClient(1).GetJSON(context.Background(), srv.URL, &out))
	assert.Equal(t, "NAD C316", out.Name)
}

func TestGetDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1 class="t">Rega Planar 3</h1></body></html>`))
	}))
	defer srv.Close()

	doc, err := testClient(1).GetDocument(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Rega Planar 3", doc.Find("h1.t").Text())
}
