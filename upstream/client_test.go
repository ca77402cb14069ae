package upstream_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/employeegw/upstream"
)

func TestDefaultClassifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code int
		want upstream.ErrorClass
	}{
		{code: http.StatusOK, want: upstream.Success},
		{code: http.StatusCreated, want: upstream.Success},
		{code: http.StatusNotFound, want: upstream.Permanent},
		{code: http.StatusTooManyRequests, want: upstream.Transient},
		{code: http.StatusBadRequest, want: upstream.Transient},
		{code: http.StatusServiceUnavailable, want: upstream.Transient},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, upstream.DefaultClassifier(tt.code), "status %d", tt.code)
	}
}

func TestErrorClassString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "success", upstream.Success.String())
	assert.Equal(t, "transient", upstream.Transient.String())
	assert.Equal(t, "permanent", upstream.Permanent.String())
	assert.Equal(t, "unknown", upstream.ErrorClass(42).String())
}

func TestClientDoSuccessKeepsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := upstream.NewClient(srv.Client(), nil).Do(req)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClientDoReturnsStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := upstream.NewClient(srv.Client(), nil).Do(req)
	require.Nil(t, resp)

	var statusErr *upstream.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, upstream.Transient, statusErr.Class)
	assert.Equal(t, "http status 503 (transient)", statusErr.Error())
}

func TestClientDoCustomClassifier(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := upstream.NewClient(srv.Client(), func(int) upstream.ErrorClass {
		return upstream.Success
	}).Do(req)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}

func TestClientDoTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, url, nil)
	require.NoError(t, err)

	_, err = upstream.NewClient(nil, nil).Do(req)
	require.Error(t, err)

	var statusErr *upstream.StatusError
	assert.False(t, errors.As(err, &statusErr))
}
