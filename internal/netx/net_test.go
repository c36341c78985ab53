package netx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPut(t *testing.T) {
	file := []byte("hello, s3")

	t.Run("success 200 OK", func(t *testing.T) {
		var gotBody []byte
		var gotCT, gotMethod, gotExtra string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotExtra = r.Header.Get("X-Chunk-Index")
			gotBody, _ = io.ReadAll(r.Body)
			w.Header().Set("ETag", `"abc"`)
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		var last int64
		h, err := Put(context.Background(), ts.Client(), ts.URL+"/some/presigned?X-Amz-Signature=abc", file,
			http.Header{"X-Chunk-Index": {"4"}}, func(n int64) { last = n })
		require.NoError(t, err)

		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "application/octet-stream", gotCT)
		assert.Equal(t, "4", gotExtra)
		assert.Equal(t, file, gotBody)
		assert.Equal(t, `"abc"`, h.Get("ETag"))
		assert.Equal(t, int64(len(file)), last)
	})

	t.Run("non-2xx -> StatusError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("SignatureDoesNotMatch"))
		}))
		defer ts.Close()

		_, err := Put(context.Background(), nil, ts.URL, file, nil, nil)
		require.Error(t, err)

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusForbidden, se.Code)
		assert.True(t, strings.Contains(err.Error(), "upload failed: 403"))
		assert.False(t, Retryable(err))
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, err := Put(context.Background(), nil, ts.URL, file, nil, nil)
		require.Error(t, err)
		assert.True(t, Retryable(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Put(ctx, nil, ts.URL, file, nil, nil)
		require.Error(t, err)
		assert.False(t, Retryable(err))
	})
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusTooManyRequests, true},
		{http.StatusRequestTimeout, true},
		{http.StatusBadRequest, false},
		{http.StatusForbidden, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Retryable(&StatusError{Code: tt.code}), tt.code)
	}
	assert.False(t, Retryable(nil))
}
