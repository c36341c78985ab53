// Package netx holds the raw HTTP PUT used to send bytes to presigned
// storage URLs and the classification of its failures.
package netx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
)

// StatusError is a PUT answered with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upload failed: %s", e.Status)
	}
	return fmt.Sprintf("upload failed: %s; body: %s", e.Status, e.Body)
}

// Retryable reports whether a PUT failure may succeed when repeated:
// transport errors, timeouts, throttling and server errors. Client errors
// such as an expired signature are final.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code >= 500, se.Code == http.StatusRequestTimeout, se.Code == http.StatusTooManyRequests:
			return true
		default:
			return false
		}
	}
	return true
}

// Put sends body to url and returns the response headers on success.
// Progress, when set, is called with the running count of bytes read by the
// transport.
func Put(ctx context.Context, client *http.Client, url string, body []byte, header http.Header, progress func(sent int64)) (http.Header, error) {
	if client == nil {
		client = http.DefaultClient
	}

	var r io.Reader = bytes.NewReader(body)
	if progress != nil {
		r = &countingReader{r: r, fn: progress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, r)
	if err != nil {
		return nil, err
	}
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Type", "application/octet-stream")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Header, nil
}

type countingReader struct {
	r  io.Reader
	n  atomic.Int64
	fn func(int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.fn(c.n.Add(int64(n)))
	}
	return n, err
}
