package httpx

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestRetryableStatus(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusOK, false},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusRequestTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
	}
	for _, tc := range tests {
		if got := RetryableStatus(tc.code); got != tc.want {
			t.Errorf("RetryableStatus(%d) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestRetryableNetError(t *testing.T) {
	if RetryableNetError(nil) {
		t.Fatal("nil error should not be retryable")
	}
	if RetryableNetError(errors.New("boom")) {
		t.Fatal("plain error should not be retryable")
	}
	if !RetryableNetError(context.DeadlineExceeded) {
		t.Fatal("deadline exceeded should be retryable")
	}
	if !RetryableNetError(timeoutErr{}) {
		t.Fatal("net timeout should be retryable")
	}
}

func TestRetryAfter(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	if got := RetryAfter(resp, 2*time.Second, 10*time.Second); got != 2*time.Second {
		t.Errorf("no header: got %v, want fallback", got)
	}

	resp.Header.Set("Retry-After", "3")
	if got := RetryAfter(resp, 2*time.Second, 10*time.Second); got != 3*time.Second {
		t.Errorf("header honored: got %v, want 3s", got)
	}

	resp.Header.Set("Retry-After", "120")
	if got := RetryAfter(resp, 2*time.Second, 10*time.Second); got != 10*time.Second {
		t.Errorf("cap applied: got %v, want 10s", got)
	}

	if got := RetryAfter(nil, 2*time.Second, 10*time.Second); got != 2*time.Second {
		t.Errorf("nil response: got %v, want fallback", got)
	}
}

func TestJitterStaysWithinSpread(t *testing.T) {
	base := time.Second
	lo, hi := 800*time.Millisecond, 1200*time.Millisecond
	for i := 0; i < 50; i++ {
		got := Jitter(base)
		if got < lo || got > hi {
			t.Fatalf("Jitter(%v) = %v, want within [%v, %v]", base, got, lo, hi)
		}
	}
	if got := Jitter(0); got != 0 {
		t.Fatalf("Jitter(0) = %v, want 0", got)
	}
}
