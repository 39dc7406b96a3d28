package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// timeoutErr is a minimal net.Error for testing transport classification
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestStoreErrorCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		want   ErrorCode
		wantOK bool
	}{
		{name: "nil", err: nil, want: ErrorCodeUnknown, wantOK: false},
		{name: "redis nil reply", err: redis.Nil, want: ErrorCodeNotFound, wantOK: true},
		{name: "net error", err: timeoutErr{}, want: ErrorCodeUnavailable, wantOK: true},
		{name: "loading", err: stderrs.New("LOADING Redis is loading the dataset"), want: ErrorCodeUnavailable, wantOK: true},
		{name: "readonly", err: stderrs.New("READONLY You can't write against a read only replica"), want: ErrorCodeUnavailable, wantOK: true},
		{name: "wrongtype", err: stderrs.New("WRONGTYPE Operation against a key holding the wrong kind of value"), want: ErrorCodeConflict, wantOK: true},
		{name: "generic err reply", err: stderrs.New("ERR unknown command"), want: ErrorCodeStore, wantOK: true},
		{name: "foreign", err: stderrs.New("something else"), want: ErrorCodeUnknown, wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := StoreErrorCode(tc.err)
			if got != tc.want || ok != tc.wantOK {
				t.Fatalf("StoreErrorCode(%v) = (%v, %v), want (%v, %v)", tc.err, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	if IsRetryable(nil) {
		t.Fatalf("nil should not be retryable")
	}
	if IsRetryable(context.Canceled) || IsRetryable(context.DeadlineExceeded) {
		t.Fatalf("local cancellation should not be retryable")
	}
	if IsRetryable(redis.Nil) {
		t.Fatalf("nil reply should not be retryable")
	}
	if !IsRetryable(timeoutErr{}) {
		t.Fatalf("net timeout should be retryable")
	}
	if !IsRetryable(stderrs.New("TRYAGAIN Multiple keys request during rehashing")) {
		t.Fatalf("TRYAGAIN should be retryable")
	}
	if !IsRetryable(fmt.Errorf("pipeline exec: %w", stderrs.New("LOADING Redis is loading"))) {
		t.Fatalf("wrapped LOADING should be retryable")
	}
	if IsRetryable(stderrs.New("WRONGTYPE Operation against a key")) {
		t.Fatalf("WRONGTYPE should not be retryable")
	}

	// wrapped deadline still wins over the transport text
	werr := fmt.Errorf("exec after %s: %w", time.Second, context.DeadlineExceeded)
	if IsRetryable(werr) {
		t.Fatalf("wrapped deadline should not be retryable")
	}
}

func TestFromRedis(t *testing.T) {
	t.Parallel()

	if FromRedis(nil, "x") != nil {
		t.Fatalf("FromRedis(nil) should be nil")
	}
	if got := CodeOf(FromRedis(redis.Nil, "miss")); got != ErrorCodeNotFound {
		t.Fatalf("FromRedis(redis.Nil) code = %v", got)
	}
	if got := CodeOf(FromRedis(stderrs.New("weird"), "x")); got != ErrorCodeStore {
		t.Fatalf("FromRedis(foreign) code = %v", got)
	}
	if !IsNilReply(fmt.Errorf("wrapped: %w", redis.Nil)) {
		t.Fatalf("IsNilReply should see through wrapping")
	}
}
