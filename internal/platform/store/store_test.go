package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

// TestOpen_RDSOnly_SetsSeam exercises the RDS success path from Open
func TestOpen_RDSOnly_SetsSeam(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := Open(ctx, Config{
		RDS: RedisConfig{
			Enabled: true,
			Addr:    mr.Addr(),
		},
	})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.RDS == nil {
		t.Fatalf("RDS not initialized")
	}

	// Guard should ping the live seam without error
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard returned error: %v", err)
	}

	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

// TestOpen_RDSEnabled_BadAddr_BubblesError covers the connect failure path
func TestOpen_RDSEnabled_BadAddr_BubblesError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, err := Open(ctx, Config{
		RDS: RedisConfig{
			Enabled:        true,
			Addr:           "127.0.0.1:1", // nothing listens here
			ConnectRetries: 1,
			PingTimeout:    200 * time.Millisecond,
		},
	})
	if err == nil {
		t.Fatalf("Open should fail against a dead address")
	}
}

// TestOpen_AuthFailure_DoesNotRetry verifies the connect guardrail gives up
// immediately on a non-retryable error instead of burning the whole backoff budget
func TestOpen_AuthFailure_DoesNotRetry(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")
	ctx := context.Background()

	start := time.Now()
	_, err := Open(ctx, Config{
		RDS: RedisConfig{
			Enabled:        true,
			Addr:           mr.Addr(), // no password supplied
			ConnectRetries: 10,
		},
	})
	if err == nil {
		t.Fatalf("Open should fail against an auth-protected server")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Open retried a non-retryable auth error for %v", elapsed)
	}
}

// TestOpen_Disabled_LeavesSeamNil verifies the zero config yields an inert store
func TestOpen_Disabled_LeavesSeamNil(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := Open(ctx, Config{})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.RDS != nil {
		t.Fatalf("unexpected seam set RDS=%T", s.RDS)
	}
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard on empty store: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close on empty store: %v", err)
	}
}
