package errors

// Redis-specific helpers for mapping go-redis errors to project ErrorCode and retry semantics

import (
	"context"
	stderrs "errors"
	"io"
	"net"
	"strings"

	"github.com/redis/go-redis/v9"
)

// IsNilReply reports whether the error is the redis "key does not exist" reply
func IsNilReply(err error) bool { return stderrs.Is(err, redis.Nil) }

// StoreErrorCode maps a Redis error to an ErrorCode with an ok flag
// !ok means err doesn't look like a Redis/transport error; caller may fall back to generic handling
func StoreErrorCode(err error) (ErrorCode, bool) {
	if err == nil {
		return ErrorCodeUnknown, false
	}
	if stderrs.Is(err, redis.Nil) {
		return ErrorCodeNotFound, true
	}

	root := Root(err)
	var ne net.Error
	if stderrs.As(root, &ne) || stderrs.Is(root, io.EOF) || stderrs.Is(root, io.ErrUnexpectedEOF) {
		return ErrorCodeUnavailable, true
	}

	s := strings.ToUpper(root.Error())
	switch {
	case strings.HasPrefix(s, "LOADING"),
		strings.HasPrefix(s, "READONLY"),
		strings.HasPrefix(s, "CLUSTERDOWN"),
		strings.HasPrefix(s, "TRYAGAIN"),
		strings.HasPrefix(s, "MASTERDOWN"):
		return ErrorCodeUnavailable, true
	case strings.HasPrefix(s, "WRONGTYPE"):
		// A key collided with a different counter shape; not transient
		return ErrorCodeConflict, true
	case strings.HasPrefix(s, "ERR"), strings.HasPrefix(s, "EXECABORT"):
		return ErrorCodeStore, true
	}
	return ErrorCodeUnknown, false
}

// FromRedis wraps a Redis error with a mapped ErrorCode and message.
// If err is nil, returns nil
func FromRedis(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := StoreErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeStore, msg)
}

// IsRetryable reports whether a counter store error represents a transient
// condition worth retrying. Local cancellations are never retryable; the caller
// owns higher-level retry decisions for those
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if stderrs.Is(err, redis.Nil) {
		return false
	}

	root := Root(err)

	var ne net.Error
	if stderrs.As(root, &ne) {
		return true
	}
	if stderrs.Is(root, io.EOF) || stderrs.Is(root, io.ErrUnexpectedEOF) {
		return true
	}

	// Server-side transient states surfaced as error text prefixes
	s := strings.ToUpper(root.Error())
	switch {
	case strings.HasPrefix(s, "LOADING"),
		strings.HasPrefix(s, "READONLY"),
		strings.HasPrefix(s, "CLUSTERDOWN"),
		strings.HasPrefix(s, "TRYAGAIN"),
		strings.HasPrefix(s, "MASTERDOWN"),
		strings.Contains(s, "CONNECTION RESET"),
		strings.Contains(s, "BROKEN PIPE"),
		strings.Contains(s, "CONNECTION REFUSED"):
		return true
	default:
		return false
	}
}
