// Package jobcontext builds contexts for background work that must outlive
// the request that triggered it, such as end-of-interview persistence.
package jobcontext

import (
	"context"
	"time"
)

type contextKey string

const (
	keySessionID contextKey = "session_id"
	keyUserKey   contextKey = "user_key"
	keyStartTime contextKey = "start_time"
)

// Begin derives a context for a finalization job. Values from the parent are
// kept but its cancellation is not: a client disconnecting mid-request must
// not abort the writes that preserve their interview. The timeout bounds the
// job instead.
func Begin(parent context.Context, sessionID, userKey string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	ctx = context.WithValue(ctx, keySessionID, sessionID)
	ctx = context.WithValue(ctx, keyUserKey, userKey)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return context.WithTimeout(ctx, timeout)
}

// SessionID extracts the session id from a job context
func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(keySessionID).(string)
	return id, ok
}

// UserKey extracts the user key from a job context
func UserKey(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(keyUserKey).(string)
	return key, ok
}

// StartTime extracts the job start time from a job context
func StartTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(keyStartTime).(time.Time)
	return t, ok
}
