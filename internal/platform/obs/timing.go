// Package obs carries request ids through contexts and logs operation timings.
package obs

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the id stored by WithRequestID, or "-" for untagged contexts.
func RequestID(ctx context.Context) string {
	if id, _ := ctx.Value(RequestIDKey).(string); id != "" {
		return id
	}
	return "-"
}

// Time starts a timer for op. Defer the returned func with a pointer to the
// named error result. kv holds extra key/value pairs for the log line.
func Time(ctx context.Context, name string, kv ...any) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)
	extra := fields(kv)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s%s dur=%dms err=%v", reqID, name, extra, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s%s dur=%dms", reqID, name, extra, dur.Milliseconds())
	}
}

func fields(kv []any) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
