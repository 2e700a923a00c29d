package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginKeyPrefix = "homeline:signin:"

// LoginLimiter caps signin attempts per email in a fixed window shared
// through Redis, so every API instance sees the same count.
type LoginLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	log    *slog.Logger
}

// NewLoginLimiter allows limit attempts per email per window. A nil client,
// like a nil *LoginLimiter, disables the limiter.
func NewLoginLimiter(rdb *redis.Client, limit int64, window time.Duration, log *slog.Logger) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, limit: limit, window: window, log: log}
}

// Allow records one attempt for email and reports whether it is within the
// limit. Redis errors are returned alongside true so callers fail open.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	if l == nil || l.rdb == nil || email == "" {
		return true, nil
	}

	key := loginKeyPrefix + email

	// The window key is created with its TTL before counting, in one MULTI,
	// so a counter can never outlive its window.
	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, l.window)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return true, err
	}

	return incr.Val() <= l.limit, nil
}

// Middleware throttles requests by the email in their JSON body. The body is
// restored for the next handler.
func (l *LoginLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l == nil || l.rdb == nil || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		r.Body.Close()
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "could not read request body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var req struct {
			Email string `json:"email"`
		}
		// A malformed body is left for the handler to reject.
		_ = json.Unmarshal(body, &req)
		email := strings.ToLower(strings.TrimSpace(req.Email))

		ok, err := l.Allow(r.Context(), email)
		if err != nil {
			l.log.Warn("signin limiter unavailable", "error", err)
		}
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			writeJSONError(w, http.StatusTooManyRequests, "too many signin attempts")
			return
		}

		next.ServeHTTP(w, r)
	})
}
