package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Watcher fires a callback when the bearer token's exp claim passes.
// Start replaces any previous watch; Stop is idempotent and safe to call
// without a prior Start.
type Watcher struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Start schedules onExpired at the token's expiry. A token that is already
// expired, or whose exp claim cannot be read, fires immediately on the
// caller's goroutine, matching the storage state it would otherwise leave
// dangling.
func (w *Watcher) Start(token string, onExpired func()) {
	w.Stop()

	until := timeUntilExpiration(token)
	if until <= 0 {
		onExpired()
		return
	}

	w.mu.Lock()
	w.timer = time.AfterFunc(until, onExpired)
	w.mu.Unlock()
}

// Stop cancels the pending watch, if any.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// timeUntilExpiration reads the exp claim from a JWT without verifying the
// signature. Unreadable tokens count as already expired.
func timeUntilExpiration(token string) time.Duration {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return 0
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return 0
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return 0
	}
	return time.Until(time.Unix(claims.Exp, 0))
}
