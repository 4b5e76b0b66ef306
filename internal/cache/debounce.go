package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ScanDebouncer suppresses repeated scans of the same AWB by the same
// courier inside a short window. Redis SETNX backs the window so it
// holds across instances; a mutex-guarded map is the fallback when
// Redis is disabled.
type ScanDebouncer struct {
	window time.Duration

	mu   sync.Mutex
	seen map[string]time.Time
	now  func() time.Time
}

// NewScanDebouncer builds a debouncer with the given window.
func NewScanDebouncer(window time.Duration) *ScanDebouncer {
	if window <= 0 {
		window = 2 * time.Second
	}
	return &ScanDebouncer{
		window: window,
		seen:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// Allow reports whether this scan is the first inside the window.
func (d *ScanDebouncer) Allow(ctx context.Context, courierID uint, awbNumber string) (bool, error) {
	if d == nil {
		return true, nil
	}
	key := fmt.Sprintf("scan:%d:%s", courierID, awbNumber)
	if Enabled() {
		ok, err := SetNX(ctx, key, "1", d.window)
		if err != nil {
			return false, err
		}
		return ok, nil
	}
	return d.allowLocal(key), nil
}

func (d *ScanDebouncer) allowLocal(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	if last, ok := d.seen[key]; ok && now.Sub(last) < d.window {
		return false
	}
	d.seen[key] = now
	// Drop stale entries so the map does not grow unbounded.
	for k, v := range d.seen {
		if now.Sub(v) >= d.window {
			delete(d.seen, k)
		}
	}
	return true
}
