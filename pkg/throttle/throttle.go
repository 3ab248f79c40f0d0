// Package throttle limits how often a key, such as a user id, may perform an action.
package throttle

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Keyed holds one token bucket per key. Buckets idle for longer than the
// refill window are dropped on the next call.
type Keyed struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time
	buckets map[string]*bucket
}

type bucket struct {
	l        *rate.Limiter
	lastSeen time.Time
}

// NewKeyed allows burst actions per key, refilling one every interval.
func NewKeyed(interval time.Duration, burst int) *Keyed {
	if burst < 1 {
		burst = 1
	}
	return &Keyed{
		limit:   rate.Every(interval),
		burst:   burst,
		idle:    interval * time.Duration(burst),
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow reports whether key may act now and consumes a token if so.
func (k *Keyed) Allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	k.evict(now)

	b, ok := k.buckets[key]
	if !ok {
		b = &bucket{l: rate.NewLimiter(k.limit, k.burst)}
		k.buckets[key] = b
	}
	b.lastSeen = now
	return b.l.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func (k *Keyed) evict(now time.Time) {
	for key, b := range k.buckets {
		if now.Sub(b.lastSeen) > k.idle {
			delete(k.buckets, key)
		}
	}
}
