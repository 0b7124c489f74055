package ratelim

import (
	"net/http"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"

	"github.com/MilanMareels/ap-gaming-hub/utils"
)

// KeyLimiter hands out one permit per interval per client key. A denied
// call does not push the window further: ten seconds after the last
// permit the key is allowed again no matter how often it retried.
// Idle keys are evicted instead of living for the process lifetime.
type KeyLimiter struct {
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

type visitor struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewKeyLimiter creates a limiter allowing one event per interval per key.
func NewKeyLimiter(interval time.Duration) *KeyLimiter {
	kl := &KeyLimiter{
		interval: interval,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
	go kl.janitor()
	return kl
}

// Allow reports whether the key may proceed now.
func (kl *KeyLimiter) Allow(key string) bool {
	return kl.limiterFor(key).AllowN(kl.now(), 1)
}

func (kl *KeyLimiter) limiterFor(key string) *rate.Limiter {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	if v, exists := kl.visitors[key]; exists {
		v.lastSeen = kl.now()
		return v.lim
	}

	// one event per interval, burst of 1
	lim := rate.NewLimiter(rate.Every(kl.interval), 1)
	kl.visitors[key] = &visitor{lim: lim, lastSeen: kl.now()}
	return lim
}

// janitor drops keys idle for a full interval. An evicted key starts
// over with a full token, which is exactly what an un-evicted one
// would have accumulated.
func (kl *KeyLimiter) janitor() {
	ticker := time.NewTicker(kl.interval)
	defer ticker.Stop()
	for range ticker.C {
		kl.sweep()
	}
}

func (kl *KeyLimiter) sweep() {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	cutoff := kl.now().Add(-kl.interval)
	for key, v := range kl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(kl.visitors, key)
		}
	}
}

// Limit is the router middleware form, keyed by client IP.
func (kl *KeyLimiter) Limit(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if !kl.Allow(utils.ClientIP(r)) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r, ps)
	}
}
