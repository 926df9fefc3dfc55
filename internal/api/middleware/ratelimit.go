package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RateLimiter is a fixed in-memory counter per (user, route) with a periodic
// sweep. It is an injected collaborator with an explicit lifecycle: callers
// own Start and Stop.
type RateLimiter struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	counters map[string]*rateCounter

	stop chan struct{}
	once sync.Once
}

type rateCounter struct {
	count     int
	windowEnd time.Time
}

// NewRateLimiter creates a limiter that admits at most limit requests per
// (user, route) per window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		window:   window,
		counters: make(map[string]*rateCounter),
		stop:     make(chan struct{}),
	}
}

// Start launches the periodic sweep that drops expired counters
func (r *RateLimiter) Start() {
	go func() {
		ticker := time.NewTicker(r.window)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.sweep(time.Now())
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep goroutine. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.once.Do(func() { close(r.stop) })
}

// Allow reports whether another request for the key is admitted now
func (r *RateLimiter) Allow(key string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.counters[key]
	if !ok || now.After(c.windowEnd) {
		r.counters[key] = &rateCounter{count: 1, windowEnd: now.Add(r.window)}
		return true
	}
	if c.count >= r.limit {
		return false
	}
	c.count++
	return true
}

func (r *RateLimiter) sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, c := range r.counters {
		if now.After(c.windowEnd) {
			delete(r.counters, key)
		}
	}
}

// Handler returns the Fiber middleware enforcing the limit per (user, route)
func (r *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%d:%s", UserID(c), c.Route().Path)
		if !r.Allow(key, time.Now()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
