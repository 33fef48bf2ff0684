package kit

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// IPRateLimiter admits at most limit requests per client within a sliding
// window. Clients are keyed by the host part of r.RemoteAddr only; forwarding
// headers are never read here. Deployments behind a trusted proxy put
// chi's middleware.RealIP in front so RemoteAddr already holds the client.
type IPRateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	hits      map[string][]time.Time
	lastSweep time.Time
}

func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
	}
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(remoteHost(r.RemoteAddr)) {
			WriteError(w, r, http.StatusTooManyRequests, "too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Clients is the number of clients with hits inside the current window.
func (l *IPRateLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}

func (l *IPRateLimiter) allow(client string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	ts := prune(l.hits[client], cutoff)
	if len(ts) >= l.limit {
		l.hits[client] = ts
		return false
	}
	l.hits[client] = append(ts, now)
	return true
}

// sweep drops every client whose hits have all aged out, so the map only
// holds clients seen in the last window.
func (l *IPRateLimiter) sweep(cutoff time.Time) {
	for client, ts := range l.hits {
		if ts = prune(ts, cutoff); len(ts) == 0 {
			delete(l.hits, client)
			continue
		}
		l.hits[client] = ts
	}
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	n := 0
	for _, t := range ts {
		if t.After(cutoff) {
			ts[n] = t
			n++
		}
	}
	return ts[:n]
}

func remoteHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}
