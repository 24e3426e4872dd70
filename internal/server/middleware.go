package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long an idle client keeps its bucket.
const idleTTL = time.Hour

// RateLimiter is a per-client token bucket. Clients are keyed by the
// connection's remote address; forwarding headers are read only when the
// connection comes from a trusted proxy.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	trusted []*net.IPNet
	r       rate.Limit
	b       int
	now     func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows r requests per second with burst b per client.
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{clients: make(map[string]*clientLimiter), r: r, b: b, now: time.Now}
}

// TrustProxies accepts forwarding headers from the given CIDRs or bare IPs.
func (rl *RateLimiter) TrustProxies(proxies ...string) error {
	nets := make([]*net.IPNet, 0, len(proxies))
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return fmt.Errorf("invalid trusted proxy %q", p)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(p)
		if err != nil {
			return fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
		nets = append(nets, n)
	}
	rl.mu.Lock()
	rl.trusted = nets
	rl.mu.Unlock()
	return nil
}

func (rl *RateLimiter) isTrusted(host string) bool {
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for _, n := range rl.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func (rl *RateLimiter) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !rl.isTrusted(host) {
		return host
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i != -1 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	return host
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for k, v := range rl.clients {
		if now.Sub(v.lastSeen) > idleTTL {
			delete(rl.clients, k)
		}
	}
	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.r, rl.b)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

// RateLimit rejects requests over the client's budget with 429.
func (rl *RateLimiter) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter(rl.clientIP(r)).Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
