package api

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/eugenenazirov/shelfplan/internal/placement"
)

const (
	// benchmarkCost is charged for POST /api/benchmark, which runs every
	// strategy once per catalog size.
	benchmarkCost = 10
	// knapsackCost is charged for DP placements, whose table grows with
	// products x capacity.
	knapsackCost = 2
)

type rateLimiter interface {
	AllowN(cost int) bool
}

type limiterAdapter struct {
	limiter *rate.Limiter
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &limiterAdapter{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

// AllowN reports whether cost tokens are available now. Costs above the
// burst are clamped to it, otherwise the request could never pass.
func (l *limiterAdapter) AllowN(cost int) bool {
	if l == nil || l.limiter == nil {
		return true
	}
	if burst := l.limiter.Burst(); cost > burst {
		cost = burst
	}
	return l.limiter.AllowN(time.Now(), cost)
}

// requestCost weighs a request by the work it triggers.
func requestCost(r *http.Request) int {
	if r.Method != http.MethodPost {
		return 1
	}
	switch {
	case r.URL.Path == "/api/benchmark":
		return benchmarkCost
	case strings.HasPrefix(r.URL.Path, "/api/placements/"):
		// Only the placement run itself builds a table; sub-resources are reads.
		rest := strings.TrimPrefix(r.URL.Path, "/api/placements/")
		if strings.Contains(rest, "/") {
			return 1
		}
		if strategy, ok := strategyFromURL(r.URL.Path); ok && strategy == placement.Knapsack {
			return knapsackCost
		}
	}
	return 1
}

// strategyFromURL extracts the placement strategy named by a
// /api/placements/{strategy}[/...] path. Matching is case-insensitive, like
// the handlers.
func strategyFromURL(path string) (placement.Strategy, bool) {
	rest, ok := strings.CutPrefix(path, "/api/placements/")
	if !ok {
		return 0, false
	}
	segment, _, _ := strings.Cut(rest, "/")
	strategy, err := placement.ParseStrategy(segment)
	if err != nil {
		return 0, false
	}
	return strategy, true
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.AllowN(requestCost(r)) {
			next.ServeHTTP(w, r)
			return
		}
		writeError(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded, please retry shortly")
	})
}
