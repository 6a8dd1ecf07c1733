package generator

import "golang.org/x/time/rate"

// newLimiter builds the client-side rate limiter shared by the generation
// backends. A non-positive rate disables throttling.
func newLimiter(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}
