// Package resilience provides reliability patterns for the application's
// external calls. The sole resident today is the circuit breaker wrapper
// around github.com/sony/gobreaker, used to protect the search provider
// client from hammering an unavailable endpoint.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.SearchAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
package resilience
