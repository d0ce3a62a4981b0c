package httpkit

import (
	"net/http"
	"time"

	"incidentsaver/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins allowed to call the API; empty means any
	CORSOrigins []string

	// SlowRequest promotes access log lines to warn; 0 disables
	SlowRequest time.Duration
}

// CommonStack returns the per-scope middleware for API routes.
// The root router already carries middleware.Defaults (request id, recovery, timeout)
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
	}
}
