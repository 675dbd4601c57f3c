// FilePath: api/middleware/api.middleware.logging.go
package middleware

import (
	"bytes"
	"net/http"

	"github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"
)

// logWriter forwards access log lines to the application logger.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	nuts.L.Infof("[HTTP] %s", bytes.TrimRight(p, "\n"))
	return len(p), nil
}

// AccessLog wraps next with an Apache common log format access log.
func AccessLog(next http.Handler) http.Handler {
	return handlers.LoggingHandler(logWriter{}, next)
}

// Recovery turns handler panics into 500 responses and logs them.
func Recovery(next http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)(next)
}

type recoveryLogger struct{}

func (recoveryLogger) Println(args ...interface{}) {
	nuts.L.Errorf("[HTTP] Recovered from panic: %v", args)
}

// CORS allows the configured origins ("*" for any).
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
}
