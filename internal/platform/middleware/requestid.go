// Package middleware holds the HTTP middleware chain shared by every route:
// request ID assignment, request-scoped time, panic recovery, and optional
// bearer-token auth.
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"kyntel/pkg/requestcontext"
)

// RequestIDHeader carries the request ID back to the caller and is honored
// when the caller supplies its own.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a unique ID and stores it in the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestTime captures the current time at the start of the request so all
// range filters and age calculations within it observe the same "now".
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
