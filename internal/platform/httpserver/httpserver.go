package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. Write timeouts stay well above the registry
// fetch timeout so a slow upstream degrades a category instead of cutting
// the response off mid-body.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
