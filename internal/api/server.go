package api

import (
	"net/http"
	"time"
)

// NewServer creates and returns a configured *http.Server for the wallet API.
func NewServer(addr string, svc LedgerService) *http.Server {
	mux := NewRouter(svc)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
