package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
)

// requestLogger logs every request through the default slog JSON handler.
func requestLogger() func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.Default(),
		&httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				rc := chi.RouteContext(req.Context())
				route := req.URL.Path
				if rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}

				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("route", route),
				}
			},
		},
	)
}
