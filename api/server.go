/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client address from proxy headers
  3. Logger:     zap access log (includes the request ID)
  4. Metrics:    Prometheus counters by route pattern
  5. Recoverer:  Panic recovery (500 instead of crash)
  6. CORS:       Cross-origin requests for the dashboard frontend
  7. RateLimit:  Per-client token bucket, /api only (optional)

ROUTE GROUPS:
  /api/calendar/*       Month navigation
  /api/interviews/*     Interview scheduler view
  /api/pto/*            Leave requests and workday calendar
  /api/holidays         Company holidays
  /api/mock/*           Mock data status and reset
  /healthz              Liveness
  /metrics              Prometheus scrape endpoint

SECURITY NOTE:
  No authentication middleware. The dashboard runs on mock data.

SEE ALSO:
  - handlers.go: Handler implementations
  - metrics.go: Metrics and access log middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterOptions configures the middleware around the handlers.
type RouterOptions struct {
	AllowedOrigins []string
	Logger         *zap.Logger  // nil disables access logging
	Metrics        *Metrics     // nil creates a fresh registry
	RateLimiter    *RateLimiter // nil disables limiting
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if opts.Logger != nil {
		r.Use(RequestLogger(opts.Logger))
	}
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Middleware)
		}

		r.Get("/calendar/navigate", h.NavigateMonth)

		// Interview routes
		r.Route("/interviews", func(r chi.Router) {
			r.Get("/", h.ListInterviews)
			r.Post("/", h.ScheduleInterview)
			r.Get("/calendar", h.InterviewCalendar)
			r.Get("/calendar.ics", h.InterviewCalendarICS)
			r.Get("/day/{date}", h.InterviewsOnDay)
			r.Post("/{id}/status", h.UpdateInterviewStatus)
		})

		// Leave routes
		r.Route("/pto", func(r chi.Router) {
			r.Get("/requests", h.ListLeaveRequests)
			r.Post("/requests", h.SubmitLeaveRequest)
			r.Post("/requests/{id}/approve", h.ApproveLeaveRequest)
			r.Post("/requests/{id}/deny", h.DenyLeaveRequest)
			r.Get("/calendar", h.LeaveCalendar)
			r.Get("/summary/{employee}", h.LeaveSummary)
		})

		r.Get("/holidays", h.ListHolidays)

		// Mock data routes
		r.Get("/mock", h.GetMockStatus)
		r.Post("/mock/reset", h.ResetMockData)
	})

	return r
}
