package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_http_requests_total",
			Help: "Total de peticiones HTTP atendidas",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shop_http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	authFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_auth_failures_total",
			Help: "Rechazos del middleware de acceso por motivo",
		},
		[]string{"reason"},
	)
	loginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_login_attempts_total",
			Help: "Intentos de login por resultado",
		},
		[]string{"result"},
	)
	rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_rate_limited_total",
			Help: "Peticiones rechazadas con 429",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, authFailures, loginAttempts, rateLimited)
}

// MetricsHandler expone el registro por defecto de Prometheus como handler Fiber.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

func observeRequest(c *fiber.Ctx, start time.Time) {
	route := "unmatched"
	if r := c.Route(); r != nil && r.Path != "" {
		route = r.Path
	}
	method := c.Method()
	httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Response().StatusCode())).Inc()
	httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
