package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hostelops/complaints/internal/models"
)

type Metrics struct {
	registry *prometheus.Registry

	requests         *prometheus.CounterVec
	latency          *prometheus.HistogramVec
	complaintCreated *prometheus.CounterVec
	statusUpdated    *prometheus.CounterVec
	authFailures     *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostelops_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hostelops_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		complaintCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostelops_complaints_created_total",
			Help: "Complaints created by priority.",
		}, []string{"priority"}),
		statusUpdated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostelops_complaint_status_updates_total",
			Help: "Complaint status changes by new status.",
		}, []string{"status"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostelops_login_failures_total",
			Help: "Rejected logins by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.requests, m.latency, m.complaintCreated, m.statusUpdated, m.authFailures)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency keyed by the matched route.
func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			} else {
				status = http.StatusInternalServerError
			}
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request().Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// The recorders below are nil-safe so services can run without metrics.

func (m *Metrics) ComplaintCreated(p models.Priority) {
	if m == nil {
		return
	}
	m.complaintCreated.WithLabelValues(string(p)).Inc()
}

func (m *Metrics) StatusUpdated(s models.Status) {
	if m == nil {
		return
	}
	m.statusUpdated.WithLabelValues(string(s)).Inc()
}

func (m *Metrics) LoginFailed(reason string) {
	if m == nil {
		return
	}
	m.authFailures.WithLabelValues(reason).Inc()
}
