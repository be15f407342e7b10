// Package httpapi serves the public tour website, open registration forms
// and a manager CSV export over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/alexanderramin/showrunner/internal/logger"
	"github.com/alexanderramin/showrunner/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// Deps are the services the HTTP layer calls.
type Deps struct {
	Marketing    service.MarketingService
	Registration service.RegistrationService
	Logger       *zap.Logger
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string
}

type Server struct {
	marketing    service.MarketingService
	registration service.RegistrationService
	logger       *zap.Logger
}

// NewHandler builds the router wrapped in CORS.
func NewHandler(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	s := &Server{marketing: d.Marketing, registration: d.Registration, logger: d.Logger}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/", s.publicView)
	r.POST("/public/tours/:tourId/forms/:formId/submissions", s.submitRegistration)
	r.GET("/tours/:tourId/forms/:formId/export", s.exportAttendees)

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "This page is not available.")
	})

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader, "Content-Disposition"},
	}).Handler(r)
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.requestLogger(c).Info("http_request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func (s *Server) requestLogger(c *gin.Context) *zap.Logger {
	return logger.WithContext(c.Request.Context(), s.logger)
}
