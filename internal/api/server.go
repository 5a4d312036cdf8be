package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/generative-ai-agents/review-agent/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type ServerConfig struct {
	Port            string
	AllowedOrigins  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultServerConfig leaves WriteTimeout above the default upstream timeout so
// a slow review is answered with 504 instead of a dropped connection.
func DefaultServerConfig(port string, allowedOrigins []string) ServerConfig {
	return ServerConfig{
		Port:            port,
		AllowedOrigins:  allowedOrigins,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    90 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          *zerolog.Logger
}

func NewServer(cfg ServerConfig, reviewer Reviewer, logger *zerolog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Port),
			Handler:      NewRouter(reviewer, cfg.AllowedOrigins, logger),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
}

// NewRouter assembles the restful container with filters, OpenAPI docs and
// Prometheus metrics, behind the CORS guard.
func NewRouter(reviewer Reviewer, allowedOrigins []string, logger *zerolog.Logger) http.Handler {
	container := restful.NewContainer()
	container.Filter(middleware.RequestID)
	container.Filter(middleware.Logger(logger))
	container.Filter(middleware.Metrics)
	container.Filter(middleware.RecoverPanic(logger))

	RegisterRoutes(container, NewHandler(reviewer, logger))

	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/apidocs.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}
	container.Add(restfulspec.NewOpenAPIService(config))

	container.Handle("/metrics", promhttp.Handler())

	return NewCORSHandler(container, allowedOrigins, logger)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("Starting Review API")

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("Shutting down server")
	return s.httpServer.Shutdown(shutdownCtx)
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Review Agent API",
			Description: "Code review over a hosted language model",
			Version:     Version,
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "review", Description: "Code review"}},
	}
}
