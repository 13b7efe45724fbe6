// Package server exposes the extraction pipeline over HTTP and serves the
// bundled frontend. Routing and middleware are handled by echo; every request
// carries a zerolog logger tagged with its request ID.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/reelpipe/core"
	"github.com/gaurav-prasanna/reelpipe/core/render"
)

const (
	shutdownTimeout = 10 * time.Second
	bodyLimit       = "64K"
)

// Runner turns a post URL into an extraction result.
// *pipeline.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, url string) (core.ExtractionResult, error)
}

// Config controls the HTTP surface.
type Config struct {
	Addr         string
	PublicDir    string
	AllowOrigins []string
}

// Server is the HTTP front of reelpipe.
type Server struct {
	cfg    Config
	runner Runner
	log    zerolog.Logger
	echo   *echo.Echo
}

// New builds a Server with all routes and middleware registered.
func New(cfg Config, runner Runner, log zerolog.Logger) *Server {
	s := &Server{cfg: cfg, runner: runner, log: log}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(s.contextLogger)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := s.log.Info()
			if v.Error != nil {
				ev = s.log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			zerolog.Ctx(c.Request().Context()).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("panic recovered")
			return errPanicked{err}
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:       ".",
		Filesystem: http.Dir(cfg.PublicDir),
		Index:      "index.html",
		HTML5:      true,
		Skipper:    notGetOrHead,
	}))

	e.GET("/healthz", s.handleHealth)
	api := e.Group("/api")
	api.POST("/extract", s.handleExtract)

	s.echo = e
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on cfg.Addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Str("public_dir", s.cfg.PublicDir).Msg("server listening")
		if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// contextLogger attaches a request-scoped logger to the request context so
// core packages can reach it through zerolog.Ctx.
func (s *Server) contextLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		logger := s.log.With().Str("request_id", id).Logger()
		req := c.Request()
		c.SetRequest(req.WithContext(logger.WithContext(req.Context())))
		return next(c)
	}
}

// notGetOrHead limits static files and the index.html fallback to page loads.
func notGetOrHead(c echo.Context) bool {
	m := c.Request().Method
	return m != http.MethodGet && m != http.MethodHead
}

// errPanicked marks an error recovered from a panic; its stack is already logged.
type errPanicked struct{ error }

func (e errPanicked) Unwrap() error { return e.error }

// handleError answers every error that reaches echo. HTTP errors raised by
// routing and middleware keep echo's default body; anything else is an
// unexpected failure and gets the generic server error.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		s.echo.DefaultHTTPErrorHandler(err, c)
		return
	}

	var p errPanicked
	if !errors.As(err, &p) {
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Str("uri", c.Request().RequestURI).Msg("unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(http.StatusInternalServerError)
		return
	}
	if jsonErr := c.JSON(http.StatusInternalServerError, render.ErrorBody(core.MsgServerError)); jsonErr != nil {
		zerolog.Ctx(c.Request().Context()).Error().Err(jsonErr).Msg("writing error response")
	}
}
