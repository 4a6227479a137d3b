// Package mockapi is a development stand-in for the product lookup service.
package mockapi

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const apiKeyHeader = "x-api-key"

// Config controls the mock service.
type Config struct {
	Addr   string        // listen address, e.g. 127.0.0.1:8000
	ApiKey string        // required x-api-key value; empty disables the check
	Seed   int64         // random generator seed; 0 seeds from the clock
	Delay  time.Duration // artificial latency added to every product response
}

// Server serves GET /products/:barcode. Requests share no state beyond the generator.
type Server struct {
	cfg  Config
	echo *echo.Echo
	gen  *Generator
}

// New builds the mock service and registers its routes.
func New(cfg Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Use(middleware.Recover())
	e.Use(accessLog())

	s := &Server{cfg: cfg, echo: e, gen: NewGenerator(cfg.Seed)}
	e.GET("/health", s.health)
	products := e.Group("/products", apiKeyAuth(cfg.ApiKey))
	products.GET("/:barcode", s.getProduct)
	return s
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on cfg.Addr and blocks. It returns nil after Shutdown.
func (s *Server) Start() error {
	zap.L().Info("mock lookup service listening",
		zap.String("namespace", "mockapi"),
		zap.String("addr", s.cfg.Addr),
		zap.Bool("api_key_required", s.cfg.ApiKey != ""),
	)
	if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getProduct(c echo.Context) error {
	barcode := c.Param("barcode")
	// echo routes on RawPath when one is set, leaving params escaped.
	if c.Request().URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(barcode); err == nil {
			barcode = unescaped
		}
	}

	if s.cfg.Delay > 0 {
		select {
		case <-time.After(s.cfg.Delay):
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	}

	if p, ok := fixedProducts[barcode]; ok {
		return c.JSON(http.StatusOK, p)
	}
	return c.JSON(http.StatusOK, s.gen.Product(barcode))
}

func apiKeyAuth(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" {
				return next(c)
			}
			got := c.Request().Header.Get(apiKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Invalid API key"})
			}
			return next(c)
		}
	}
}

func accessLog() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("mock api request",
				zap.String("namespace", "mockapi"),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}
