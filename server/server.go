// Package server assembles the HTTP surface of the sales tool.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Atharvayadav11/sales-tool-email-generator/internal/profile"
	"github.com/Atharvayadav11/sales-tool-email-generator/server/ai"
	"github.com/Atharvayadav11/sales-tool-email-generator/server/middleware"
	apiv1 "github.com/Atharvayadav11/sales-tool-email-generator/server/router/api/v1"
)

// Server hosts the echo instance and its collaborators.
type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
	logger     *slog.Logger
}

// NewServer builds the HTTP server: shared middleware, the LLM provider
// when credentials are configured, and the v1 API routes.
func NewServer(p *profile.Profile, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.NewRateLimiter(20, 40).Middleware())

	var provider ai.ChatProvider
	if p.IsAIEnabled() {
		prov, err := ai.NewProvider(&ai.Config{
			BaseURL:   p.AIBaseURL,
			APIKey:    p.AIAPIKey,
			ChatModel: p.AIModel,
		})
		if err != nil {
			return nil, err
		}
		provider = prov
	} else {
		logger.Warn("no LLM credentials configured, email generation disabled")
	}

	apiService := apiv1.NewAPIV1Service(p, provider, logger)
	apiService.Register(e)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": p.Version,
		})
	})

	return &Server{
		Profile:    p,
		echoServer: e,
		logger:     logger,
	}, nil
}

// Start runs the server until the context is cancelled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echoServer.Start(s.Profile.ListenAddr())
	}()

	s.logger.Info("server started",
		slog.String("addr", s.Profile.ListenAddr()),
		slog.String("mode", s.Profile.Mode))

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.echoServer.Shutdown(shutdownCtx)
	}
}
