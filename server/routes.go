// Package server - Haupt-Router und Server-Setup fuer Runewire
// Beinhaltet: Server-Struct, Router-Registrierung, Middleware, Server-Start
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/7blacky7/runewire/api"
	"github.com/7blacky7/runewire/envconfig"
	"github.com/7blacky7/runewire/logutil"
	"github.com/7blacky7/runewire/middleware"
	"github.com/7blacky7/runewire/version"
)

// Server verwaltet den HTTP-Router des Codec-Dienstes
type Server struct{}

// GenerateRoutes registriert Middleware und alle API-Routen
func (s *Server) GenerateRoutes() http.Handler {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowWildcard = true
	corsConfig.AllowBrowserExtensions = true
	corsConfig.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"User-Agent",
		"Accept",
		"X-Requested-With",
		"X-Request-Id",
	}
	corsConfig.AllowOrigins = envconfig.AllowedOrigins()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		cors.New(corsConfig),
		middleware.RequestID(),
		middleware.Logging(),
	)

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "Runewire is running") })
	r.HEAD("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.POST("/api/segment", s.SegmentHandler)
	r.POST("/api/decode", s.DecodeHandler)
	r.POST("/api/encode", s.EncodeHandler)
	r.GET("/api/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, api.VersionResponse{Version: version.Version})
	})

	return r
}

// Serve startet den HTTP-Server auf ln und faehrt ihn bei SIGINT oder
// SIGTERM geordnet herunter
func Serve(ln net.Listener) error {
	level := envconfig.LogLevel()
	slog.SetDefault(logutil.NewLogger(os.Stderr, level))
	slog.Info("server config", "env", envconfig.Values())

	if level <= slog.LevelDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	var s Server
	srv := &http.Server{Handler: s.GenerateRoutes()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info(fmt.Sprintf("Listening on %s (version %s)", ln.Addr(), version.Version))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func streamResponse(c *gin.Context, ch chan any) {
	c.Header("Content-Type", "application/x-ndjson")
	c.Stream(func(w io.Writer) bool {
		val, ok := <-ch
		if !ok {
			return false
		}

		if h, ok := val.(gin.H); ok {
			if e, ok := h["error"].(string); ok {
				status, ok := h["status"].(int)
				if !ok {
					status = http.StatusInternalServerError
				}

				if !c.Writer.Written() {
					c.Header("Content-Type", "application/json")
					c.JSON(status, gin.H{"error": e})
				} else {
					if err := json.NewEncoder(c.Writer).Encode(gin.H{"error": e}); err != nil {
						slog.Error("streamResponse failed to encode json error", "error", err)
					}
				}

				return false
			}
		}

		bts, err := json.Marshal(val)
		if err != nil {
			slog.Info(fmt.Sprintf("streamResponse: json.Marshal failed with %s", err))
			return false
		}

		bts = append(bts, '\n')
		if _, err := w.Write(bts); err != nil {
			slog.Info(fmt.Sprintf("streamResponse: w.Write failed with %s", err))
			return false
		}

		return true
	})
}
