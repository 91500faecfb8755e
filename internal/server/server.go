package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/evanraalte/nstimes/internal/infra/pricecache"
	"github.com/evanraalte/nstimes/internal/ports"
	"github.com/evanraalte/nstimes/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

// CacheStats is the read side of the price cache used by /cache/stats.
type CacheStats interface {
	Stats() pricecache.Stats
}

type Deps struct {
	Resolver ports.StationResolver
	Trips    *usecase.FindTrips
	Prices   *usecase.GetPrice

	// Cache may be nil when caching is disabled.
	Cache   CacheStats
	Metrics *Metrics
	Logger  *slog.Logger
}

type Server struct {
	deps    Deps
	log     *slog.Logger
	metrics *Metrics
	engine  *gin.Engine
}

func New(deps Deps) *Server {
	s := &Server{
		deps:    deps,
		log:     deps.Logger,
		metrics: deps.Metrics,
	}
	if s.log == nil {
		s.log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		requestID(),
		accessLog(s.log),
		observeLatency(s.metrics),
		cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
			ExposeHeaders: []string{"Content-Length", requestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	r.GET("/health", s.health)
	r.GET("/price", s.price)
	r.GET("/trips", s.trips)
	r.GET("/stations", s.stations)
	r.GET("/cache/stats", s.cacheStats)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Error: "route not found"})
	})
	return r
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is canceled, then drains in-flight requests
// for up to five seconds.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server.started", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("server.shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("server.stopped")
	return nil
}
