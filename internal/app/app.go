package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TusharS004/AI-Fitness-Tracker/internal/config"
	httpx "github.com/TusharS004/AI-Fitness-Tracker/internal/http"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/http/handlers"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/http/middleware"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the HTTP surface over a wired container
func NewRouter(c *Container) *gin.Engine {
	cookies := handlers.CookieConfig{Secure: c.Config.IsProduction()}
	return httpx.BuildRouter(httpx.Handlers{
		Auth:    handlers.NewAuthHandlers(c.AuthSvc, cookies),
		Profile: handlers.NewProfileHandlers(c.AuthSvc, c.ProfileSvc, cookies),
		Policy:  handlers.NewPolicyHandlers(c.PolicySvc),
	}, middleware.NewAuthMW(c.TokenSvc), middleware.NewCasbinMW(c.PolicySvc))
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("shutdown: closing connections: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(c),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (env=%s)", srv.Addr, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutdown: signal received, draining requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
