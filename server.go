package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"cardhub/admin"
	"cardhub/analytics"
	"cardhub/backoffice"
	"cardhub/cache"
	"cardhub/common"
	"cardhub/config"
	"cardhub/database"
	"cardhub/geo"
	"cardhub/imagehost"
	"cardhub/logging"
	"cardhub/metrics"
	"cardhub/notify"
	"cardhub/pdfcard"
	"cardhub/qr"
	"cardhub/site"
	"cardhub/store"
)

const (
	shutdownTimeout = 15 * time.Second
	cacheSweepEvery = time.Hour
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web server",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	db, err := common.ConnectDb(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db); err != nil {
		return err
	}
	st := store.New(db)

	var locator geo.Locator = geo.Disabled{}
	if cfg.Analytics.GeoEnabled {
		client, err := geo.NewClient(cfg.Analytics.GeoURL, cfg.Analytics.HTTPTimeout, cfg.Analytics.CacheSize)
		if err != nil {
			return err
		}
		locator = client
	}
	tracker := analytics.NewTracker(st, locator)

	dir := cache.New(cfg.QR.CacheDir)
	images := qr.NewFetcher("images", dir, cfg.QR.CacheMaxAge, cfg.QR.HTTPTimeout)
	pdf := pdfcard.NewGenerator(images, func(data string) string {
		return qr.ImageURL(cfg.QR.BaseURL, data)
	})

	channels := []notify.Channel{{Name: "email", Notifier: notify.NewEmail(cfg.SMTP, st)}}
	if cfg.Telegram.Enabled {
		channels = append(channels, notify.Channel{Name: "telegram", Notifier: notify.NewTelegram(st, nil)})
	}
	siteModule := site.NewSiteModule(st, tracker, notify.NewMulti(channels...), cfg)

	router, err := newRouter(cfg)
	if err != nil {
		return err
	}
	siteModule.RegisterRoutes(router)
	admin.NewAdminModule(admin.Deps{
		Store:     st,
		Analytics: analytics.NewService(st),
		PDF:       pdf,
		Images:    imagehost.NewClient(cfg.ImageHost.URL, cfg.ImageHost.APIKey, cfg.ImageHost.Timeout),
		Config:    cfg,
	}).RegisterRoutes(router)
	backoffice.NewBackofficeModule(st, dir, cfg).RegisterRoutes(router)

	go sweepCache(ctx, dir, cfg.QR.CacheMaxAge)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", cfg.Server.Addr).Str("public_url", cfg.Server.PublicURL).Msg("starting server")
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

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server shutdown failed")
	}

	tracker.Wait()
	siteModule.Wait()
	logging.Info().Msg("server stopped")
	return nil
}

func newRouter(cfg *config.Config) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("server.trusted_proxies: %w", err)
	}
	router.Use(logging.GinMiddleware(), metrics.GinMiddleware(), gin.Recovery())

	sessionStore := cookie.NewStore([]byte(cfg.Server.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.Server.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("cardhub-session", sessionStore))

	router.GET("/metrics", metrics.Handler())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router, nil
}

// sweepCache drops expired image cache entries until ctx is done.
func sweepCache(ctx context.Context, dir *cache.Dir, maxAge time.Duration) {
	if maxAge <= 0 {
		return
	}
	ticker := time.NewTicker(cacheSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := dir.ClearOld(maxAge)
			if err != nil {
				logging.Warn().Err(err).Msg("cache sweep failed")
				continue
			}
			if removed > 0 {
				logging.Debug().Int("removed", removed).Msg("cache sweep")
			}
		}
	}
}
