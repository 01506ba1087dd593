package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"kh-portfolio/internal/auth"
	"kh-portfolio/internal/carousel"
	"kh-portfolio/internal/config"
	"kh-portfolio/internal/handlers"
	"kh-portfolio/internal/logging"
	"kh-portfolio/internal/media"
	"kh-portfolio/internal/middleware"
	"kh-portfolio/internal/pages"
	"kh-portfolio/internal/session"
	"kh-portfolio/internal/storage"
	"kh-portfolio/internal/validation"
	"kh-portfolio/internal/works"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if cfg.SessionSecretGenerated {
		logger.Warn("session secret not set, using a random one; sessions will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	st, closeStorage, err := storage.Open(openCtx, storage.Options{
		Driver:        cfg.StorageDriver,
		Dir:           cfg.StorageDir,
		MemoryQuota:   cfg.StorageQuota,
		RedisURL:      cfg.RedisURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		MongoURI:      cfg.MongoURI,
		MongoDB:       cfg.MongoDB,
		SQLitePath:    cfg.SQLitePath,
	})
	cancel()
	if err != nil {
		logger.Error("storage open failed", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := closeStorage(context.Background()); err != nil {
			logger.Error("storage close failed", slog.String("error", err.Error()))
		}
	}()
	logger.Info("storage ready", slog.String("driver", cfg.StorageDriver))

	val := validation.New()
	store := works.NewStore(st, works.Seed(), logger)
	loaded := store.Load(ctx)
	logger.Info("works loaded", slog.Int("count", len(loaded)))

	form, err := works.NewForm(store, val)
	if err != nil {
		logger.Error("works form setup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	gate, err := auth.NewGate(cfg.AdminPassword)
	if err != nil {
		logger.Error("admin gate setup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	catalog := pages.NewCatalog(logger)
	if cfg.ContentFile != "" {
		if err := catalog.LoadFile(cfg.ContentFile); err != nil {
			logger.Error("site content load failed", slog.String("path", cfg.ContentFile), slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("site content loaded", slog.String("path", cfg.ContentFile))
	}

	sessions := session.NewRegistry(cfg.SessionTTL, carousel.DefaultConfig(), logger)
	defer sessions.Close()

	uploadLimiter := middleware.NewRateLimiter(cfg.RateLimitUploads, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	sweeper, err := sessions.StartSweeper(cfg.SessionSweepCron)
	if err != nil {
		logger.Error("session sweeper setup failed", slog.String("spec", cfg.SessionSweepCron), slog.String("error", err.Error()))
		os.Exit(1)
	}
	if _, err := sweeper.AddFunc(cfg.SessionSweepCron, func() { uploadLimiter.Prune() }); err != nil {
		logger.Error("rate limit prune setup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	server := &handlers.Server{
		Works:    store,
		Form:     form,
		Pages:    catalog,
		Images:   media.NewResolver(nil, cfg.ImageProbeAttempts, logger),
		Sessions: sessions,
		Tokens: &auth.Manager{
			Secret: []byte(cfg.SessionSecret),
			TTL:    cfg.SessionTTL,
			Issuer: "kh-portfolio",
		},
		Gate:           gate,
		Val:            val,
		Log:            logger,
		UploadLimiter:  uploadLimiter,
		FrontendOrigin: cfg.FrontendOrigin,
		CookieSecure:   cfg.CookieSecure,
		FrameInterval:  cfg.CarouselFrame,
	}

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: server.Routes(works.NewHandler(store, form, val, logger)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return catalog.Watch(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		<-sweeper.Stop().Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		// Open carousel streams only end when their sessions stop.
		sessions.Close()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
