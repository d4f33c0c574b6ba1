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

	"github.com/Skotchmaster/ecommerce_backend/internal/config"
	"github.com/Skotchmaster/ecommerce_backend/internal/db"
	"github.com/Skotchmaster/ecommerce_backend/internal/httpserver"
	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/metrics"
	"github.com/Skotchmaster/ecommerce_backend/internal/mykafka"
	"github.com/Skotchmaster/ecommerce_backend/internal/search"
	"github.com/Skotchmaster/ecommerce_backend/internal/service"
	"github.com/Skotchmaster/ecommerce_backend/internal/tokens"
	"github.com/Skotchmaster/ecommerce_backend/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	st, err := db.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("store open: %v", err)
	}
	logger.Info("store_connected", "driver", cfg.StoreDriver)

	var events mykafka.Publisher = mykafka.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		prod, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		events = prod
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	var index search.Index = search.Noop{}
	if cfg.ESURL != "" {
		es, err := search.NewES(search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := es.Ping(pingCtx); err != nil {
			logger.Warn("elasticsearch_unreachable", "error", err)
		}
		cancel()
		index = es
	}

	storage, imagesDir, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("upload storage: %v", err)
	}

	issuer := tokens.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	e := httpserver.New(logger, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Users: st, Tokens: issuer, Events: events, CartSlots: cfg.CartSlots,
		}},
		CartHandler: &httpserver.CartHTTP{Svc: &service.CartService{
			Users: st, Events: events, Slots: cfg.CartSlots,
		}},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{
			Products: st, Index: index, Events: events,
		}},
		UploadHandler: &httpserver.UploadHTTP{Storage: storage},
		JWTSecret:     cfg.JWTSecret,
		Ready:         st.Ping,
		Metrics:       metrics.New(),
		ImagesDir:     imagesDir,
		CORSOrigins:   cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := events.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}
	if err := st.Close(shutdownCtx); err != nil {
		logger.Error("store_close_error", "error", err)
	}

	logger.Info("server_stopped")
}

func newStorage(cfg *config.Config) (upload.Storage, string, error) {
	switch cfg.UploadBackend {
	case config.UploadS3:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s, err := upload.NewS3(ctx, upload.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, "", err
		}
		return s, "", nil
	case config.UploadMemory:
		return upload.Memory{}, "", nil
	default:
		d, err := upload.NewDisk(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, "", err
		}
		return d, cfg.UploadDir, nil
	}
}
