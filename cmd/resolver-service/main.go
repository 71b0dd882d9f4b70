package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/Ware71/CIAGA-sub002/pkg/catalog"
	"github.com/Ware71/CIAGA-sub002/pkg/common/config"
	"github.com/Ware71/CIAGA-sub002/pkg/common/database"
	"github.com/Ware71/CIAGA-sub002/pkg/common/kafka"
	"github.com/Ware71/CIAGA-sub002/pkg/common/logger"
	"github.com/Ware71/CIAGA-sub002/pkg/course"
	"github.com/Ware71/CIAGA-sub002/pkg/geocode"
	"github.com/Ware71/CIAGA-sub002/pkg/matching"
	"github.com/Ware71/CIAGA-sub002/pkg/resolver"
)

func main() {
	logger.Init()
	cfg := config.Load()

	db, err := database.OpenPostgres(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer database.ClosePostgres(db)

	repo := course.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate course tables")
	}

	redisClient := database.OpenRedis(cfg)
	defer database.CloseRedis(redisClient)

	catalogClient := catalog.NewHTTPClient(cfg.CatalogBaseURL, cfg.CatalogAPIKey, cfg.CatalogTimeout)
	matcher := matching.NewMatcher(catalogClient, cfg.Match)
	geocoder := geocode.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderTimeout, redisClient, cfg.GeocodeCacheTTL)

	var producer, dlq resolver.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p := kafka.NewProducer(cfg.KafkaBrokers, cfg.EnrichedTopic)
		defer p.Close()
		producer = p

		if cfg.EnrichedDLQTopic != "" {
			d := kafka.NewProducer(cfg.KafkaBrokers, cfg.EnrichedDLQTopic)
			defer d.Close()
			dlq = d
		}
	}

	svc := resolver.NewService(repo, matcher, geocoder, producer, dlq, cfg)
	handler := resolver.NewHTTPHandler(svc, cfg.MaxRequestBody)

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	handler.Register(router.PathPrefix("/api/v1").Subrouter())

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Resolver Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Resolver Service...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	logger.Log.Info("Resolver Service stopped")
}
