package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/sweetshop/api/internal/config"
	"github.com/sweetshop/api/internal/events"
	"github.com/sweetshop/api/internal/httpserver"
	"github.com/sweetshop/api/internal/models"
	"github.com/sweetshop/api/internal/repo"
	"github.com/sweetshop/api/internal/search"
	"github.com/sweetshop/api/internal/service"
	pkgdb "github.com/sweetshop/api/pkg/db"
	"github.com/sweetshop/api/pkg/logging"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Sweet{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()
	if !producer.Enabled() {
		logger.Info("kafka disabled, events will not be published")
	}

	var searchClient *search.Client
	if cfg.ESURL != "" {
		searchClient, err = search.NewClient(search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
	} else {
		logger.Info("elasticsearch disabled, suggest falls back to the store")
	}

	store := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{
		Repo:     store,
		Secret:   cfg.JWTSecret,
		TokenTTL: cfg.TokenTTL,
		Producer: producer,
	}
	catalogSvc := &service.CatalogService{Repo: store, Producer: producer, Search: searchClient}
	inventorySvc := &service.InventoryService{Repo: store, Producer: producer, Search: searchClient}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:  &httpserver.AuthHTTP{Svc: authSvc},
		SweetHandler: &httpserver.SweetHTTP{Catalog: catalogSvc, Inventory: inventorySvc},
		JWTSecret:    cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Printf("%s stopped", cfg.ServiceName)
}
