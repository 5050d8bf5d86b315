package main

import (
	"cafe_pos/internal/config"
	"cafe_pos/internal/handlers"
	"cafe_pos/internal/logger"
	"cafe_pos/internal/messaging"
	"cafe_pos/internal/services"
	"cafe_pos/pkg/whatsapp"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	lgr, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("Failed to create logger: ", err)
	}
	defer lgr.Sync()

	if err := run(cfg, lgr); err != nil {
		lgr.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, lgr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clock := services.SystemClock(loc)
	ids, err := services.NewIDGenerator(cfg.IDStrategy, clock)
	if err != nil {
		return err
	}

	defaultMenu, err := services.DefaultMenu(cfg.MenuSeedFile)
	if err != nil {
		return err
	}

	// Initialize store
	store, err := openGateway(ctx, cfg)
	if err != nil {
		return err
	}
	lgr.Info("store opened", zap.String("backend", cfg.StoreBackend))

	// Initialize notifiers
	var notifiers services.Notifiers
	var whatsappService services.WhatsAppService
	if cfg.WhatsAppEnabled() {
		client := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath)
		whatsappService = services.NewWhatsAppService(client, cfg.OwnerWhatsApp, cfg.Currency, cfg.NotifyEachSale)
		notifiers = append(notifiers, whatsappService)
	}
	if cfg.AMQPURL != "" {
		publisher, err := messaging.Dial(cfg.AMQPURL, cfg.AMQPExchange, lgr.Named("amqp"))
		if err != nil {
			return err
		}
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
	}

	register := services.NewRegister(store, services.RegisterOptions{
		ShopName:    cfg.ShopName,
		Currency:    cfg.Currency,
		DefaultMenu: defaultMenu,
		IDs:         ids,
		Clock:       clock,
		Notifier:    notifiers,
		Logger:      lgr.Named("register"),
	})
	if err := register.Start(ctx); err != nil {
		_ = store.Close()
		return err
	}

	// Initialize handlers
	gin.SetMode(cfg.GinMode)
	routerOpts := handlers.RouterOptions{
		API:            handlers.NewAPIHandler(register, lgr.Named("api")),
		ManagerPINHash: cfg.ManagerPINHash,
		Logger:         lgr.Named("http"),
	}
	if whatsappService != nil {
		routerOpts.WhatsApp = handlers.NewWhatsAppHandler(whatsappService, register, lgr.Named("whatsapp"))
	}

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.NewRouter(routerOpts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		lgr.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			_ = register.Shutdown(context.Background())
			return err
		}
	case <-ctx.Done():
		lgr.Info("shutdown initiated")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		lgr.Error("error during shutdown", zap.Error(err))
	}
	return register.Shutdown(shutdownCtx)
}
