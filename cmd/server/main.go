package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkout-be/internal/config"
	"checkout-be/internal/gateway"
	"checkout-be/internal/httpapi"
	"checkout-be/internal/logger"
	"checkout-be/internal/order"
	"checkout-be/internal/payment"

	"go.uber.org/zap"
)

// startServerFunc is swappable in tests so run() can be exercised without
// binding a port.
var startServerFunc = func(srv *http.Server) error {
	return srv.ListenAndServe()
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	router := newServer(cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.L().Info("Shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	logger.L().Info("Checkout server running", zap.String("port", cfg.AppPort))

	if err := startServerFunc(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newServer wires the gateway client, services and router from config.
func newServer(cfg *config.Config) http.Handler {
	gw := gateway.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	orderSvc := order.NewService(gw, nil)
	paymentSvc := payment.NewService(gw, cfg.RazorpayKeySecret)

	h := httpapi.NewHandler(orderSvc, paymentSvc)

	return httpapi.NewRouter(h, cfg.AllowedOrigin)
}
