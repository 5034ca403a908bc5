package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dnminh/fashionshop-backend/internal/account"
	"github.com/dnminh/fashionshop-backend/internal/cart"
	"github.com/dnminh/fashionshop-backend/internal/catalog"
	"github.com/dnminh/fashionshop-backend/internal/favorite"
	"github.com/dnminh/fashionshop-backend/internal/importbill"
	"github.com/dnminh/fashionshop-backend/internal/logger"
	"github.com/dnminh/fashionshop-backend/internal/order"
	"github.com/dnminh/fashionshop-backend/internal/otp"
	"github.com/dnminh/fashionshop-backend/internal/payment"
	"github.com/dnminh/fashionshop-backend/internal/router"
	"github.com/dnminh/fashionshop-backend/internal/statistic"
	storage "github.com/dnminh/fashionshop-backend/internal/storage/mongo"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	cfg, err := NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.NewMongoStorage(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to initialize Mongo storage: %v", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := store.Close(closeCtx); err != nil {
			log.Printf("Warning: failed to close storage: %v", err)
		}
	}()

	otpStore := otp.NewStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.OTPTTL)
	if err := otpStore.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping redis: %v", err)
	}
	defer func() {
		if err := otpStore.Close(); err != nil {
			log.Printf("Warning: failed to close OTP store: %v", err)
		}
	}()

	accountSvc := account.NewService(store, otpStore, []byte(cfg.JWTSecret), cfg.JWTTTL)
	accountHandler := account.NewHandler(accountSvc)

	catalogSvc := catalog.NewService(store, store, store)
	catalogHandler := catalog.NewHandler(catalogSvc)

	cartSvc := cart.NewService(store, store)
	cartHandler := cart.NewHandler(cartSvc)

	favoriteSvc := favorite.NewService(store, store)
	favoriteHandler := favorite.NewHandler(favoriteSvc)

	orderSvc := order.NewService(store, store)
	detailSvc := order.NewDetailService(store, store, store)
	orderHandler := order.NewHandler(orderSvc, detailSvc)

	paymentSvc := payment.NewService(store, payment.Config{
		TmnCode:    cfg.VNPTmnCode,
		HashSecret: cfg.VNPHashSecret,
		BaseURL:    cfg.VNPURL,
		ReturnURL:  cfg.VNPReturnURL,
	})
	paymentHandler := payment.NewHandler(paymentSvc)

	importBillSvc := importbill.NewService(store, store)
	importBillHandler := importbill.NewHandler(importBillSvc)

	statisticSvc := statistic.NewService(store)
	statisticHandler := statistic.NewHandler(statisticSvc)

	r := router.NewRouter(
		accountHandler,
		catalogHandler,
		cartHandler,
		favoriteHandler,
		orderHandler,
		paymentHandler,
		importBillHandler,
		statisticHandler,
		[]byte(cfg.JWTSecret),
		store,
	)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
