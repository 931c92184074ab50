package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"alumnimart/internal/config"
	"alumnimart/internal/db"
	"alumnimart/internal/httpserver"
	"alumnimart/internal/paystack"
	brandrepo "alumnimart/internal/repository/brand"
	cartrepo "alumnimart/internal/repository/cart"
	categoryrepo "alumnimart/internal/repository/category"
	feedrepo "alumnimart/internal/repository/feed"
	orderrepo "alumnimart/internal/repository/order"
	productrepo "alumnimart/internal/repository/product"
	schoolrepo "alumnimart/internal/repository/school"
	tokenrepo "alumnimart/internal/repository/token"
	userrepo "alumnimart/internal/repository/user"
	accountsvc "alumnimart/internal/service/account"
	cartsvc "alumnimart/internal/service/cart"
	catalogsvc "alumnimart/internal/service/catalog"
	feedsvc "alumnimart/internal/service/feed"
	ordersvc "alumnimart/internal/service/order"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	schoolRepo := schoolrepo.NewPostgres(dbpool)
	userRepo := userrepo.NewPostgres(dbpool)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	brandRepo := brandrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	feedRepo := feedrepo.NewPostgres(dbpool)

	gateway := paystack.New(paystack.Config{
		BaseURL:   cfg.PaystackBaseURL,
		SecretKey: cfg.PaystackSecretKey,
		Timeout:   cfg.PaystackTimeout,
	})

	accountService := accountsvc.New(userRepo, schoolRepo, tokenRepo)
	categoryService := catalogsvc.NewCategoryService(categoryRepo)
	brandService := catalogsvc.NewBrandService(brandRepo, categoryRepo)
	productService := catalogsvc.NewProductService(productRepo, brandRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	orderService := ordersvc.New(orderRepo, cartRepo, gateway, cfg.PaymentCallbackURL, logger)
	feedService := feedsvc.New(feedRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AccountSvc:  accountService,
		SchoolSvc:   schoolRepo,
		CategorySvc: categoryService,
		BrandSvc:    brandService,
		ProductSvc:  productService,
		CartSvc:     cartService,
		OrderSvc:    orderService,
		FeedSvc:     feedService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
