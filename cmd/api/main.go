package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/slicehouse/go-pizza-orders/internal/auth"
	"github.com/slicehouse/go-pizza-orders/internal/catalog"
	"github.com/slicehouse/go-pizza-orders/internal/config"
	"github.com/slicehouse/go-pizza-orders/internal/httpx"
	kafkax "github.com/slicehouse/go-pizza-orders/internal/kafka"
	"github.com/slicehouse/go-pizza-orders/internal/orders"
	"github.com/slicehouse/go-pizza-orders/internal/postgres"
	"github.com/slicehouse/go-pizza-orders/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per topic
	pPlaced := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	pPlaced.Start(ctx)
	pStatus := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatus, 1024)
	pStatus.Start(ctx)

	// Repos & handlers
	tokens := auth.NewTokenCodec(cfg.AuthSecret)
	orderRepo := &orders.Repo{DB: db}
	catalogRepo := &catalog.Repo{DB: db}
	userRepo := &auth.Repo{DB: db}

	router := httpx.NewRouter(db)
	ah := &httpx.AuthHandler{Users: userRepo, Tokens: tokens}
	ah.Register(router)
	oh := &httpx.OrdersHandler{
		Store:    orderRepo,
		Menu:     catalogRepo,
		Producer: pPlaced,
		Redis:    rdb,
		Tokens:   tokens,
		Service:  cfg.ServiceName,
	}
	oh.Register(router)
	admin := &httpx.AdminHandler{
		Orders:   orderRepo,
		Catalog:  catalogRepo,
		Producer: pStatus,
		Redis:    rdb,
		Tokens:   tokens,
		Service:  cfg.ServiceName,
	}
	admin.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	pPlaced.Close() // close inbox -> flush & close writer
	pStatus.Close()
	cancel()
	pPlaced.WaitClosed()
	pStatus.WaitClosed()
}
