package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	kafka_config "github.com/RoyceAzure/lab/rj_kafka/kafka/config"
	kafka_producer "github.com/RoyceAzure/lab/rj_kafka/kafka/producer"
	"github.com/RoyceAzure/lab/shop/internal/api/handler"
	"github.com/RoyceAzure/lab/shop/internal/api/router"
	"github.com/RoyceAzure/lab/shop/internal/config"
	"github.com/RoyceAzure/lab/shop/internal/infra/gateway"
	"github.com/RoyceAzure/lab/shop/internal/infra/producer"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shop/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	cf := config.GetConfig()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "shop").Logger()

	// db
	conn, err := db.GetDbConn(cf.DbName, cf.DbHost, cf.DbPort, cf.DbUser, cf.DbPas)
	if err != nil {
		log.Fatal(err)
	}
	store := db.NewUnifiedDB(conn)
	if err := store.InitMigrate(); err != nil {
		log.Fatal(err)
	}

	// redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cf.RedisAddr,
		Password: cf.RedisPas,
	})
	txRefRepo := redis_repo.NewTxRefRepo(redisClient)

	// kafka
	kafkaCfg := kafka_config.DefaultConfig()
	kafkaCfg.Brokers = strings.Split(cf.KafkaBrokers, ",")
	kafkaCfg.Topic = cf.NotificationTopic
	notifyProducer, err := kafka_producer.New(kafkaCfg)
	if err != nil {
		log.Fatal(err)
	}
	defer notifyProducer.Close()

	// 金流閘道
	paymentGateway := gateway.NewPaymentGatewayClient(
		cf.PaymentGatewayUrl,
		cf.PaymentGatewayKey,
		time.Duration(cf.PaymentTimeoutSecond)*time.Second,
	)

	// services
	notificationService := service.NewNotificationService(store, producer.NewNotificationProducer(notifyProducer))
	cartService := service.NewCartService(store)
	paymentService := service.NewPaymentService(store, paymentGateway, txRefRepo)
	orderService := service.NewOrderService(store, notificationService, &logger)
	productService := service.NewProductService(store)

	// handlers
	server := handler.NewServer(
		handler.NewCartHandler(cartService),
		handler.NewOrderHandler(orderService, paymentService),
		handler.NewProductHandler(productService),
	)

	r := router.SetupRouter(server, &logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cf.ServerPort),
		Handler: r,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		shutDownCompleted <- struct{}{}
	}()

	// 啟動服務
	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-shutDownCompleted
	log.Printf("closed completed")
}
