package main

import (
	"log"

	"tableside/config"
	httpapi "tableside/internal/api/http"
	"tableside/internal/service"
	"tableside/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	cache := storage.NewRedisCache(rdb)

	var publisher service.OrderEventPublisher
	if config.KafkaBroker() != "" {
		publisher = storage.NewKafkaPublisher(config.NewKafkaWriter("order-events"))
	} else {
		log.Println("[tableside] KAFKA_BROKER not set, order events disabled")
	}

	qr := service.DefaultQRGenerator{BaseURL: config.BaseURL()}

	tableSvc := service.NewTableService(repo, qr)
	foodSvc := service.NewFoodService(repo)
	sessionSvc := service.NewSessionService(repo, repo, cache)
	invoiceSvc := service.NewInvoiceService(repo)
	orderSvc := service.NewOrderService(repo, repo, repo, sessionSvc, invoiceSvc, publisher)

	handler := httpapi.NewHandler(tableSvc, foodSvc, orderSvc, sessionSvc, invoiceSvc)
	httpapi.StartServer(config.HTTPAddr(), httpapi.NewRouter(handler))
}
