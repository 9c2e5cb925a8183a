package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Kitchen display notifier: tails the order-events topic and mirrors the
// latest state per table into Redis so display screens can read it without
// touching the API database. Delivery here is advisory; the dashboards poll
// the API regardless.

type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   int         `json:"order_id"`
	TableID   int         `json:"table_id"`
	Status    string      `json:"status"`
	Total     json.Number `json:"total_amount"`
	Timestamp time.Time   `json:"timestamp"`
}

var (
	rdb *redis.Client
	ctx = context.Background()
)

func initRedis() {
	rdb = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
}

func processEvent(event OrderEvent) {
	switch event.Type {
	case "order_placed":
		log.Printf("[notifier] table %d: new order #%d (%s)", event.TableID, event.OrderID, event.Total)
	case "order_status_changed":
		log.Printf("[notifier] table %d: order #%d is now %s", event.TableID, event.OrderID, event.Status)
	default:
		log.Printf("[notifier] ignoring unknown event type %q", event.Type)
		return
	}

	tableKey := fmt.Sprintf("kitchen:table:%d", event.TableID)
	rdb.HSet(ctx, tableKey, map[string]interface{}{
		"order_id":     event.OrderID,
		"status":       event.Status,
		"total":        event.Total.String(),
		"last_updated": event.Timestamp.Unix(),
	})
	rdb.Expire(ctx, tableKey, 24*time.Hour)
}

func startConsumer() {
	kafkaBroker := os.Getenv("KAFKA_BROKER")
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{kafkaBroker},
		Topic:   "order-events",
		GroupID: "kitchen-notifier",
	})
	defer reader.Close()

	log.Println("Starting kitchen notifier consumer...")
	for {
		message, err := reader.ReadMessage(context.Background())
		if err != nil {
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		processEvent(event)
	}
}

func main() {
	initRedis()
	defer rdb.Close()

	startConsumer()
}
