//go:build ignore

// Publishes one forecast job and waits for the worker's answer.
//
//	go run scripts/test_publish.go -municipio Campinas -vaccine bcg
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/coverage-analytics/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	municipio := flag.String("municipio", "Campinas", "municipality with stored coverage history")
	vaccine := flag.String("vaccine", "bcg", "vaccine")
	wait := flag.Duration("wait", 30*time.Second, "how long to wait for the result")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Remember where the done stream ends so only newer results are read.
	lastID := "0"
	if entries, err := client.XRevRangeN(ctx, domain.StreamForecastDone, "+", "-", 1).Result(); err == nil && len(entries) > 0 {
		lastID = entries[0].ID
	}

	event := domain.ForecastJobEvent{
		JobID:     uuid.New(),
		Municipio: *municipio,
		Vaccine:   *vaccine,
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamForecastRequest,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Job published\n")
	fmt.Printf("   Stream:     %s\n", domain.StreamForecastRequest)
	fmt.Printf("   Message ID: %s\n", id)
	fmt.Printf("   Job ID:     %s\n", event.JobID)
	fmt.Printf("\nWaiting for result in %s...\n", domain.StreamForecastDone)

	deadline := time.Now().Add(*wait)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamForecastDone, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			log.Fatalf("Failed to read results: %v", err)
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				raw, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}
				var done domain.ForecastDoneEvent
				if err := json.Unmarshal([]byte(raw), &done); err != nil || done.JobID != event.JobID {
					continue
				}

				pretty, _ := json.MarshalIndent(done, "", "  ")
				fmt.Printf("\nResult received:\n%s\n", pretty)
				return
			}
		}
	}

	fmt.Println("Timed out waiting for result")
}
