package main // Entry point for the reservation log worker

import (
    "log"

    "github.com/joho/godotenv"

    "github.com/iliyamo/classroom-reservation/internal/queue"
)

// The worker consumes reservation lifecycle events from RabbitMQ and
// appends them to an audit log on disk.  It runs separately from the
// API server so a slow disk or broker never blocks a booking.
func main() {
    _ = godotenv.Load()

    log.Println("reservation log worker starting")
    if err := queue.StartReservationConsumer(); err != nil {
        log.Fatalf("consumer stopped: %v", err)
    }
}
