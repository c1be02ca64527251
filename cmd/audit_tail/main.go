package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"course-advisor-be/internal/config"
	"course-advisor-be/pkg/events"
	pktNats "course-advisor-be/pkg/nats"

	"github.com/fatih/color"
)

// Tails chat audit events off the NATS bus. Useful for watching fallback and
// cancellation rates live without querying the audit table.
func main() {
	cfg := config.Load()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("advisor."+events.TypeChatAudited, "audit-tail", func(ctx context.Context, event events.Event) error {
		payload := event.Payload()
		status, _ := payload["status"].(string)

		line := color.GreenString
		switch status {
		case "FALLBACK_SUCCESS":
			line = color.YellowString
		case "ERROR", "CANCELLED":
			line = color.RedString
		}

		log.Println(line("%-17s provider=%-8v latency_ms=%-6v session=%v",
			status, payload["provider"], payload["latency_ms"], payload["session_id"]))
		return nil
	})
	if err != nil {
		log.Fatalf("Error: Failed to subscribe: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
