package cmd

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"marketplace/internal/database"
	"marketplace/internal/server"
	"marketplace/internal/services"
	"marketplace/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		return err
	}

	// --- Order events ---
	var publisher services.EventPublisher
	if cfg.RabbitMQ.URL == "" {
		log.Println("RABBITMQ_URL is empty, order events are disabled")
	} else {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
		if err != nil {
			return err
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeOrderEvents(logOrderEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	srv, err := server.New(cfg, db, publisher)
	if err != nil {
		return err
	}
	if err := srv.Auth.EnsureAdmin(cmd.Context(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", cfg.App.Port)
		listenErr <- srv.App.Listen(cfg.App.Port)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-quit:
	}

	log.Println("Shutting down server...")
	if err := srv.App.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}

func logOrderEvent(routingKey string, body []byte) error {
	var event services.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}
	log.Printf("Received %s: order %s of store %s is %s", routingKey, event.OrderID, event.StoreID, event.Status)
	return nil
}
