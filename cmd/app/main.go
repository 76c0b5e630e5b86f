package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"orderapi/cmd"
	httpin "orderapi/internal/adapters/in/http"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	root, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Failed to assemble application: %v", err)
	}

	if configs.SeedSampleData {
		if err := root.SeedSampleData(context.Background()); err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
	}

	if err := root.StartJobs(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer root.StopJobs()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:       envOrDefault("HTTP_PORT", "8080"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         envOrDefault("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBSslMode:      envOrDefault("DB_SSLMODE", "disable"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		IdempotencyTTL: durationVariable("IDEMPOTENCY_TTL"),
		SeedSampleData: boolVariable("SEED_SAMPLE_DATA"),
	}
	return config
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationVariable(key string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s value %q: %v", key, raw, err)
	}
	return value
}

func boolVariable(key string) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return false
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("Invalid %s value %q: %v", key, raw, err)
	}
	return value
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	server := httpin.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateSearchOrdersQueryHandler(),
	)

	e := httpin.NewEcho(server)
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
