package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUrl        string
	Port         string
	JWTSecret    string
	KafkaBrokers []string
	SeedData     bool
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, relying on existing environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		DBUrl:        os.Getenv("DB_URL"),
		Port:         port,
		JWTSecret:    os.Getenv("JWT_SECRET"),
		KafkaBrokers: parseBrokers(os.Getenv("KAFKA_BROKERS")),
		SeedData:     os.Getenv("SEED_DATA") != "false",
	}
}

func parseBrokers(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var brokers []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
