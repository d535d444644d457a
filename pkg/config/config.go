package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Gateway   GatewayConfig
	HTTP      HTTPConfig
	Dashboard DashboardConfig
	SMTP      SMTPConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (d DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers          []string
	TopicReadings    string
	TopicPredictions string
	NumPartitions    int
}

type GatewayConfig struct {
	Port              int
	MaxConnections    int
	IdentifyTimeout   time.Duration
	InactivityTimeout time.Duration
}

type HTTPConfig struct {
	Port int
}

type DashboardConfig struct {
	// SnapshotLimit bounds the recent-records set handed to the
	// aggregation engine.
	SnapshotLimit   int
	RefreshInterval time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "airdash_user"),
			Password: getEnv("DB_PASSWORD", "airdash_pass"),
			DBName:   getEnv("DB_NAME", "airdash_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:          strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicReadings:    getEnv("KAFKA_TOPIC_READINGS", "air.readings.raw"),
			TopicPredictions: getEnv("KAFKA_TOPIC_PREDICTIONS", "air.predictions"),
			NumPartitions:    getEnvAsInt("KAFKA_NUM_PARTITIONS", 10),
		},
		Gateway: GatewayConfig{
			Port:              getEnvAsInt("GATEWAY_PORT", 8080),
			MaxConnections:    getEnvAsInt("GATEWAY_MAX_CONNECTIONS", 10000),
			IdentifyTimeout:   getEnvAsDuration("GATEWAY_IDENTIFY_TIMEOUT", 10*time.Second),
			InactivityTimeout: getEnvAsDuration("GATEWAY_INACTIVITY_TIMEOUT", 2*time.Minute),
		},
		HTTP: HTTPConfig{
			Port: getEnvAsInt("HTTP_PORT", 8081),
		},
		Dashboard: DashboardConfig{
			SnapshotLimit:   getEnvAsInt("DASHBOARD_SNAPSHOT_LIMIT", 240),
			RefreshInterval: getEnvAsDuration("DASHBOARD_REFRESH_INTERVAL", time.Minute),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "airdash-server@example.com"),
			To:       getEnv("SMTP_TO", "admin@example.com"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
