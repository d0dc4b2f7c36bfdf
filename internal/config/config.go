package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds generic service settings
type AppConfig struct {
	Port              string
	CollectorEndpoint string
}

// DBConfig holds the Postgres connection settings
type DBConfig struct {
	URL      string
	MaxConns int
}

// PushConfig holds the VAPID key pair used to sign Web Push requests.
type PushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subject         string
	AdminURL        string
}

// KafkaConfig holds the optional Kafka event pipeline settings. Brokers
// empty means the in-process bus is used instead.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
}

// NotifierConfig bounds the push fan-out.
type NotifierConfig struct {
	WorkerLimit int
	PushTimeout time.Duration
}

// Config is the full service configuration loaded from the environment.
type Config struct {
	App      AppConfig
	DB       DBConfig
	Push     PushConfig
	Kafka    KafkaConfig
	Notifier NotifierConfig
	// RedisAddr, when set, backs the subscription store with Redis so
	// admin opt-ins survive a restart.
	RedisAddr string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Port:              getEnv("PORT", "8080"),
			CollectorEndpoint: os.Getenv("OTEL_COLLECTOR_ENDPOINT"),
		},
		DB: DBConfig{
			URL:      os.Getenv("DATABASE_URL"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
		},
		Push: PushConfig{
			VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
			VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
			Subject:         getEnv("PUSH_SUBJECT", "mailto:admin@senteur.ma"),
			AdminURL:        getEnv("ADMIN_URL", "/admin/orders"),
		},
		Kafka: KafkaConfig{
			Topic:         getEnv("KAFKA_ORDER_TOPIC", "order-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "senteur-notifier"),
		},
		Notifier: NotifierConfig{
			WorkerLimit: getEnvInt("NOTIFIER_WORKERS", 8),
			PushTimeout: getEnvDuration("PUSH_TIMEOUT", 10*time.Second),
		},
		RedisAddr: os.Getenv("REDIS_ADDR"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Push.VAPIDPublicKey == "" || cfg.Push.VAPIDPrivateKey == "" {
		return nil, fmt.Errorf("VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
