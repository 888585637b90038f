package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/adapters/out/courier"
	"fulfillment/internal/adapters/out/restclient"
	"fulfillment/internal/pkg/retry"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	EventsBrokerKafka    = "kafka"
	EventsBrokerRabbitMQ = "rabbitmq"
	EventsBrokerLog      = "log"
)

type Config struct {
	HTTPPort    string
	StoreDriver string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	POS     restclient.Config
	Courier courier.Config
	Sync    retry.Policy

	// CourierAutoAdvance lets courier webhooks move the order to OUT_FOR_DELIVERY and DELIVERED.
	CourierAutoAdvance bool

	RedisAddr        string
	TrackingCacheTTL time.Duration

	EventsBroker               string
	KafkaBrokers               []string
	KafkaConsumerGroup         string
	KafkaPaymentConfirmedTopic string
	KafkaOrderChangedTopic     string
	RabbitMQURL                string
	RabbitMQExchange           string

	ZonesFile string

	ReconcileSchedule   string
	ReconcileStaleAfter time.Duration
	ReconcileLimit      int
}

// LoadConfig reads the configuration from the environment. lookup is os.Getenv
// in production. All malformed values are reported together.
func LoadConfig(lookup func(string) string) (Config, error) {
	p := parser{lookup: lookup}
	defaults := retry.DefaultPolicy()

	cfg := Config{
		HTTPPort:    p.str("HTTP_PORT", "8080"),
		StoreDriver: strings.ToLower(p.str("STORE_DRIVER", StoreDriverPostgres)),

		DBHost:     p.str("DB_HOST", "localhost"),
		DBPort:     p.str("DB_PORT", "5432"),
		DBUser:     p.str("DB_USER", ""),
		DBPassword: p.str("DB_PASSWORD", ""),
		DBName:     p.str("DB_NAME", ""),
		DBSslMode:  p.str("DB_SSLMODE", "disable"),

		POS: restclient.Config{
			BaseURL: p.str("POS_BASE_URL", ""),
			APIKey:  p.str("POS_API_KEY", ""),
			Timeout: p.duration("POS_TIMEOUT", 5*time.Second),
		},
		Courier: courier.Config{
			Config: restclient.Config{
				BaseURL: p.str("COURIER_BASE_URL", ""),
				APIKey:  p.str("COURIER_API_KEY", ""),
				Timeout: p.duration("COURIER_TIMEOUT", 5*time.Second),
			},
			Provider: p.str("COURIER_PROVIDER", ""),
		},
		Sync: retry.Policy{
			MaxAttempts:    p.integer("SYNC_MAX_ATTEMPTS", defaults.MaxAttempts),
			BaseDelay:      p.duration("SYNC_BASE_DELAY", defaults.BaseDelay),
			MaxDelay:       p.duration("SYNC_MAX_DELAY", defaults.MaxDelay),
			Jitter:         defaults.Jitter,
			AttemptTimeout: defaults.AttemptTimeout,
		},
		CourierAutoAdvance: p.boolean("COURIER_AUTO_ADVANCE", true),

		RedisAddr:        p.str("REDIS_ADDR", ""),
		TrackingCacheTTL: p.duration("TRACKING_CACHE_TTL", 5*time.Minute),

		EventsBroker:               strings.ToLower(p.str("EVENTS_BROKER", EventsBrokerLog)),
		KafkaBrokers:               p.list("KAFKA_BROKERS"),
		KafkaConsumerGroup:         p.str("KAFKA_CONSUMER_GROUP", "fulfillment"),
		KafkaPaymentConfirmedTopic: p.str("KAFKA_PAYMENT_CONFIRMED_TOPIC", ""),
		KafkaOrderChangedTopic:     p.str("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		RabbitMQURL:                p.str("RABBITMQ_URL", ""),
		RabbitMQExchange:           p.str("RABBITMQ_EXCHANGE", "order.changed"),

		ZonesFile: p.str("ZONES_FILE", ""),

		ReconcileSchedule:   p.str("RECONCILE_SCHEDULE", "0 */5 * * * *"),
		ReconcileStaleAfter: p.duration("RECONCILE_STALE_AFTER", 15*time.Minute),
		ReconcileLimit:      p.integer("RECONCILE_LIMIT", 500),
	}

	if cfg.StoreDriver != StoreDriverPostgres && cfg.StoreDriver != StoreDriverMemory {
		p.fail("STORE_DRIVER", fmt.Errorf("%q is not one of postgres, memory", cfg.StoreDriver))
	}
	switch cfg.EventsBroker {
	case EventsBrokerKafka:
		if len(cfg.KafkaBrokers) == 0 {
			p.fail("KAFKA_BROKERS", errors.New("required when EVENTS_BROKER=kafka"))
		}
	case EventsBrokerRabbitMQ:
		if cfg.RabbitMQURL == "" {
			p.fail("RABBITMQ_URL", errors.New("required when EVENTS_BROKER=rabbitmq"))
		}
	case EventsBrokerLog:
	default:
		p.fail("EVENTS_BROKER", fmt.Errorf("%q is not one of kafka, rabbitmq, log", cfg.EventsBroker))
	}
	if cfg.KafkaPaymentConfirmedTopic != "" && len(cfg.KafkaBrokers) == 0 {
		p.fail("KAFKA_BROKERS", errors.New("required when KAFKA_PAYMENT_CONFIRMED_TOPIC is set"))
	}

	if err := errors.Join(p.problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the Postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LookupEnv is the production lookup for LoadConfig.
func LookupEnv(key string) string { return os.Getenv(key) }

type parser struct {
	lookup   func(string) string
	problems []error
}

func (p *parser) fail(key string, err error) {
	p.problems = append(p.problems, fmt.Errorf("%s: %w", key, err))
}

func (p *parser) str(key, fallback string) string {
	if v := strings.TrimSpace(p.lookup(key)); v != "" {
		return v
	}
	return fallback
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return d
}

func (p *parser) integer(key string, fallback int) int {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return n
}

func (p *parser) boolean(key string, fallback bool) bool {
	raw := p.str(key, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return b
}

func (p *parser) list(key string) []string {
	var out []string
	for _, part := range strings.Split(p.str(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
