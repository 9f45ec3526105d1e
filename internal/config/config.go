package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CacheRedis  = "redis"
	CacheMemory = "memory"

	BrokerRabbit = "rabbitmq"
	BrokerKafka  = "kafka"
)

type Postgres struct {
	Host     string
	Port     string
	DB       string
	User     string
	Password string
	SSLMode  string
}

type Mongo struct {
	URI        string
	DB         string
	Collection string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Rabbit struct {
	URL        string
	Exchange   string
	RoutingKey string
}

type Kafka struct {
	Brokers []string
	Topic   string
}

type Auth struct {
	Secret   string
	Issuer   string
	Audience string
	TokenTTL time.Duration
}

type Breaker struct {
	Threshold   uint32
	OpenTimeout time.Duration
	MaxHalfOpen uint32
}

type Retry struct {
	Attempts     int
	Base         time.Duration
	Max          time.Duration
	JitterFactor float64
}

type Config struct {
	HTTPAddr     string
	CacheBackend string
	CacheSize    int
	Broker       string

	Pg      Postgres
	Mongo   Mongo
	Redis   Redis
	Rabbit  Rabbit
	Kafka   Kafka
	Auth    Auth
	Breaker Breaker
	Retry   Retry
}

// Load keeps the original API and fatals on error for simplicity in main().
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTPAddr:     envDefault("HTTP_ADDR", ":8081"),
		CacheBackend: strings.ToLower(envDefault("CACHE_BACKEND", CacheRedis)),
		CacheSize:    envInt("CACHE_SIZE", 1024),
		Broker:       strings.ToLower(envDefault("BROKER", BrokerRabbit)),

		Pg: Postgres{
			Host:     strings.TrimSpace(os.Getenv("PG_HOST")),
			Port:     strings.TrimSpace(envDefault("PG_PORT", "5432")),
			DB:       strings.TrimSpace(os.Getenv("PG_DB")),
			User:     strings.TrimSpace(os.Getenv("PG_USER")),
			Password: strings.TrimSpace(os.Getenv("PG_PASSWORD")),
			SSLMode:  strings.TrimSpace(envDefault("PG_SSLMODE", "disable")),
		},

		Mongo: Mongo{
			URI:        strings.TrimSpace(os.Getenv("MONGO_URI")),
			DB:         strings.TrimSpace(envDefault("MONGO_DB", "orders")),
			Collection: strings.TrimSpace(envDefault("MONGO_ITEMS_COLLECTION", "order_items")),
		},

		Redis: Redis{
			Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Password: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
			DB:       envInt("REDIS_DB", 0),
		},

		Rabbit: Rabbit{
			URL:        strings.TrimSpace(os.Getenv("RABBIT_URL")),
			Exchange:   strings.TrimSpace(envDefault("RABBIT_EXCHANGE", "orders")),
			RoutingKey: strings.TrimSpace(envDefault("RABBIT_ROUTING_KEY", "order.created")),
		},

		Kafka: Kafka{
			Brokers: splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			Topic:   strings.TrimSpace(envDefault("KAFKA_TOPIC", "order-created")),
		},

		Auth: Auth{
			Secret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
			Issuer:   strings.TrimSpace(envDefault("JWT_ISSUER", "venice-orders")),
			Audience: strings.TrimSpace(envDefault("JWT_AUDIENCE", "venice-orders-api")),
			TokenTTL: envDuration("JWT_TTL", time.Hour),
		},

		Breaker: Breaker{
			Threshold:   envUint32("BREAKER_THRESHOLD", 5),
			OpenTimeout: envDuration("BREAKER_OPENTIMEOUT", 10*time.Second),
			MaxHalfOpen: envUint32("BREAKER_MAXHALFOPEN", 3),
		},

		Retry: Retry{
			Attempts:     envInt("RETRY_ATTEMPTS", 5),
			Base:         envDuration("RETRY_BASE", 100*time.Millisecond),
			Max:          envDuration("RETRY_MAX", 5*time.Second),
			JitterFactor: envFloat64("RETRY_JITTERFACTOR", 0.3),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	if cfg.CacheSize <= 0 {
		log.Printf("CACHE_SIZE is %d, adjusting to 1", cfg.CacheSize)
		cfg.CacheSize = 1
	}
	if cfg.Retry.Max < cfg.Retry.Base {
		log.Printf("RETRY_MAX (%v) < RETRY_BASE (%v), adjusting max to base", cfg.Retry.Max, cfg.Retry.Base)
		cfg.Retry.Max = cfg.Retry.Base
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	req := map[string]string{
		"PG_HOST":     c.Pg.Host,
		"PG_DB":       c.Pg.DB,
		"PG_USER":     c.Pg.User,
		"PG_PASSWORD": c.Pg.Password,
		"MONGO_URI":   c.Mongo.URI,
		"JWT_SECRET":  c.Auth.Secret,
	}
	switch c.CacheBackend {
	case CacheRedis:
		req["REDIS_ADDR"] = c.Redis.Addr
	case CacheMemory:
	default:
		return &badEnvError{Key: "CACHE_BACKEND", Value: c.CacheBackend}
	}
	switch c.Broker {
	case BrokerRabbit:
		req["RABBIT_URL"] = c.Rabbit.URL
	case BrokerKafka:
		req["KAFKA_BROKERS"] = strings.Join(c.Kafka.Brokers, ",")
	default:
		return &badEnvError{Key: "BROKER", Value: c.Broker}
	}
	for k, v := range req {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

type badEnvError struct{ Key, Value string }

func (e *badEnvError) Error() string {
	return "unsupported value for " + e.Key + ": " + e.Value
}

// DSN builds a proper Postgres URL, safely escaping user/pass and query.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Pg.User, c.Pg.Password),
		Host:   net.JoinHostPort(c.Pg.Host, c.Pg.Port),
		Path:   "/" + c.Pg.DB,
	}
	q := url.Values{}
	if c.Pg.SSLMode != "" {
		q.Set("sslmode", c.Pg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envUint32(k string, def uint32) uint32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	u, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return uint32(u)
}

func envFloat64(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.3f: %v", k, v, def, err)
		return def
	}
	return f
}

// envDuration supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
