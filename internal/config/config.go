package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "config/local.yaml"

const (
	BackendFirebase = "firebase"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Env           string        `yaml:"env" env:"ENV" env-default:"local"`
	Address       string        `yaml:"address" env:"BOARD_ADDRESS" env-default:":8080"`
	LogLevel      string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"debug"`
	Storage       Storage       `yaml:"storage"`
	Firebase      Firebase      `yaml:"firebase"`
	DB            DB            `yaml:"db"`
	JWT           JWT           `yaml:"jwt"`
	Redis         Redis         `yaml:"redis"`
	RateLimiter   RateLimiter   `yaml:"rate_limiter"`
	Kafka         Kafka         `yaml:"kafka"`
	Elasticsearch Elasticsearch `yaml:"elasticsearch"`
	Params        Params        `yaml:"params"`
}

type Storage struct {
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"firebase"`
}

type Firebase struct {
	URL       string        `yaml:"url" env:"FIREBASE_URL"`
	AuthToken string        `yaml:"auth_token" env:"FIREBASE_AUTH_TOKEN"`
	Timeout   time.Duration `yaml:"timeout" env:"FIREBASE_TIMEOUT" env-default:"10s"`
}

type DB struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"db_name" env:"DB_NAME"`
}

type JWT struct {
	Secret     string        `yaml:"secret" env:"JWT_SECRET"`
	TTL        time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"72h"`
	BcryptCost int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

type Redis struct {
	Address  string `yaml:"address" env:"REDIS_ADDRESS"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type RateLimiter struct {
	RPS   int `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"20"`
	Burst int `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"40"`
}

type Kafka struct {
	Brokers     []string `yaml:"brokers" env:"KAFKA_BROKERS"`
	EventsTopic string   `yaml:"events_topic" env:"KAFKA_EVENTS_TOPIC" env-default:"board-events"`
}

type Elasticsearch struct {
	Addresses []string `yaml:"addresses" env:"ELASTICSEARCH_ADDRESSES"`
	Index     string   `yaml:"index" env:"ELASTICSEARCH_INDEX" env-default:"tasks"`
}

type Params struct {
	Title    MinMaxLen `yaml:"title"`
	Name     MinMaxLen `yaml:"name"`
	Password MinMaxLen `yaml:"password"`
}

type MinMaxLen struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Default returns the configuration used when no file is given, with the
// in-memory backend.
func Default() *Config {
	return &Config{
		Env:         "local",
		Address:     ":8080",
		LogLevel:    "debug",
		Storage:     Storage{Backend: BackendMemory},
		Firebase:    Firebase{Timeout: 10 * time.Second},
		JWT:         JWT{Secret: "local-dev-secret", TTL: 72 * time.Hour, BcryptCost: 10},
		RateLimiter: RateLimiter{RPS: 20, Burst: 40},
		Kafka:       Kafka{EventsTopic: "board-events"},
		Elasticsearch: Elasticsearch{
			Index: "tasks",
		},
		Params: DefaultParams(),
	}
}

func DefaultParams() Params {
	return Params{
		Title:    MinMaxLen{Min: 1, Max: 100},
		Name:     MinMaxLen{Min: 1, Max: 50},
		Password: MinMaxLen{Min: 6, Max: 72},
	}
}

func MustLoadConfig() *Config {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.applyParamDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFirebase:
		if c.Firebase.URL == "" {
			return fmt.Errorf("firebase.url is required for the firebase backend")
		}
	case BackendPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("db.user and db.db_name are required for the postgres backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	return nil
}

func (c *Config) applyParamDefaults() {
	def := DefaultParams()
	fill := func(dst *MinMaxLen, src MinMaxLen) {
		if dst.Min <= 0 {
			dst.Min = src.Min
		}
		if dst.Max <= 0 {
			dst.Max = src.Max
		}
	}
	fill(&c.Params.Title, def.Title)
	fill(&c.Params.Name, def.Name)
	fill(&c.Params.Password, def.Password)
}
