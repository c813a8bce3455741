package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "config/notifications.yaml"

type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	BoardURL string `yaml:"board_url" env:"BOARD_URL" env-default:"http://localhost:8080"`
	SMTP     SMTP   `yaml:"smtp"`
	Kafka    Kafka  `yaml:"kafka"`
}

type SMTP struct {
	Email    string `yaml:"email" env:"SMTP_EMAIL"`
	Password string `yaml:"-" env:"SMTP_PASSWORD"`
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
}

type Kafka struct {
	Brokers     []string `yaml:"brokers" env:"KAFKA_BROKERS"`
	GroupId     string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"join-notifications"`
	EventsTopic string   `yaml:"events_topic" env:"KAFKA_EVENTS_TOPIC" env-default:"board-events"`
}

func MustLoadConfig() *Config {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return &cfg
}

func (c *Config) Validate() error {
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}
	if c.SMTP.Host == "" || c.SMTP.Email == "" {
		return fmt.Errorf("smtp.host and smtp.email are required")
	}
	if c.SMTP.Password == "" {
		return fmt.Errorf("SMTP_PASSWORD in env is empty")
	}
	return nil
}
