package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func New() (*Config, error) {
	var Config Config
	err := godotenv.Load(".env")
	if err != nil {
		logrus.Error("Error can't get the environment variables by file")
	}
	if err := env.Parse(&Config); err != nil {
		logrus.Fatalf("Error initializing: %s", err.Error())
		os.Exit(1)
	}
	return &Config, nil
}

type Config struct {
	APP
	DB
	Kafka
	Verification
}

type APP struct {
	PORT string `env:"APP_PORT" envDefault:"8080"`

	// STORAGE selects the backing stores: "postgres" or "memory". Memory mode
	// runs the whole pipeline in-process with seeded sample data.
	STORAGE string `env:"APP_STORAGE" envDefault:"memory"`
}

type DB struct {
	HOST     string `env:"DB_HOST"`
	USER     string `env:"DB_USER"`
	PASSWORD string `env:"DB_PASSWORD"`
	NAME     string `env:"DB_NAME"`
	PORT     string `env:"DB_PORT"`
	SSLMODE  string `env:"DB_SSLMODE"`
}

type Kafka struct {
	Brokers                   string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	VerificationConsumerGroup string `env:"KAFKA_VERIFICATION_GROUP_ID" envDefault:"verification-service"`
	PublishTopics             string `env:"KAFKA_PUBLISH_TOPICS" envDefault:"charges.verified,scams.reported,verifications.dlq"`
	SubscriberTopics          string `env:"KAFKA_SUBSCRIBER_TOPICS" envDefault:"scams.confirmed"`

	RetryMaxAttempts int           `env:"KAFKA_RETRY_MAX_ATTEMPTS" envDefault:"5"`
	RetryBaseDelay   time.Duration `env:"KAFKA_RETRY_BASE_DELAY" envDefault:"100ms"`
	RetryMaxDelay    time.Duration `env:"KAFKA_RETRY_MAX_DELAY" envDefault:"10s"`
	RetryJitter      bool          `env:"KAFKA_RETRY_JITTER" envDefault:"true"`
}

// Verification tunes the pipeline heuristics. The defaults are the calibrated
// values; override them only for experimentation.
type Verification struct {
	AmountTolerance   float64 `env:"VERIFICATION_AMOUNT_TOLERANCE" envDefault:"0.01"`
	ExpectedChargeMin float64 `env:"VERIFICATION_EXPECTED_CHARGE_MIN" envDefault:"50"`
	ExpectedChargeMax float64 `env:"VERIFICATION_EXPECTED_CHARGE_MAX" envDefault:"200"`

	HighValueThreshold float64 `env:"VERIFICATION_HIGH_VALUE_THRESHOLD" envDefault:"500"`
	LowValueThreshold  float64 `env:"VERIFICATION_LOW_VALUE_THRESHOLD" envDefault:"5"`
	NightStartHour     int     `env:"VERIFICATION_NIGHT_START_HOUR" envDefault:"3"`
	NightEndHour       int     `env:"VERIFICATION_NIGHT_END_HOUR" envDefault:"5"`

	SafeCutoff int `env:"VERIFICATION_SAFE_CUTOFF" envDefault:"90"`
	ScamCutoff int `env:"VERIFICATION_SCAM_CUTOFF" envDefault:"60"`
}

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      bool
}

func (k Kafka) GetRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: k.RetryMaxAttempts,
		BaseDelay:   k.RetryBaseDelay,
		MaxDelay:    k.RetryMaxDelay,
		Jitter:      k.RetryJitter,
	}
}
