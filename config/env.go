package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port    string
	Redis   RedisConfig
	DB      DBConfig
	Auth    AuthConfig
	Policy  PolicyConfig
	Accrual AccrualConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

type AuthConfig struct {
	JWTSecret   string
	TokenTTLHrs int
}

type PolicyConfig struct {
	MaxConcurrentPercentage int
}

type AccrualConfig struct {
	DaysPerMonth decimal.Decimal
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	tokenTTL, _ := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))

	maxPct, err := strconv.Atoi(getEnv("MAX_CONCURRENT_PERCENTAGE", "30"))
	if err != nil || maxPct <= 0 {
		maxPct = 30
	}

	accrualRate, err := decimal.NewFromString(getEnv("ACCRUAL_DAYS_PER_MONTH", "0"))
	if err != nil {
		accrualRate = decimal.Zero
	}

	return Config{
		Port: getEnv("PORT", "8080"),
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "urlaubsplaner"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "urlaubsplaner-dev-secret"),
			TokenTTLHrs: tokenTTL,
		},
		Policy: PolicyConfig{
			MaxConcurrentPercentage: maxPct,
		},
		Accrual: AccrualConfig{
			DaysPerMonth: accrualRate,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
