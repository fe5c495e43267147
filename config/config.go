package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sambezza/hullpropertyanalysis/models"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SalesSource  string // "csv" or "postgres"
	SalesCSVPath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	FetchMode  string // "static" or "browser"
	MaxRetries int
	ChromeBin  string

	HTTPPort       string
	ThresholdsPath string

	Defaults models.InvestmentInputs
}

// StampDutyPercent is fixed; it is not read from the environment.
const StampDutyPercent = 5.0

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SalesSource:  getEnv("SALES_SOURCE", "csv"),
		SalesCSVPath: getEnv("SALES_CSV_PATH", "./data/ppd_data.csv"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "analyzer"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "analyzer123"),
		PostgresDB:       getEnv("POSTGRES_DB", "landregistry_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		FetchMode:  getEnv("FETCH_MODE", "static"),
		MaxRetries: getEnvInt("MAX_RETRIES", 3),
		ChromeBin:  getEnv("CHROME_BIN", ""),

		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		ThresholdsPath: getEnv("THRESHOLDS_PATH", "./configs/thresholds.yaml"),

		Defaults: models.InvestmentInputs{
			DepositPercent:          getEnvFloat("DEPOSIT_PERCENT", 25),
			MortgageInterestPercent: getEnvFloat("MORTGAGE_INTEREST_PERCENT", 5.5),
			StampDutyPercent:        StampDutyPercent,
			LegalFees:               getEnvFloat("LEGAL_FEES", 2000),
			RefurbishmentCost:       getEnvFloat("REFURBISHMENT_COST", 5000),
			MonthlyRent:             getEnvFloat("MONTHLY_RENT", 600),
			YearlyMaintenance:       getEnvFloat("YEARLY_MAINTENANCE", 800),
			Insurance:               getEnvFloat("INSURANCE", 170),
		},
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}
