package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Print modes
const (
	PrintModeSpoolDir = "spool-dir"
	PrintModeCommand  = "command"
	PrintModeR2       = "r2"
)

type Config struct {
	Env      string
	Log      LogConfig
	API      APIConfig
	Payment  PaymentConfig
	Print    PrintConfig
	Currency CurrencyConfig
	R2       R2Config
}

type LogConfig struct {
	Level string
	File  string
}

type APIConfig struct {
	Addr string // empty disables the collaborator API
}

type PaymentConfig struct {
	Delay   time.Duration
	Decline bool
}

type PrintConfig struct {
	Mode     string
	SpoolDir string
	Command  []string
	Timeout  time.Duration // per ticket print job
}

type CurrencyConfig struct {
	Symbol string
}

// R2Config is the bucket receiving ticket PDFs in r2 print mode
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	Endpoint        string
	Prefix          string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Env: getEnv("ENV", "development"),
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", "ticketbox-terminal.log"),
		},
		API: APIConfig{
			Addr: getEnv("API_ADDR", ""),
		},
		Payment: PaymentConfig{
			Delay:   getEnvAsDuration("PAYMENT_DELAY", 2*time.Second),
			Decline: getEnvAsBool("PAYMENT_DECLINE", false),
		},
		Print: PrintConfig{
			Mode:     getEnv("PRINT_MODE", PrintModeSpoolDir),
			SpoolDir: getEnv("PRINT_SPOOL_DIR", "tickets"),
			Command:  strings.Fields(getEnv("PRINT_COMMAND", "lp -o media=Custom.140x76mm -o fit-to-page")),
			Timeout:  getEnvAsDuration("PRINT_TIMEOUT", 30*time.Second),
		},
		Currency: CurrencyConfig{
			Symbol: getEnv("CURRENCY_SYMBOL", "$"),
		},
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", "ticket-prints"),
			Region:          getEnv("R2_REGION", "auto"),
			Endpoint:        getEnv("R2_ENDPOINT", ""),
			Prefix:          getEnv("R2_PREFIX", "tickets"),
		},
	}

	return config, nil
}

// RegisterFlags binds command-line flags to cfg. Flag defaults are the values
// already loaded from the environment, so a flag only wins when it is set.
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Env, "env", cfg.Env, "environment (development or production)")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Log.File, "log-file", cfg.Log.File, "log file path")
	fs.StringVar(&cfg.API.Addr, "api-addr", cfg.API.Addr, "listen address for the catalog API (disabled when empty)")
	fs.DurationVar(&cfg.Payment.Delay, "payment-delay", cfg.Payment.Delay, "simulated payment settlement delay")
	fs.BoolVar(&cfg.Payment.Decline, "payment-decline", cfg.Payment.Decline, "make the simulated terminal decline every charge")
	fs.StringVar(&cfg.Print.Mode, "print-mode", cfg.Print.Mode, "print target: spool-dir, command or r2")
	fs.StringVar(&cfg.Print.SpoolDir, "print-spool-dir", cfg.Print.SpoolDir, "directory receiving ticket PDFs in spool-dir mode")
	fs.StringSliceVar(&cfg.Print.Command, "print-command", cfg.Print.Command, "print command and arguments in command mode")
	fs.DurationVar(&cfg.Print.Timeout, "print-timeout", cfg.Print.Timeout, "time allowed for one ticket print job")
	fs.StringVar(&cfg.R2.BucketName, "r2-bucket", cfg.R2.BucketName, "bucket receiving ticket PDFs in r2 mode")
	fs.StringVar(&cfg.R2.Prefix, "r2-prefix", cfg.R2.Prefix, "object key prefix in r2 mode")
	fs.StringVar(&cfg.Currency.Symbol, "currency-symbol", cfg.Currency.Symbol, "currency symbol shown before amounts")
}

// Validate checks the settings that cannot fall back to a default
func (c *Config) Validate() error {
	switch c.Print.Mode {
	case PrintModeSpoolDir:
		if strings.TrimSpace(c.Print.SpoolDir) == "" {
			return fmt.Errorf("print spool directory is required in %s mode", PrintModeSpoolDir)
		}
	case PrintModeCommand:
		if len(c.Print.Command) == 0 {
			return fmt.Errorf("print command is required in %s mode", PrintModeCommand)
		}
	case PrintModeR2:
		if c.R2.AccessKeyID == "" || c.R2.SecretAccessKey == "" {
			return fmt.Errorf("R2 credentials are required in %s mode", PrintModeR2)
		}
		if c.R2.AccountID == "" && c.R2.Endpoint == "" {
			return fmt.Errorf("R2 account id or endpoint is required in %s mode", PrintModeR2)
		}
	default:
		return fmt.Errorf("unknown print mode %q", c.Print.Mode)
	}

	if c.Payment.Delay < 0 {
		return fmt.Errorf("payment delay cannot be negative")
	}
	if c.Print.Timeout <= 0 {
		return fmt.Errorf("print timeout must be positive")
	}

	return nil
}

// IsProduction reports whether the terminal runs with production settings
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("1500ms") or a plain number of milliseconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms := getEnvAsInt(key, -1); ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
