package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Payroll   PayrollConfig
	Cash      CashConfig
	Printer   PrinterConfig
	Assistant AssistantConfig
	Log       LogConfig
}

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	Debug        bool
	TerminalID   string
	Timezone     string
	Currency     string
	BusinessName string
	SeedDemo     bool
	AdminPin     string
}

// Location returns the configured time zone, or the local zone when it
// cannot be loaded.
func (a AppConfig) Location() *time.Location {
	if a.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time: %v", a.Timezone, err)
		return time.Local
	}
	return loc
}

type DatabaseConfig struct {
	Driver     string // sqlite, postgres or mysql
	SQLitePath string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests          int
	Duration          int
	AssistantRequests int
	AssistantDuration int
}

type PayrollConfig struct {
	WorkDaysPerMonth int
	HoursPerDay      int
	LateThreshold    string // HH:MM, arrivals strictly after it are late
}

type CashConfig struct {
	Denominations []int64
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

type AssistantConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Timeout    time.Duration
}

type LogConfig struct {
	Level    string
	Encoding string
}

// Load reads .env (if any), an optional CONFIG_FILE and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("Warning: could not read %s: %v", file, err)
		}
	}

	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "restopos")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", false)
	v.SetDefault("TERMINAL_ID", "caisse-1")
	v.SetDefault("APP_TIMEZONE", "Africa/Nouakchott")
	v.SetDefault("CURRENCY", "MRU")
	v.SetDefault("BUSINESS_NAME", "RestoPOS")
	v.SetDefault("SEED_DEMO", false)
	v.SetDefault("ADMIN_PIN", "")

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_SQLITE_PATH", "restopos.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "restopos")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")

	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 12)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")

	v.SetDefault("RATE_LIMIT_REQUESTS", 300)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("ASSISTANT_RATE_LIMIT_REQUESTS", 10)
	v.SetDefault("ASSISTANT_RATE_LIMIT_DURATION", 60)

	v.SetDefault("PAYROLL_WORK_DAYS_PER_MONTH", 26)
	v.SetDefault("PAYROLL_HOURS_PER_DAY", 8)
	v.SetDefault("PAYROLL_LATE_THRESHOLD", "08:30")

	v.SetDefault("CASH_DENOMINATIONS", "5,10,20,50,100,200,500,1000")

	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_WIDTH", 32)

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("ASSISTANT_MAX_RETRIES", 3)
	v.SetDefault("ASSISTANT_BASE_DELAY_MS", 500)
	v.SetDefault("ASSISTANT_MAX_DELAY_MS", 8000)
	v.SetDefault("ASSISTANT_TIMEOUT_SECONDS", 30)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", "json")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:         v.GetString("APP_NAME"),
			Env:          v.GetString("APP_ENV"),
			Port:         v.GetString("APP_PORT"),
			Debug:        v.GetBool("APP_DEBUG"),
			TerminalID:   v.GetString("TERMINAL_ID"),
			Timezone:     v.GetString("APP_TIMEZONE"),
			Currency:     v.GetString("CURRENCY"),
			BusinessName: v.GetString("BUSINESS_NAME"),
			SeedDemo:     v.GetBool("SEED_DEMO"),
			AdminPin:     v.GetString("ADMIN_PIN"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			SQLitePath: v.GetString("DB_SQLITE_PATH"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			Name:       v.GetString("DB_NAME"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			SSLMode:    v.GetString("DB_SSL_MODE"),
			Timezone:   v.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Expiry: time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests:          v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration:          v.GetInt("RATE_LIMIT_DURATION"),
			AssistantRequests: v.GetInt("ASSISTANT_RATE_LIMIT_REQUESTS"),
			AssistantDuration: v.GetInt("ASSISTANT_RATE_LIMIT_DURATION"),
		},
		Payroll: PayrollConfig{
			WorkDaysPerMonth: v.GetInt("PAYROLL_WORK_DAYS_PER_MONTH"),
			HoursPerDay:      v.GetInt("PAYROLL_HOURS_PER_DAY"),
			LateThreshold:    v.GetString("PAYROLL_LATE_THRESHOLD"),
		},
		Cash: CashConfig{
			Denominations: parseDenominations(v.GetString("CASH_DENOMINATIONS")),
		},
		Printer: PrinterConfig{
			Type:    v.GetString("PRINTER_TYPE"),
			USBPath: v.GetString("PRINTER_USB_PATH"),
			Address: v.GetString("PRINTER_ADDRESS"),
			Width:   v.GetInt("PRINTER_WIDTH"),
		},
		Assistant: AssistantConfig{
			APIKey:     v.GetString("GEMINI_API_KEY"),
			Model:      v.GetString("GEMINI_MODEL"),
			MaxRetries: v.GetInt("ASSISTANT_MAX_RETRIES"),
			BaseDelay:  time.Duration(v.GetInt("ASSISTANT_BASE_DELAY_MS")) * time.Millisecond,
			MaxDelay:   time.Duration(v.GetInt("ASSISTANT_MAX_DELAY_MS")) * time.Millisecond,
			Timeout:    time.Duration(v.GetInt("ASSISTANT_TIMEOUT_SECONDS")) * time.Second,
		},
		Log: LogConfig{
			Level:    v.GetString("LOG_LEVEL"),
			Encoding: v.GetString("LOG_ENCODING"),
		},
	}
}

// IsDevelopment reports whether the app runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// DSN returns the connection string for the configured server driver.
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, c.Port, c.Name)
	default:
		return "host=" + c.Host +
			" user=" + c.User +
			" password=" + c.Password +
			" dbname=" + c.Name +
			" port=" + c.Port +
			" sslmode=" + c.SSLMode +
			" TimeZone=" + c.Timezone
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDenominations(s string) []int64 {
	var out []int64
	for _, part := range splitList(s) {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil || n <= 0 {
			log.Printf("Warning: ignoring invalid cash denomination %q", part)
			continue
		}
		out = append(out, n)
	}
	return out
}
