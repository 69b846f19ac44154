package config

import (
	"os"
	"strings"
	"time"
)

// Product source kinds
const (
	SourceHTTP  = "http"
	SourceDrive = "drive"
)

const defaultProductsURL = "https://fakestoreapi.com/products"

// Config holds the application settings read from the environment
type Config struct {
	Env     string
	Port    string
	BaseURL string // Base URL the service is reachable at (used by the PDF renderer)

	ProductsSource      string // "http" or "drive"
	ProductsURL         string
	DriveProductsFileID string
	CredentialsPath     string // GOOGLE_APPLICATION_CREDENTIALS
	FetchTimeout        time.Duration

	// DatabaseURL is empty when no database is configured; the cart is then kept in memory.
	DatabaseURL string

	ChromePath    string
	ImageCacheDir string
}

// Load reads the configuration from environment variables
func Load() *Config {
	port := strings.TrimPrefix(getenvDefault("PORT", "8080"), ":")

	cfg := &Config{
		Env:                 getenvDefault("ENV", "development"),
		Port:                port,
		BaseURL:             getenvDefault("BASE_URL", "http://localhost:"+port),
		ProductsSource:      strings.ToLower(getenvDefault("PRODUCTS_SOURCE", SourceHTTP)),
		ProductsURL:         getenvDefault("PRODUCTS_URL", defaultProductsURL),
		DriveProductsFileID: os.Getenv("DRIVE_PRODUCTS_FILE_ID"),
		CredentialsPath:     os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FetchTimeout:        getenvDuration("FETCH_TIMEOUT", 15*time.Second),
		DatabaseURL:         databaseURL(),
		ChromePath:          os.Getenv("CHROME_PATH"),
		ImageCacheDir:       getenvDefault("IMAGE_CACHE_DIR", "cache/images"),
	}
	return cfg
}

// IsProduction reports whether ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// databaseURL returns DATABASE_URL, or builds a connection string from DB_* variables.
// It returns "" when neither is set.
func databaseURL() string {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return ""
	}

	return "host=" + host +
		" port=" + getenvDefault("DB_PORT", "5432") +
		" user=" + user +
		" password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + dbname +
		" sslmode=" + getenvDefault("DB_SSLMODE", "disable")
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
