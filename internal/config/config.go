package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The signing secret is read once here and never
// mutated afterwards; every component that needs it receives a copy at
// wiring time.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // secret used to sign bearer tokens
	TokenTTLHours int    // bearer token time-to-live in hours
	BcryptCost    int    // bcrypt cost for password hashing

	// Image storage. Driver is "local" (uploads dir served by this process)
	// or "cloudinary" (external hosting); the Cloudinary credentials are
	// only required for the latter.
	StorageDriver       string
	UploadDir           string
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		JWTSecret:     must("JWT_SECRET"),
		TokenTTLHours: mustInt("TOKEN_TTL_HOURS"),
		BcryptCost:    mustInt("BCRYPT_COST"),
		StorageDriver: getenv("STORAGE_DRIVER", "local"),
		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
	}
	if cfg.StorageDriver == "cloudinary" {
		cfg.CloudinaryName = must("CLOUDINARY_CLOUD_NAME")
		cfg.CloudinaryAPIKey = must("CLOUDINARY_API_KEY")
		cfg.CloudinaryAPISecret = must("CLOUDINARY_API_SECRET")
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
