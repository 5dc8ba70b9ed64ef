package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the dashboard reads from the environment.
type Config struct {
	HTTPAddr string

	MongoURI     string
	MongoDB      string
	ProductsColl string
	OrdersColl   string

	CloudName    string
	CloudAPIKey  string
	CloudSecret  string
	UploadPreset string
	// CloudBaseURL is overridable so tests can point the client at a stub.
	CloudBaseURL string

	AdminUsername string
	AdminPassword string
	JWTSecret     string

	TokenTTL      time.Duration
	IdleTimeout   time.Duration
	IdleCheckTick time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		MongoURI:     getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:      getenv("MONGODB_DB", "jeans"),
		ProductsColl: getenv("MONGODB_COLLECTION_PRODUCTS", "products"),
		OrdersColl:   getenv("MONGODB_COLLECTION_ORDERS", "orders"),

		CloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudAPIKey:  os.Getenv("CLOUDINARY_API_KEY"),
		CloudSecret:  os.Getenv("CLOUDINARY_API_SECRET"),
		UploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		CloudBaseURL: getenv("CLOUDINARY_BASE_URL", "https://api.cloudinary.com/v1_1"),

		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin"),
		JWTSecret:     getenv("JWT_SECRET", "your-secret-key"),

		TokenTTL:      getduration("TOKEN_TTL", 24*time.Hour),
		IdleTimeout:   getduration("IDLE_TIMEOUT", 60*time.Second),
		IdleCheckTick: getduration("IDLE_CHECK_TICK", time.Second),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
