package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	URLExpiry  time.Duration
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	ReplyTo  string
}

// Protection holds the limits applied at the authentication boundary.
// TrustedProxies lists the IPs or CIDRs whose forwarding headers are believed.
type Protection struct {
	DryRun            bool
	RestrictiveMax    int
	RestrictiveWindow time.Duration
	LaxMax            int
	LaxWindow         time.Duration
	CheckMX           bool
	TrustedProxies    []string
}

type Config struct {
	ServerPort           int
	AppURL               string
	DB                   DB
	MinIO                MinIO
	SMTP                 SMTP
	Protection           Protection
	JWTSecretKey         string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	MaxUploadSize        int64
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "forum"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "forum-images"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		URLExpiry:  parseDuration(getEnv("MINIO_URL_EXPIRY", "168h"), 168*time.Hour),
	}
}

// LoadSMTP defaults to a local Mailpit instance.
func LoadSMTP() SMTP {
	return SMTP{
		Host:     getEnv("SMTP_HOST", "localhost"),
		Port:     getEnvAsInt("SMTP_PORT", 1025),
		User:     getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "noreply@forum.local"),
		ReplyTo:  getEnv("SMTP_REPLY_TO", ""),
	}
}

func LoadProtection() Protection {
	return Protection{
		DryRun:            getEnvBool("PROTECTION_DRY_RUN", getEnv("APP_ENV", "development") != "production"),
		RestrictiveMax:    getEnvAsInt("PROTECTION_RESTRICTIVE_MAX", 10),
		RestrictiveWindow: parseDuration(getEnv("PROTECTION_RESTRICTIVE_WINDOW", "10m"), 10*time.Minute),
		LaxMax:            getEnvAsInt("PROTECTION_LAX_MAX", 60),
		LaxWindow:         parseDuration(getEnv("PROTECTION_LAX_WINDOW", "1m"), time.Minute),
		CheckMX:           getEnvBool("PROTECTION_CHECK_MX", true),
		TrustedProxies:    getEnvList("PROTECTION_TRUSTED_PROXIES"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Attention : fichier .env introuvable, utilisation des variables d'environnement")
	}

	return &Config{
		ServerPort:           getEnvAsInt("SERVER_PORT", 8080),
		AppURL:               getEnv("APP_URL", "http://localhost:3000"),
		DB:                   LoadDB(),
		MinIO:                LoadMinIO(),
		SMTP:                 LoadSMTP(),
		Protection:           LoadProtection(),
		JWTSecretKey:         getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration:  parseDuration(getEnv("ACCESS_TOKEN_DURATION", "2h"), 2*time.Hour),
		RefreshTokenDuration: parseDuration(getEnv("REFRESH_TOKEN_DURATION", "168h"), 168*time.Hour),
		MaxUploadSize:        parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}
