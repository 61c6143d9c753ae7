// Package config lê a configuração da aplicação a partir de variáveis de ambiente.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Drivers de armazenamento suportados
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config agrupa toda a configuração do serviço
type Config struct {
	HTTPAddr      string
	GinMode       string
	StorageDriver string

	Database       Database
	AutoMigrate    bool
	MigrationsPath string

	JWTSecret     string
	JWTExpiration time.Duration
	AuthRequired  bool

	CORSAllowedOrigins []string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	IdempotencyTTL time.Duration

	KafkaBrokers    []string
	KafkaTopicSales string

	PrometheusEnabled bool

	TLSP12Path     string
	TLSP12Password string

	SaleMaxAttempts    int
	BarcodeMaxAttempts int
	Debug              bool
}

// Database contém as configurações para conexão com o PostgreSQL
type Database struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
}

// ConnectionString retorna DATABASE_URL ou uma URL montada a partir das variáveis DB_*.
// Em formato URL para servir tanto ao pgxpool quanto ao golang-migrate.
func (d Database) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// Load lê o ambiente aplicando os valores padrão
func Load() Config {
	return Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":5000"),
		GinMode:       getenv("GIN_MODE", "debug"),
		StorageDriver: strings.ToLower(getenv("STORAGE_DRIVER", DriverPostgres)),

		Database: Database{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getenv("DB_HOST", "localhost"),
			Port:            getint("DB_PORT", 5432),
			User:            getenv("DB_USER", "postgres"),
			Password:        getenv("DB_PASSWORD", "postgres"),
			Name:            getenv("DB_NAME", "pos_inventario"),
			SSLMode:         getenv("DB_SSL_MODE", "disable"),
			MaxConnections:  int32(getint("DB_MAX_CONNECTIONS", 10)),
			MinConnections:  int32(getint("DB_MIN_CONNECTIONS", 1)),
			MaxConnLifetime: time.Duration(getint("DB_MAX_LIFETIME", 3600)) * time.Second,
		},
		AutoMigrate:    getbool("AUTO_MIGRATE", false),
		MigrationsPath: getenv("MIGRATIONS_PATH", "migrations"),

		JWTSecret:     getenv("JWT_SECRET_KEY", "seu_segredo_super_secreto"),
		JWTExpiration: time.Duration(getint("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		AuthRequired:  getbool("AUTH_REQUIRED", false),

		CORSAllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "*")),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getint("REDIS_DB", 0),
		IdempotencyTTL: getduration("IDEMPOTENCY_TTL", 24*time.Hour),

		KafkaBrokers:    splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopicSales: getenv("KAFKA_TOPIC_SALES", "pos.sales"),

		PrometheusEnabled: getbool("PROMETHEUS_ENABLED", false),

		TLSP12Path:     os.Getenv("TLS_P12_PATH"),
		TLSP12Password: os.Getenv("TLS_P12_PASSWORD"),

		SaleMaxAttempts:    getint("SALE_MAX_ATTEMPTS", 3),
		BarcodeMaxAttempts: getint("BARCODE_MAX_ATTEMPTS", 1000),
		Debug:              getbool("DEBUG", false),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}

func getbool(k string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return b
}

func getduration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
