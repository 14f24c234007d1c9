package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config holds every runtime setting. It is built once in main and passed
// down by injection; nothing reads the environment after Load returns.
type Config struct {
	Port           string
	GinMode        string
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	JWTSecret      string
	SessionMinutes int
	SweepInterval  time.Duration
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	sessionMinutes := 120
	if v, err := strconv.Atoi(getenv("SESSION_DURATION_MINUTES", "120")); err == nil && v > 0 {
		sessionMinutes = v
	}

	sweep := 5 * time.Minute
	if v, err := time.ParseDuration(getenv("SESSION_SWEEP_INTERVAL", "5m")); err == nil && v > 0 {
		sweep = v
	}

	return Config{
		Port:           getenv("PORT", "8080"),
		GinMode:        getenv("GIN_MODE", "debug"),
		DBUser:         getenv("DB_USER", "root"),
		DBPassword:     getenv("DB_PASSWORD", ""),
		DBHost:         getenv("DB_HOST", "127.0.0.1"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBName:         getenv("DB_NAME", "restopos"),
		JWTSecret:      getenv("JWT_SECRET", ""),
		SessionMinutes: sessionMinutes,
		SweepInterval:  sweep,
	}
}

// DSN builds the MySQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// InitDB opens the MySQL connection described by the config.
func InitDB(c Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(c.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
