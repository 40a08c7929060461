package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment
// variables.
type Config struct {
	ServerPort      string
	DBDriver        string
	DBDSN           string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	BcryptCost      int
	CORSOrigins     []string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	v := viper.New()
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "blog.db")
	v.SetDefault("JWT_SECRET", "dev-secret-key")
	v.SetDefault("ACCESS_TOKEN_TTL", time.Hour)
	v.SetDefault("REFRESH_TOKEN_TTL", 30*24*time.Hour)
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	v.AutomaticEnv()

	return &Config{
		ServerPort:      v.GetString("SERVER_PORT"),
		DBDriver:        v.GetString("DB_DRIVER"),
		DBDSN:           v.GetString("DB_DSN"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		AccessTokenTTL:  v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL: v.GetDuration("REFRESH_TOKEN_TTL"),
		BcryptCost:      v.GetInt("BCRYPT_COST"),
		CORSOrigins:     splitOrigins(v.GetString("CORS_ORIGINS")),
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
