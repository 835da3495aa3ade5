package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// LoadDB reads DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD and
// DB_SSLMODE from the process environment. When envFile is set its values
// take precedence; the process environment itself is left untouched.
func LoadDB(envFile string) (DBConfig, error) {
	file := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		if err != nil {
			return DBConfig{}, fmt.Errorf("read env file: %w", err)
		}
		file = m
	}
	get := func(key, def string) string {
		if v, ok := file[key]; ok && v != "" {
			return v
		}
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}
	port, err := strconv.Atoi(get("DB_PORT", "5432"))
	if err != nil {
		return DBConfig{}, fmt.Errorf("DB_PORT: %w", err)
	}
	return DBConfig{
		Host:     get("DB_HOST", "localhost"),
		Port:     port,
		Name:     get("DB_NAME", "security_scanner"),
		User:     get("DB_USER", "scanner"),
		Password: get("DB_PASSWORD", ""),
		SSLMode:  get("DB_SSLMODE", "disable"),
	}, nil
}

// DSN renders the settings as a lib/pq connection URL.
func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
