package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds connection settings for the persistence sink.
// Host, port, user and password are required for the postgres driver;
// Validate enforces that because the sqlite driver needs none of them.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"DB_DRIVER"             env-default:"postgres"`
	Host            string        `yaml:"host"               env:"DB_HOST"`
	Port            int           `yaml:"port"               env:"DB_PORT"`
	User            string        `yaml:"user"               env:"DB_USER"`
	Password        string        `yaml:"password"           env:"DB_PASSWORD"`
	Name            string        `yaml:"name"               env:"DB_NAME"               env-default:"trivia"`
	SSLMode         string        `yaml:"sslmode"            env:"DB_SSLMODE"            env-default:"disable"`
	SQLitePath      string        `yaml:"sqlite_path"        env:"DB_SQLITE_PATH"        env-default:"trivia.db"`
	MaxConns        int32         `yaml:"max_conns"          env:"DB_MAX_CONNS"          env-default:"1"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"    env:"DB_CONNECT_TIMEOUT"    env-default:"10s"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DB_MAX_CONN_LIFETIME"  env-default:"1h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// DSN builds a PostgreSQL connection URL from the individual settings.
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(c.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Redacted describes the connection target without credentials, for logs.
func (c DatabaseConfig) Redacted() string {
	if c.Driver == DriverSQLite {
		return fmt.Sprintf("sqlite:%s", c.SQLitePath)
	}
	return fmt.Sprintf("%s@%s/%s", c.User, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Name)
}
