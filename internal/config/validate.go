package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return nil
}

func (d *DatabaseConfig) validate() error {
	d.Driver = strings.ToLower(strings.TrimSpace(d.Driver))

	switch d.Driver {
	case DriverPostgres:
		var missing []string
		if d.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if d.Port == 0 {
			missing = append(missing, "DB_PORT")
		}
		if d.User == "" {
			missing = append(missing, "DB_USER")
		}
		if d.Password == "" {
			missing = append(missing, "DB_PASSWORD")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
		}
		if d.Port < 1 || d.Port > 65535 {
			return fmt.Errorf("port must be between 1 and 65535 (got %d)", d.Port)
		}
		if d.Name == "" {
			return fmt.Errorf("name must not be empty")
		}
	case DriverSQLite:
		if d.SQLitePath == "" {
			return fmt.Errorf("missing required settings: DB_SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unknown driver %q (want %q or %q)", d.Driver, DriverPostgres, DriverSQLite)
	}

	if d.MaxConns < 1 {
		return fmt.Errorf("max_conns must be >= 1 (got %d)", d.MaxConns)
	}
	return nil
}
