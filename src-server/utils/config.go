package utils

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	port     string
	dbPath   string
	hostname string

	location  *time.Location
	pruneCron string
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		dbPath: func() string {
			dbPath := os.Getenv("DB_PATH")
			if dbPath == "" {
				dbPath = "./sqlite.db"
			}
			slog.Debug("env", "DB_PATH", dbPath)
			return dbPath
		}(),

		hostname: func() string {
			hostname := os.Getenv("HOSTNAME")
			if hostname == "" {
				slog.Warn("HOSTNAME is not set, using localhost")
				hostname = "localhost"
			}
			slog.Debug("env", "HOSTNAME", hostname)
			return hostname
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),

		pruneCron: func() string {
			pruneCron := os.Getenv("PRUNE_CRON")
			if pruneCron == "" {
				pruneCron = "@hourly"
			}
			slog.Debug("env", "PRUNE_CRON", pruneCron)
			return pruneCron
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DB_PATH env, default to ./sqlite.db
func (c *Config) GetDBPath() string {
	return c.dbPath
}

// Get HOSTNAME env, default to localhost
func (c *Config) GetHostname() string {
	return c.hostname
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get PRUNE_CRON env, default to @hourly
func (c *Config) GetPruneCron() string {
	return c.pruneCron
}
