package utils_test

import (
	"testing"
	"time"

	"nostrcal/src-server/utils"
)

func TestConfig(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DB_PATH", "/tmp/nostrcal-test.db")
	t.Setenv("HOSTNAME", "cal.example.com")
	t.Setenv("TIMEZONE", "Europe/Berlin")
	t.Setenv("PRUNE_CRON", "@daily")

	config := utils.NewConfig()
	if config.GetPort() != "9999" {
		t.Error("wrong port", config.GetPort())
	}
	if config.GetDBPath() != "/tmp/nostrcal-test.db" {
		t.Error("wrong db path", config.GetDBPath())
	}
	if config.GetHostname() != "cal.example.com" {
		t.Error("wrong hostname", config.GetHostname())
	}
	if config.GetLocation().String() != "Europe/Berlin" {
		t.Error("wrong location", config.GetLocation())
	}
	if config.GetPruneCron() != "@daily" {
		t.Error("wrong prune cron", config.GetPruneCron())
	}
}

func TestConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("HOSTNAME", "")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("PRUNE_CRON", "")

	config := utils.NewConfig()
	if config.GetPort() != "8080" {
		t.Error("port should default to 8080", config.GetPort())
	}
	if config.GetDBPath() != "./sqlite.db" {
		t.Error("db path should default to ./sqlite.db", config.GetDBPath())
	}
	if config.GetHostname() != "localhost" {
		t.Error("hostname should default to localhost", config.GetHostname())
	}
	if config.GetLocation() != time.UTC {
		t.Error("UTC should map to time.UTC", config.GetLocation())
	}
	if config.GetPruneCron() != "@hourly" {
		t.Error("prune cron should default to @hourly", config.GetPruneCron())
	}
}
