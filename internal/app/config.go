package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	storedb "github.com/yungbote/redmane-backend/internal/data/db"
	"github.com/yungbote/redmane-backend/internal/observability"
)

type Config struct {
	LogMode         string
	Environment     string
	HTTPAddr        string
	ShutdownTimeout time.Duration
	Store           storedb.Config
	CORSOrigins     []string
	MetricsEnabled  bool
	Otel            observability.OtelConfig
}

// LoadConfig reads configuration from the environment, optionally layered over
// the YAML file named by REDMANE_CONFIG.
func LoadConfig() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := strings.TrimSpace(v.GetString("redmane_config")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return configFrom(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_mode", "development")
	v.SetDefault("app_env", "local")
	v.SetDefault("http_addr", "localhost:8888")
	v.SetDefault("http_shutdown_timeout", "10s")
	v.SetDefault("store_driver", storedb.DriverSQLite)
	v.SetDefault("store_dsn", "data/data_redmane.db")
	v.SetDefault("store_slow_threshold", "200ms")
	v.SetDefault("cors_origins", "")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_exporter_otlp_insecure", false)
	v.SetDefault("otel_sampler_ratio", 0.1)
}

func configFrom(v *viper.Viper) (Config, error) {
	driver := strings.ToLower(strings.TrimSpace(v.GetString("store_driver")))
	if driver != storedb.DriverSQLite && driver != storedb.DriverPostgres {
		return Config{}, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", storedb.DriverSQLite, storedb.DriverPostgres, driver)
	}
	dsn := strings.TrimSpace(v.GetString("store_dsn"))
	if dsn == "" {
		return Config{}, fmt.Errorf("STORE_DSN is required")
	}
	env := strings.TrimSpace(v.GetString("app_env"))
	return Config{
		LogMode:         strings.TrimSpace(v.GetString("log_mode")),
		Environment:     env,
		HTTPAddr:        strings.TrimSpace(v.GetString("http_addr")),
		ShutdownTimeout: v.GetDuration("http_shutdown_timeout"),
		Store: storedb.Config{
			Driver:        driver,
			DSN:           dsn,
			SlowThreshold: v.GetDuration("store_slow_threshold"),
		},
		CORSOrigins:    splitList(v.GetString("cors_origins")),
		MetricsEnabled: v.GetBool("metrics_enabled"),
		Otel: observability.OtelConfig{
			Enabled:     v.GetBool("otel_enabled"),
			ServiceName: "redmane",
			Environment: env,
			Endpoint:    strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint")),
			Insecure:    v.GetBool("otel_exporter_otlp_insecure"),
			SampleRatio: v.GetFloat64("otel_sampler_ratio"),
		},
	}, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
