package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the admin API reads at startup. Values come from
// an optional config file with environment variables taking precedence.
type Config struct {
	Addr        string `mapstructure:"addr"`
	DatabaseURL string `mapstructure:"database_url"`
	RedisAddr   string `mapstructure:"redis_addr"`
	JWTSecret   string `mapstructure:"jwt_secret"`

	// DashboardCacheTTL bounds how stale the cached dashboard summary may
	// get before it is recomputed.
	DashboardCacheTTL time.Duration `mapstructure:"dashboard_cache_ttl"`

	// SalesReportFallback toggles the fall-back-to-all-time behavior of the
	// period sales report when a window has no fulfilled orders.
	SalesReportFallback bool `mapstructure:"sales_report_fallback"`

	AlertFrom        string `mapstructure:"alert_from"`
	AlertTo          string `mapstructure:"alert_to"`
	SMTPServer       string `mapstructure:"smtp_server"`
	SMTPPort         string `mapstructure:"smtp_port"`
	SMTPUser         string `mapstructure:"smtp_user"`
	SMTPPassword     string `mapstructure:"smtp_pass"`
	SMTPAuthDisabled bool   `mapstructure:"smtp_auth_disabled"`
}

// Load initializes and reads the configuration using Viper.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("addr", ":8080")
	v.SetDefault("dashboard_cache_ttl", 30*time.Second)
	v.SetDefault("sales_report_fallback", true)
	v.SetDefault("jwt_secret", "super-secret-key")

	v.AutomaticEnv()
	// env names match the config keys uppercased, e.g. DATABASE_URL
	for _, key := range []string{
		"addr", "database_url", "redis_addr", "jwt_secret",
		"dashboard_cache_ttl", "sales_report_fallback",
		"alert_from", "alert_to", "smtp_server", "smtp_port",
		"smtp_user", "smtp_pass", "smtp_auth_disabled",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		// a config file is optional, env-only setups are fine
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
