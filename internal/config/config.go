package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppCfg struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogCfg struct {
	Level string `mapstructure:"level"`
}

type DatabaseCfg struct {
	DSN         string `mapstructure:"dsn"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	EnableTLS   bool   `mapstructure:"enable_tls"`
}

type RedisCfg struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"pool_size"`
	EnableTLS bool   `mapstructure:"enable_tls"`
}

type MQExchangeName struct {
	Notification string `mapstructure:"notification"`
	Activity     string `mapstructure:"activity"`
}

type MQRoutingKey struct {
	NotificationCreated string `mapstructure:"notification_created"`
	ActivityRecorded    string `mapstructure:"activity_recorded"`
}

type MQCfg struct {
	URL          string         `mapstructure:"url"`
	EnableTLS    bool           `mapstructure:"enable_tls"`
	ExchangeName MQExchangeName `mapstructure:"exchange_name"`
	RoutingKey   MQRoutingKey   `mapstructure:"routing_key"`
}

// PoseCfg configures the external pose-inference service.
type PoseCfg struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// SessionCfg holds coordinator tuning knobs. ReaperInterval <= 0 or
// IdleTimeout <= 0 disables the abandoned-session reaper.
type SessionCfg struct {
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	ReaperInterval time.Duration `mapstructure:"reaper_interval"`
}

type TelemetryCfg struct {
	Enabled      bool    `mapstructure:"enabled"`
	OtlpEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

type Config struct {
	App       AppCfg       `mapstructure:"app"`
	Log       LogCfg       `mapstructure:"log"`
	Database  DatabaseCfg  `mapstructure:"database"`
	Redis     RedisCfg     `mapstructure:"redis"`
	RabbitMQ  MQCfg        `mapstructure:"rabbitmq"`
	Pose      PoseCfg      `mapstructure:"pose"`
	Session   SessionCfg   `mapstructure:"session"`
	Telemetry TelemetryCfg `mapstructure:"telemetry"`
}

// Load reads config.yaml from the working directory (or CONFIG_PATH) and
// applies REHABLINK_-prefixed environment overrides.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if p := v.GetString("config_path"); p != "" {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("REHABLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env + defaults are enough to boot.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "rehablink")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)

	v.SetDefault("log.level", "info")

	v.SetDefault("database.max_open", 25)
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("rabbitmq.exchange_name.notification", "rehablink.notification")
	v.SetDefault("rabbitmq.exchange_name.activity", "rehablink.activity")
	v.SetDefault("rabbitmq.routing_key.notification_created", "notification.created")
	v.SetDefault("rabbitmq.routing_key.activity_recorded", "activity.recorded")

	v.SetDefault("pose.timeout", 10*time.Second)
	v.SetDefault("pose.max_retries", 1)

	v.SetDefault("session.idle_timeout", 30*time.Minute)
	v.SetDefault("session.reaper_interval", 5*time.Minute)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.sample_ratio", 1.0)
}
