package config

import (
	"errors"
	"time"
)

// AppConfig 应用配置结构
type AppConfig struct {
	Server    ServerConfig    `koanf:"server"`
	GRPC      GRPCConfig      `koanf:"grpc"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Kafka     KafkaConfig     `koanf:"kafka"`
	Log       LogConfig       `koanf:"log"`
	JWT       JWTConfig       `koanf:"jwt"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Mode         string        `koanf:"mode"` // debug, release
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	FrontendURL  string        `koanf:"frontend_url"`
}

type GRPCConfig struct {
	Port int `koanf:"port"` // 0 表示不启动
}

type DatabaseConfig struct {
	Driver       string `koanf:"driver"`
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	SSLMode      bool   `koanf:"sslmode"`
	LogLevel     string `koanf:"log_level"` // 数据库日志级别
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
}

type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
	TagTTL   int    `koanf:"tag_ttl"` // 热门标签缓存秒数
}

type KafkaConfig struct {
	Brokers []string `koanf:"brokers"` // 为空时不发布事件
	Topic   string   `koanf:"topic"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, text
}

type JWTConfig struct {
	Secret     string `koanf:"secret"`
	ExpireTime int    `koanf:"expire_time"` // 小时
}

type TelemetryConfig struct {
	Endpoint    string `koanf:"endpoint"` // OTLP http 地址，为空时不导出
	ServiceName string `koanf:"service_name"`
}

// Defaults 默认配置
func Defaults() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8080,
			Mode:         "release",
			ReadTimeout:  10,
			WriteTimeout: 10,
			FrontendURL:  "http://localhost:5173",
		},
		Database: DatabaseConfig{
			Driver:   "postgres",
			LogLevel: "warn",
		},
		Redis: RedisConfig{
			TagTTL: 60,
		},
		Kafka: KafkaConfig{
			Topic: "conduit.events",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		JWT: JWTConfig{
			ExpireTime: 24 * 60,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "conduit",
		},
	}
}

// TokenTTL 令牌有效期
func (c JWTConfig) TokenTTL() time.Duration {
	return time.Duration(c.ExpireTime) * time.Hour
}

// Validate 校验必填项
func (c *AppConfig) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret 不能为空")
	}
	if c.JWT.ExpireTime <= 0 {
		return errors.New("jwt.expire_time 必须大于 0")
	}
	return nil
}
