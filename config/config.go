package config

import (
	"time"
)

// DefaultArchiveURL domain-list-community 源码包地址
const DefaultArchiveURL = "https://github.com/v2fly/domain-list-community/archive/refs/heads/master.tar.gz"

// Config 主配置结构
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Output  OutputConfig  `yaml:"output"`
	Redis   RedisConfig   `yaml:"redis"`
	Update  UpdateConfig  `yaml:"update"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// DataConfig 规则数据配置
type DataConfig struct {
	Dir        string        `yaml:"dir" validate:"required"`
	ArchiveURL string        `yaml:"archive_url" validate:"omitempty,url"`
	SOCKS5     string        `yaml:"socks5" validate:"omitempty,hostname_port"`
	Username   string        `yaml:"username"`
	Password   string        `yaml:"password"`
	Timeout    time.Duration `yaml:"timeout" validate:"gte=0"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	DBFile   string `yaml:"db_file"`
	FlatFile string `yaml:"flat_file"`
}

// RedisConfig Redis 配置，Server 为空时不使用 Redis
type RedisConfig struct {
	Server     string        `yaml:"server"`
	Port       int           `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Database   int           `yaml:"database" validate:"gte=0"`
	Password   string        `yaml:"password"`
	Prefix     string        `yaml:"prefix"`
	Clear      bool          `yaml:"clear"`
	MaxRetries int           `yaml:"max_retries" validate:"gte=0"`
	PoolSize   int           `yaml:"pool_size" validate:"gte=0"`
	Timeout    time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Enabled 是否配置了 Redis
func (r RedisConfig) Enabled() bool {
	return r.Server != ""
}

// UpdateConfig 定时导出配置
type UpdateConfig struct {
	Cron string `yaml:"cron"` // 6 字段 cron 表达式，为空表示只执行一次
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:        "data",
			ArchiveURL: DefaultArchiveURL,
			Timeout:    5 * time.Minute,
		},
		Output: OutputConfig{
			DBFile: "rule.db",
		},
		Redis: RedisConfig{
			Port:    6379,
			Prefix:  "rule:",
			Timeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
