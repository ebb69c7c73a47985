// Package config 加载 colnames 配置
//
// 优先级从低到高：默认值、配置文件、COLNAMES_* 环境变量、命令行参数。
package config

import (
	"errors"
	"fmt"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tragoedia0722/colnames/pkg/colname"
)

const (
	// AppName 应用名称，同时作为环境变量前缀
	AppName = "colnames"
	// ConfigFileName 配置文件名（不含扩展名）
	ConfigFileName = "config"

	KeyMaxBytes = "max_bytes_per_column_name"
	KeyStore    = "store"
	KeyLogLevel = "log_level"

	DefaultStore    = "~/.colnames"
	DefaultLogLevel = "info"
)

// ErrInvalidConfig 所有校验错误都包装此错误
var ErrInvalidConfig = errors.New("invalid configuration")

// FlagKeys 命令行参数名到配置键的映射
var FlagKeys = map[string]string{
	"max-bytes": KeyMaxBytes,
	"store":     KeyStore,
	"log-level": KeyLogLevel,
}

// Config 应用配置
type Config struct {
	MaxBytesPerColumnName int    `mapstructure:"max_bytes_per_column_name"`
	Store                 string `mapstructure:"store"`
	LogLevel              string `mapstructure:"log_level"`

	// File 实际读取的配置文件，可能为空
	File string `mapstructure:"-"`
}

// Load 读取配置
//
// path 指定配置文件；为空时在 $HOME/.colnames 和当前目录查找
// config.{yaml,toml,json}，找不到不算错误。flags 可以为 nil。
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyMaxBytes, colname.DefaultMaxBytesPerColumnName)
	v.SetDefault(KeyStore, DefaultStore)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath("$HOME/.colnames")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验所有字段
func (c *Config) Validate() error {
	if _, err := c.Settings(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(c.Store) == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, KeyStore)
	}
	if _, err := logging.LevelFromString(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %s %q: %w", ErrInvalidConfig, KeyLogLevel, c.LogLevel, err)
	}
	return nil
}

// Settings 返回 c 对应的列名配置
func (c *Config) Settings() (colname.Settings, error) {
	return colname.NewSettings(c.MaxBytesPerColumnName)
}

// ApplyLogLevel 设置所有 colnames 日志器的级别
func (c *Config) ApplyLogLevel() error {
	return logging.SetLogLevelRegex("^"+AppName+"/", c.LogLevel)
}
