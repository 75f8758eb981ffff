// config/config.go - 配置管理文件
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

var (
	Conf *AppConfig
	once sync.Once
	k    *koanf.Koanf
)

// Load 加载配置文件
// 优先级: 环境变量 > config.yaml > Defaults()
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// 首先加载 .env 文件到环境变量
		if envErr := godotenv.Load(".env"); envErr != nil {
			log.Debug().Err(envErr).Msg("未加载 .env 文件")
		}

		k = koanf.New(".")
		Conf, err = load(k, configPath)
	})

	return err
}

// MustLoad 加载配置，失败则退出
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		log.Fatal().Err(err).Msg("配置加载失败")
	}
}

// Reload 重新加载配置
func Reload(configPath string) error {
	if k == nil {
		return fmt.Errorf("配置未初始化")
	}

	fresh := koanf.New(".")
	conf, err := load(fresh, configPath)
	if err != nil {
		return err
	}

	k = fresh
	Conf = conf
	return nil
}

func load(k *koanf.Koanf, configPath string) (*AppConfig, error) {
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
	}

	// 加载环境变量（会覆盖配置文件）DATABASE_HOST -> database.host
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.Replace(strings.ToLower(s), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("加载环境变量失败: %w", err)
	}

	conf := Defaults()
	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 转换时间单位
	conf.Server.ReadTimeout = conf.Server.ReadTimeout * time.Second
	conf.Server.WriteTimeout = conf.Server.WriteTimeout * time.Second

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// GetString 获取字符串配置
func GetString(key string) string {
	if k == nil {
		log.Fatal().Msg("配置未初始化")
	}
	return k.String(key)
}

// GetInt 获取整数配置
func GetInt(key string) int {
	if k == nil {
		log.Fatal().Msg("配置未初始化")
	}
	return k.Int(key)
}

// GetBool 获取布尔配置
func GetBool(key string) bool {
	if k == nil {
		log.Fatal().Msg("配置未初始化")
	}
	return k.Bool(key)
}
