package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load 从文件加载配置，未出现的字段保留默认值
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return cfg, nil
}

// Override 在加载之后、验证之前修改配置，用于命令行参数覆盖
type Override func(cfg *Config) error

// LoadAndValidate 加载配置，依次应用 overrides 后验证，filename 为空时使用默认配置
func LoadAndValidate(filename string, overrides ...Override) (*Config, error) {
	cfg := Default()
	if filename != "" {
		var err error
		if cfg, err = Load(filename); err != nil {
			return nil, err
		}
	}

	for _, override := range overrides {
		if override == nil {
			continue
		}
		if err := override(cfg); err != nil {
			return nil, fmt.Errorf("参数无效: %w", err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return cfg, nil
}
