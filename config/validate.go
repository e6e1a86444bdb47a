package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CronParser 6 字段（含秒）cron 解析器，与定时导出使用的格式一致
var CronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Validate 验证配置
func Validate(cfg *Config) error {
	// 结构体标签校验
	if err := validate.Struct(cfg); err != nil {
		return convertValidatorErrors(err)
	}

	// 验证 Output
	if err := validateOutput(&cfg.Output, &cfg.Redis); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	// 验证 Redis
	if err := validateRedis(&cfg.Redis); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	// 验证 Update
	if err := validateUpdate(&cfg.Update); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	return nil
}

func convertValidatorErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s 不满足 %s=%s，当前为: %v", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s 不满足 %s，当前为: %v", field, fe.Tag(), fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func validateOutput(out *OutputConfig, redis *RedisConfig) error {
	if out.DBFile == "" && !redis.Enabled() {
		return fmt.Errorf("db_file 与 redis 至少配置一个")
	}
	return nil
}

func validateRedis(cfg *RedisConfig) error {
	if !cfg.Enabled() {
		return nil
	}
	if cfg.Port == 0 {
		return fmt.Errorf("配置 server 时必须配置 port")
	}
	if cfg.Prefix == "" && cfg.Clear {
		return fmt.Errorf("prefix 为空时不允许 clear，会删除整个库")
	}
	return nil
}

func validateUpdate(cfg *UpdateConfig) error {
	if cfg.Cron == "" {
		return nil
	}
	if _, err := CronParser.Parse(cfg.Cron); err != nil {
		return fmt.Errorf("cron 表达式无效: %w", err)
	}
	return nil
}
