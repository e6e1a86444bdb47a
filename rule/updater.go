package rule

import (
	"context"
	"fmt"

	"dlc-rules/logger"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"
)

// Updater 定时重新导出
type Updater struct {
	job      func() error
	cron     *cron.Cron
	cronExpr string
	group    singleflight.Group
	logger   *logger.Logger
}

// NewUpdater 创建新的更新器
func NewUpdater(cronExpr string, job func() error, log *logger.Logger) *Updater {
	return &Updater{
		job:      job,
		cron:     cron.New(cron.WithSeconds()), // 支持秒字段 (6 个字段格式)
		cronExpr: cronExpr,
		logger:   log,
	}
}

// RunOnce 执行一次导出，并发触发时共享同一次执行
func (u *Updater) RunOnce() error {
	_, err, shared := u.group.Do("export", func() (interface{}, error) {
		return nil, u.job()
	})
	if shared {
		u.logger.Debug("导出已在进行中，复用本次结果")
	}
	return err
}

// Start 启动定时导出
func (u *Updater) Start(ctx context.Context) error {
	if u.cronExpr == "" {
		return nil // 未配置更新，跳过
	}

	_, err := u.cron.AddFunc(u.cronExpr, func() {
		if err := u.RunOnce(); err != nil {
			u.logger.Error("定时导出失败: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("添加定时任务失败: %w", err)
	}

	u.cron.Start()

	go func() {
		<-ctx.Done()
		u.Stop()
	}()

	return nil
}

// Stop 停止定时导出，等待正在执行的任务结束
func (u *Updater) Stop() {
	if u.cron != nil {
		<-u.cron.Stop().Done()
	}
}
