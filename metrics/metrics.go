// Package metrics 统计单次导出并写出 node_exporter textfile 格式。
package metrics

import (
	"time"

	"dlc-rules/rule"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector 导出指标，实现 rule.Observer
type Collector struct {
	registry    *prometheus.Registry
	records     *prometheus.CounterVec
	files       prometheus.Counter
	skipped     prometheus.Counter
	lastSuccess prometheus.Gauge
}

// NewCollector 创建指标收集器，使用独立的 registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dlc_rules_records_total",
				Help: "Resolved rule entries by action and command.",
			},
			[]string{"action", "command"},
		),
		files: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dlc_rules_files_loaded_total",
			Help: "Rule files read, includes counted once per visit.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dlc_rules_lines_skipped_total",
			Help: "Lines that did not match the rule grammar.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dlc_rules_last_success_timestamp_seconds",
			Help: "Unix time of the last successful export.",
		}),
	}
	c.registry.MustRegister(c.records, c.files, c.skipped, c.lastSuccess)
	return c
}

func (c *Collector) FileLoaded(string, string, int) {
	c.files.Inc()
}

func (c *Collector) LineSkipped(string, int, string) {
	c.skipped.Inc()
}

func (c *Collector) EntryResolved(_ string, _ int, entry rule.Entry, action rule.Action) {
	c.records.WithLabelValues(string(action), commandLabel(entry.Command)).Inc()
}

// commandLabel 限定 command 标签取值，keyword、regexp 等归为 other
func commandLabel(command string) string {
	switch command {
	case rule.CommandDomain, rule.CommandFull, rule.CommandInclude:
		return command
	default:
		return "other"
	}
}

// MarkSuccess 记录成功时间
func (c *Collector) MarkSuccess(t time.Time) {
	c.lastSuccess.Set(float64(t.Unix()))
}

// Registry 返回内部 registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile 写出 textfile，filename 为空时跳过
func (c *Collector) WriteTextfile(filename string) error {
	if filename == "" {
		return nil
	}
	return prometheus.WriteToTextfile(filename, c.registry)
}
