package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger 日志记录器
type Logger struct {
	log   *logrus.Logger
	level string
}

// NewLogger 创建日志记录器，默认输出到 stderr
func NewLogger(level, format string) *Logger {
	log := logrus.New()

	// 设置日志级别
	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	// 设置格式
	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	return &Logger{
		log:   log,
		level: level,
	}
}

// SetOutput 设置输出位置
func (l *Logger) SetOutput(w io.Writer) {
	l.log.SetOutput(w)
}

// Level 返回配置的级别
func (l *Logger) Level() string {
	return l.level
}

// Info 记录 info 日志
func (l *Logger) Info(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

// Debug 记录 debug 日志
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

// Warn 记录 warn 日志
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

// Error 记录 error 日志
func (l *Logger) Error(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

// LogFile 记录开始读取规则文件（DEBUG 级别）
func (l *Logger) LogFile(file, defaultTag string, depth int) {
	l.log.WithFields(logrus.Fields{
		"file":        file,
		"default_tag": defaultTag,
		"depth":       depth,
	}).Debug("[读取规则文件]")
}

// LogSkip 记录跳过的非空行（DEBUG 级别）
func (l *Logger) LogSkip(file string, line int, text string) {
	l.log.WithFields(logrus.Fields{
		"file": file,
		"line": line,
		"text": text,
	}).Debug("[跳过]")
}

// LogEntry 记录解析出的规则（DEBUG 级别）
func (l *Logger) LogEntry(file string, line int, command, target, tag, action string) {
	l.log.WithFields(logrus.Fields{
		"file":    file,
		"line":    line,
		"command": command,
		"target":  target,
		"tag":     tag,
		"action":  action,
	}).Debug("[规则]")
}

// LogSummary 记录导出结果（INFO 级别）
func (l *Logger) LogSummary(output string, records int, counts map[string]int, elapsedMs int64) {
	fields := logrus.Fields{
		"output":     output,
		"records":    records,
		"elapsed_ms": elapsedMs,
	}
	for action, n := range counts {
		fields[action] = n
	}
	l.log.WithFields(fields).Info("导出完成")
}

// LogError 记录错误（ERROR 级别）
func (l *Logger) LogError(context string, err error, additionalInfo map[string]interface{}) {
	fields := logrus.Fields{
		"context": context,
		"error":   err.Error(),
	}
	for k, v := range additionalInfo {
		fields[k] = v
	}
	l.log.WithFields(fields).Error("发生错误")
}
