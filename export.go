package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dlc-rules/config"
	"dlc-rules/logger"
	"dlc-rules/metrics"
	"dlc-rules/rule"
	"dlc-rules/sink"
	"dlc-rules/utils"

	"github.com/redis/go-redis/v9"
)

func runExportDB(args []string) error {
	fs := flag.NewFlagSet("export-db", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	dbFile := fs.String("dbfile", "", "SQLite 数据库文件（覆盖配置，默认 rule.db）")
	redisAddr := fs.String("redis", "", "写入 Redis 而不是 SQLite，host:port")
	cronExpr := fs.String("cron", "", "定时重新导出的 6 字段 cron 表达式")
	verbose := fs.Bool("v", false, "打印每条解析结果到标准输出")
	dryRun := fs.Bool("dry-run", false, "只在内存中导出并统计去重后的域名数，不写数据库")
	fs.Parse(args)

	cfg, log, err := setup(&common, func(cfg *config.Config) error {
		if *dbFile != "" {
			cfg.Output.DBFile = *dbFile
		}
		if *redisAddr != "" {
			host, port, err := splitHostPort(*redisAddr)
			if err != nil {
				return err
			}
			cfg.Redis.Server, cfg.Redis.Port = host, port
		}
		if *cronExpr != "" {
			cfg.Update.Cron = *cronExpr
		}
		return nil
	})
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() && !*dryRun {
		redisClient = newRedisClient(&cfg.Redis)
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Error("Redis 连接失败: %v", err)
			return err
		}
		log.Info("Redis 连接已建立: %s:%d/%d", cfg.Redis.Server, cfg.Redis.Port, cfg.Redis.Database)
	}

	var trace io.Writer
	if *verbose {
		trace = os.Stdout
	}

	collector := metrics.NewCollector()
	job := func() error {
		if *dryRun {
			return dryRunExport(cfg, log, collector, trace)
		}
		store, output, err := openStore(cfg, redisClient)
		if err != nil {
			return err
		}
		return export(cfg, log, collector, store, output, trace)
	}

	updater := rule.NewUpdater(cfg.Update.Cron, job, log)
	if err := updater.RunOnce(); err != nil {
		log.LogError("导出", err, nil)
		return err
	}
	if cfg.Update.Cron == "" {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := updater.Start(ctx); err != nil {
		log.Error("启动定时导出失败: %v", err)
		return err
	}
	log.Info("定时导出已启动: %s，按 Ctrl+C 停止", cfg.Update.Cron)

	<-ctx.Done()
	updater.Stop()
	log.Info("已停止")
	return nil
}

func runExportFlat(args []string) error {
	fs := flag.NewFlagSet("export-flat", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	outFile := fs.String("o", "", "输出文件（默认标准输出）")
	verbose := fs.Bool("v", false, "输出 debug 日志到标准错误")
	fs.Parse(args)

	cfg, log, err := setup(&common, func(cfg *config.Config) error {
		if *outFile != "" {
			cfg.Output.FlatFile = *outFile
		}
		if *verbose {
			cfg.Log.Level = "debug"
		}
		return nil
	})
	if err != nil {
		return err
	}

	if cfg.Output.FlatFile == "" {
		if err := export(cfg, log, metrics.NewCollector(), sink.NewFlat(os.Stdout), "stdout", nil); err != nil {
			log.LogError("导出", err, nil)
			return err
		}
		return nil
	}

	if err := exportFlatFile(cfg, log, cfg.Output.FlatFile); err != nil {
		log.LogError("导出", err, map[string]interface{}{"file": cfg.Output.FlatFile})
		return err
	}
	return nil
}

// exportFlatFile 导出到文件，文件关闭失败同样视为导出失败
func exportFlatFile(cfg *config.Config, log *logger.Logger, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("创建输出文件失败: %w", err)
	}

	if err := export(cfg, log, metrics.NewCollector(), sink.NewFlat(f), filename, nil); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("关闭输出文件失败: %w", err)
	}
	return nil
}

func newRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.Database,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout * 2,
		WriteTimeout: cfg.Timeout * 2,
		PoolTimeout:  cfg.Timeout * 3,
	})
}

// openStore 打开本次运行的键值输出端，配置了 Redis 时优先使用 Redis
func openStore(cfg *config.Config, client *redis.Client) (sink.Store, string, error) {
	if client != nil {
		store := sink.NewRedis(client, cfg.Redis.Prefix)
		if cfg.Redis.Clear {
			if err := store.Clear(); err != nil {
				return nil, "", fmt.Errorf("清空 Redis 失败: %w", err)
			}
		}
		return store, "redis://" + client.Options().Addr, nil
	}

	store, err := sink.NewSQLite(cfg.Output.DBFile)
	if err != nil {
		return nil, "", err
	}
	return store, cfg.Output.DBFile, nil
}

// dryRunExport 导出到内存，只报告去重后的域名数
func dryRunExport(cfg *config.Config, log *logger.Logger, collector *metrics.Collector, trace io.Writer) error {
	mem := sink.NewMemory()
	if err := export(cfg, log, collector, mem, "memory", trace); err != nil {
		return err
	}
	log.Info("试运行完成，去重后共 %d 个域名", mem.Len())
	return nil
}

// export 加载全部规则写入 store，成功后提交
func export(cfg *config.Config, log *logger.Logger, collector *metrics.Collector, store sink.Store, output string, trace io.Writer) error {
	defer store.Close()

	counter := &countingSink{next: store, counts: make(map[rule.Action]int)}
	observers := rule.MultiObserver{logObserver{log: log}, collector}
	if trace != nil {
		observers = append(observers, traceObserver{w: trace})
	}

	if !utils.FileExists(cfg.Data.Dir) {
		log.Warn("数据目录 %s 不存在，可先运行 fetch", cfg.Data.Dir)
	}
	loader := rule.NewLoader(os.DirFS(cfg.Data.Dir), rule.DefaultTable(), counter, rule.WithObserver(observers))

	start := time.Now()
	if err := loader.Run(); err != nil {
		return err
	}
	if err := store.Commit(); err != nil {
		return err
	}

	collector.MarkSuccess(time.Now())
	if err := collector.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		log.Warn("写入指标文件失败: %v", err)
	}

	counts := make(map[string]int, len(counter.counts))
	for action, n := range counter.counts {
		counts[string(action)] = n
	}
	log.LogSummary(output, counter.total, counts, time.Since(start).Milliseconds())
	return nil
}

// countingSink 统计各动作的记录数
type countingSink struct {
	next   rule.Sink
	counts map[rule.Action]int
	total  int
}

func (c *countingSink) Write(rec rule.Record) error {
	if err := c.next.Write(rec); err != nil {
		return err
	}
	c.counts[rec.Action]++
	c.total++
	return nil
}

// logObserver 把加载过程写入 debug 日志
type logObserver struct {
	log *logger.Logger
}

func (o logObserver) FileLoaded(name, defaultTag string, depth int) {
	o.log.LogFile(name, defaultTag, depth)
}

func (o logObserver) LineSkipped(file string, line int, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	o.log.LogSkip(file, line, text)
}

func (o logObserver) EntryResolved(file string, line int, entry rule.Entry, action rule.Action) {
	o.log.LogEntry(file, line, entry.Command, entry.Target, entry.Tag, string(action))
}

// traceObserver 按 "command target tag action" 逐行输出
type traceObserver struct {
	w io.Writer
}

func (traceObserver) FileLoaded(string, string, int) {}

func (traceObserver) LineSkipped(string, int, string) {}

func (o traceObserver) EntryResolved(_ string, _ int, entry rule.Entry, action rule.Action) {
	fmt.Fprintln(o.w, entry.Command, entry.Target, entry.Tag, action)
}
