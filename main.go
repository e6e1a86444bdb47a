package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"

	"dlc-rules/config"
	"dlc-rules/logger"
)

const usage = `用法: dlc-rules <命令> [参数]

命令:
  export-db    导出到 SQLite（或 Redis）键值库
  export-flat  导出为 action<TAB>domain 平铺文件
  fetch        下载 domain-list-community 并解出 data 目录
  match        用导出的规则匹配域名

使用 dlc-rules <命令> -h 查看参数
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "export-db":
		err = runExportDB(os.Args[2:])
	case "export-flat":
		err = runExportFlat(os.Args[2:])
	case "fetch":
		err = runFetch(os.Args[2:])
	case "match":
		err = runMatch(os.Args[2:])
	case "-h", "-help", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "未知命令: %s\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		os.Exit(1)
	}
}

// commonFlags 各命令共用的参数
type commonFlags struct {
	configFile string
	dataDir    string
	logLevel   string
}

// apply 把公共参数写入配置，未设置的参数不覆盖
func (c *commonFlags) apply(cfg *config.Config) error {
	if c.dataDir != "" {
		cfg.Data.Dir = c.dataDir
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	return nil
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configFile, "c", "", "配置文件路径（可选）")
	fs.StringVar(&c.dataDir, "datadir", "", "规则数据目录（覆盖配置，默认 data）")
	fs.StringVar(&c.logLevel, "log-level", "", "日志级别 debug/info/warn/error（覆盖配置）")
}

// setup 加载配置并应用命令行覆盖，apply 在公共参数之后、验证之前调用
func setup(c *commonFlags, apply config.Override) (*config.Config, *logger.Logger, error) {
	// 先创建一个临时 logger 用于启动阶段（配置还没加载）
	tmpLogger := logger.NewLogger("info", "text")

	cfg, err := config.LoadAndValidate(c.configFile, c.apply, apply)
	if err != nil {
		tmpLogger.Error("%v", err)
		return nil, nil, err
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
	log.Debug("数据目录: %s", cfg.Data.Dir)
	return cfg, log, nil
}

// splitHostPort 解析 host:port
func splitHostPort(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("地址格式无效 %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("端口无效 %q: %w", addr, err)
	}
	return host, port, nil
}
