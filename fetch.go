package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"dlc-rules/config"
	"dlc-rules/outbound"
	"dlc-rules/utils"
)

func runFetch(args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	url := fs.String("url", "", "源码包地址（覆盖配置）")
	socks5 := fs.String("socks5", "", "经 SOCKS5 代理下载，host:port")
	timeout := fs.Duration("timeout", 0, "下载超时（覆盖配置，默认 5m）")
	fs.Parse(args)

	cfg, log, err := setup(&common, func(cfg *config.Config) error {
		if *url != "" {
			cfg.Data.ArchiveURL = *url
		}
		if *socks5 != "" {
			cfg.Data.SOCKS5 = *socks5
		}
		if *timeout > 0 {
			cfg.Data.Timeout = *timeout
		}
		if cfg.Data.ArchiveURL == "" {
			cfg.Data.ArchiveURL = config.DefaultArchiveURL
		}
		return nil
	})
	if err != nil {
		return err
	}

	ob, err := outbound.New(cfg.Data.SOCKS5, cfg.Data.Username, cfg.Data.Password)
	if err != nil {
		log.Error("创建出站失败: %v", err)
		return err
	}

	tmpDir, err := os.MkdirTemp("", "dlc-rules-")
	if err != nil {
		log.Error("创建临时目录失败: %v", err)
		return err
	}
	defer os.RemoveAll(tmpDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	archive := filepath.Join(tmpDir, "dlc.tar.gz")
	log.Info("下载 %s (出站: %v)", cfg.Data.ArchiveURL, ob)
	n, err := utils.DownloadFile(ctx, utils.NewHTTPClient(ob, cfg.Data.Timeout), cfg.Data.ArchiveURL, archive)
	if err != nil {
		log.Error("下载失败: %v", err)
		return err
	}
	log.Debug("已下载 %d 字节", n)

	count, err := utils.ExtractData(archive, cfg.Data.Dir)
	if err != nil {
		log.Error("解压失败: %v", err)
		return err
	}
	log.Info("已解出 %d 个规则文件到 %s", count, cfg.Data.Dir)
	return nil
}
