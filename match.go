package main

import (
	"flag"
	"fmt"
	"os"

	"dlc-rules/router"
	"dlc-rules/rule"
	"dlc-rules/sink"
)

func runMatch(args []string) error {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	dbFile := fs.String("db", "", "从 SQLite 读取规则（默认使用配置中的 db_file）")
	flatFile := fs.String("flat", "", "从平铺文件读取规则，优先于 -db")
	defaultAction := fs.String("default", string(rule.ActionDirect), "未命中时的动作")
	fs.Parse(args)

	cfg, log, err := setup(&common, nil)
	if err != nil {
		return err
	}

	fallback, ok := rule.ParseAction(*defaultAction)
	if !ok {
		err := fmt.Errorf("未知动作: %s", *defaultAction)
		log.Error("%v", err)
		return err
	}

	var records []rule.Record
	switch {
	case *flatFile != "":
		f, err := os.Open(*flatFile)
		if err != nil {
			log.Error("打开规则文件失败: %v", err)
			return err
		}
		records, err = sink.ReadFlat(f)
		f.Close()
		if err != nil {
			log.Error("读取规则文件失败: %v", err)
			return err
		}
	default:
		path := *dbFile
		if path == "" {
			path = cfg.Output.DBFile
		}
		if records, err = sink.ReadSQLite(path); err != nil {
			log.Error("读取数据库失败: %v", err)
			return err
		}
	}

	m := router.NewMatcher(fallback)
	m.AddRecords(records)
	log.Debug("已加载 %d 条规则", m.Len())

	for _, domain := range fs.Args() {
		action, matched := m.Match(domain)
		log.Debug("%s 命中规则: %v", domain, matched)
		fmt.Printf("%s\t%s\n", action, domain)
	}
	return nil
}
