// Package sink 提供规则记录的输出端：键值存储（SQLite、Redis、内存）和平铺文本。
package sink

import (
	"dlc-rules/rule"
)

// Store 键值输出端
//
// Write 覆盖同名域名；Commit 在整次运行结束时调用一次；
// 未 Commit 直接 Close 时丢弃本次写入（SQLite）或不发送（Redis）。
type Store interface {
	rule.Sink
	Commit() error
	Close() error
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*SQLite)(nil)
	_ Store = (*Redis)(nil)
	_ Store = (*Flat)(nil)
)
