package sink

import (
	"sync"

	"dlc-rules/rule"
)

// Memory 内存键值输出端，同一域名后写覆盖先写
type Memory struct {
	data map[string]rule.Action
	mu   sync.RWMutex
}

// NewMemory 创建内存输出端
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]rule.Action),
	}
}

// Write 写入或覆盖记录
func (m *Memory) Write(rec rule.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[rec.Domain] = rec.Action
	return nil
}

// Len 返回去重后的域名数量
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data)
}

// Commit 内存输出端无需提交
func (m *Memory) Commit() error { return nil }

// Close 关闭
func (m *Memory) Close() error { return nil }
