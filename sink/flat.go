package sink

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"dlc-rules/rule"
)

// Flat 平铺输出端，每行 action<TAB>domain，不去重，顺序即遍历顺序
type Flat struct {
	w *bufio.Writer
}

// NewFlat 创建平铺输出端
func NewFlat(w io.Writer) *Flat {
	return &Flat{w: bufio.NewWriter(w)}
}

// Write 追加一行
func (f *Flat) Write(rec rule.Record) error {
	if _, err := fmt.Fprintf(f.w, "%s\t%s\n", rec.Action, rec.Domain); err != nil {
		return fmt.Errorf("写入输出失败: %w", err)
	}
	return nil
}

// Commit 刷新缓冲
func (f *Flat) Commit() error {
	return f.w.Flush()
}

// Close 刷新缓冲，底层 writer 由调用方关闭
func (f *Flat) Close() error {
	return f.w.Flush()
}

// ReadFlat 读取平铺规则，跳过空行和 # 注释
//
// 字段数不为 2 或动作未知时返回错误，带行号。
func ReadFlat(r io.Reader) ([]rule.Record, error) {
	var records []rule.Record

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		tokens := strings.Split(line, "\t")
		if len(tokens) != 2 {
			return nil, fmt.Errorf("第 %d 行格式无效: %s", n, line)
		}

		action, ok := rule.ParseAction(tokens[0])
		if !ok {
			return nil, fmt.Errorf("第 %d 行动作无效: %s", n, tokens[0])
		}
		records = append(records, rule.Record{Domain: tokens[1], Action: action})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取规则失败: %w", err)
	}
	return records, nil
}
