package rule

import (
	"fmt"
	"strings"
)

// MissingFileError 规则文件不存在（根文件或 include 目标）
type MissingFileError struct {
	File     string
	Includer string // 为空表示根文件
	Line     int
	Err      error
}

func (e *MissingFileError) Error() string {
	if e.Includer == "" {
		return fmt.Sprintf("规则文件 %s 不存在: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s:%d: include 的规则文件 %s 不存在: %v", e.Includer, e.Line, e.File, e.Err)
}

func (e *MissingFileError) Unwrap() error { return e.Err }

// UnknownTagError 标签不在映射表中
type UnknownTagError struct {
	File string
	Line int
	Tag  string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("%s:%d: 未知标签 @%s", e.File, e.Line, e.Tag)
}

// CyclicIncludeError include 链成环
type CyclicIncludeError struct {
	Chain []string
}

func (e *CyclicIncludeError) Error() string {
	return "include 循环: " + strings.Join(e.Chain, " -> ")
}
