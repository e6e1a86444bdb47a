package rule

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Record 写入输出端的唯一单元
type Record struct {
	Domain string
	Action Action
}

// Sink 记录输出端
type Sink interface {
	Write(rec Record) error
}

// Observer 加载过程观察者，用于日志、指标和 verbose 输出
type Observer interface {
	FileLoaded(name, defaultTag string, depth int)
	LineSkipped(file string, line int, text string)
	EntryResolved(file string, line int, entry Entry, action Action)
}

// Root 入口文件及其默认标签
type Root struct {
	File string
	Tag  string
}

// Roots 返回固定的两个入口，顺序即写入顺序
func Roots() []Root {
	return []Root{
		{File: "cn", Tag: TagCN},
		{File: "geolocation-!cn", Tag: TagNoCN},
	}
}

// Loader 规则加载器
type Loader struct {
	fsys     fs.FS
	table    *Table
	sink     Sink
	observer Observer
}

// Option 加载器选项
type Option func(*Loader)

// WithObserver 设置观察者
func WithObserver(o Observer) Option {
	return func(l *Loader) {
		if o != nil {
			l.observer = o
		}
	}
}

// NewLoader 创建新的加载器，fsys 的根即数据目录
func NewLoader(fsys fs.FS, table *Table, sink Sink, opts ...Option) *Loader {
	l := &Loader{
		fsys:     fsys,
		table:    table,
		sink:     sink,
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run 依次加载 cn 与 geolocation-!cn
func (l *Loader) Run() error {
	for _, root := range Roots() {
		if err := l.Load(root.File, root.Tag); err != nil {
			return err
		}
	}
	return nil
}

type frame struct {
	name  string
	lines []string
	next  int
}

// Load 加载规则文件，include 的文件继承当前默认标签
//
// 深度优先、先序：include 的记录全部写出后才继续处理下一行。
// 使用显式栈代替递归，当前 include 链上重复出现的文件视为循环。
func (l *Loader) Load(name, defaultTag string) error {
	var stack []*frame

	push := func(name, includer string, line int) error {
		name = path.Clean(name)
		for _, f := range stack {
			if f.name == name {
				chain := make([]string, 0, len(stack)+1)
				for _, g := range stack {
					chain = append(chain, g.name)
				}
				return &CyclicIncludeError{Chain: append(chain, name)}
			}
		}

		lines, err := l.readLines(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
				return &MissingFileError{File: name, Includer: includer, Line: line, Err: err}
			}
			return fmt.Errorf("读取规则文件 %s 失败: %w", name, err)
		}

		stack = append(stack, &frame{name: name, lines: lines})
		l.observer.FileLoaded(name, defaultTag, len(stack)-1)
		return nil
	}

	if err := push(name, "", 0); err != nil {
		return err
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.lines) {
			stack = stack[:len(stack)-1]
			continue
		}

		lineNo := top.next + 1
		text := top.lines[top.next]
		top.next++

		entry, ok := ParseLine(text)
		if !ok {
			l.observer.LineSkipped(top.name, lineNo, text)
			continue
		}
		if entry.Tag == "" {
			entry.Tag = defaultTag
		}

		action, ok := l.table.Lookup(entry.Tag)
		if !ok {
			return &UnknownTagError{File: top.name, Line: lineNo, Tag: entry.Tag}
		}
		l.observer.EntryResolved(top.name, lineNo, entry, action)

		switch entry.Command {
		case CommandDomain, CommandFull:
			if err := l.sink.Write(Record{Domain: entry.Target, Action: action}); err != nil {
				return fmt.Errorf("写入 %s 失败: %w", entry.Target, err)
			}
		case CommandInclude:
			if err := push(entry.Target, top.name, lineNo); err != nil {
				return err
			}
		default:
			// keyword、regexp 等不支持的命令
		}
	}

	return nil
}

func (l *Loader) readLines(name string) ([]string, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}

// NopObserver 空观察者
type NopObserver struct{}

func (NopObserver) FileLoaded(string, string, int) {}

func (NopObserver) LineSkipped(string, int, string) {}

func (NopObserver) EntryResolved(string, int, Entry, Action) {}

// MultiObserver 依次通知多个观察者
type MultiObserver []Observer

func (m MultiObserver) FileLoaded(name, defaultTag string, depth int) {
	for _, o := range m {
		o.FileLoaded(name, defaultTag, depth)
	}
}

func (m MultiObserver) LineSkipped(file string, line int, text string) {
	for _, o := range m {
		o.LineSkipped(file, line, text)
	}
}

func (m MultiObserver) EntryResolved(file string, line int, entry Entry, action Action) {
	for _, o := range m {
		o.EntryResolved(file, line, entry, action)
	}
}
