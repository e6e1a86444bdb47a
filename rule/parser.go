package rule

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// 规则命令
const (
	CommandDomain  = "domain"
	CommandFull    = "full"
	CommandInclude = "include"
)

// Entry 单行解析结果
type Entry struct {
	Command string
	Target  string
	Tag     string // 行内未写 @tag 时为空
}

// ParseLine 解析一行规则
//
// 语法: [command ":"] target [空白 "@" tag]，其余部分忽略。
// 不匹配时返回 false（空行、# 注释等），调用方直接跳过。
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)

	if cmd, rest, ok := cutCommand(line); ok {
		if target, tail := scanToken(rest); target != "" {
			return Entry{Command: cmd, Target: target, Tag: scanTag(tail)}, true
		}
		// 前缀后没有 target 时整行按无前缀重新匹配，如 "full:" 得到 target "full:"
	}

	target, tail := scanToken(line)
	if target == "" {
		return Entry{}, false
	}
	return Entry{Command: CommandDomain, Target: target, Tag: scanTag(tail)}, true
}

// cutCommand 切出开头的 "word:" 前缀
func cutCommand(s string) (cmd, rest string, ok bool) {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isWordRune(r) {
			break
		}
		i += size
	}
	if i == 0 || i >= len(s) || s[i] != ':' {
		return "", s, false
	}
	return s[:i], s[i+1:], true
}

// scanToken 读取连续的非空白、非 # 字符
func scanToken(s string) (token, tail string) {
	for i, r := range s {
		if unicode.IsSpace(r) || r == '#' {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// scanTag 读取 target 之后的 "空白@tag"，不满足时返回空
func scanTag(tail string) string {
	rest := strings.TrimLeftFunc(tail, unicode.IsSpace)
	if len(rest) == len(tail) || !strings.HasPrefix(rest, "@") {
		return ""
	}
	tag, _ := scanToken(rest[1:])
	return tag
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
