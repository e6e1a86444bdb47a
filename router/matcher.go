package router

import (
	"strings"

	"dlc-rules/rule"

	"github.com/miekg/dns"
)

// Matcher 域名匹配器
type Matcher struct {
	domainMap     map[string]rule.Action // domain -> action
	defaultAction rule.Action
}

// NewMatcher 创建新的匹配器，未命中时返回 defaultAction
func NewMatcher(defaultAction rule.Action) *Matcher {
	return &Matcher{
		domainMap:     make(map[string]rule.Action),
		defaultAction: defaultAction,
	}
}

// Add 添加域名，已存在时保留先添加的动作
func (m *Matcher) Add(domain string, action rule.Action) bool {
	domain = normalize(domain)
	if _, exists := m.domainMap[domain]; exists {
		return false
	}
	m.domainMap[domain] = action
	return true
}

// AddRecords 批量添加
func (m *Matcher) AddRecords(records []rule.Record) {
	for _, rec := range records {
		m.Add(rec.Domain, rec.Action)
	}
}

// Len 返回域名数量
func (m *Matcher) Len() int {
	return len(m.domainMap)
}

// Match 匹配域名，依次尝试自身和各级上级域名
func (m *Matcher) Match(domain string) (rule.Action, bool) {
	domain = normalize(domain)

	for {
		if action, exists := m.domainMap[domain]; exists {
			return action, true
		}
		pos := strings.IndexByte(domain, '.')
		if pos == -1 {
			return m.defaultAction, false
		}
		domain = domain[pos+1:]
	}
}

// normalize 转小写并去掉末尾的点
func normalize(domain string) string {
	if domain == "" {
		return ""
	}
	return strings.TrimSuffix(dns.CanonicalName(domain), ".")
}
