package rule

// Action 路由动作
type Action string

const (
	ActionBlock   Action = "block"
	ActionDirect  Action = "direct"
	ActionForward Action = "forward"
)

// 默认标签
const (
	TagAds  = "ads"
	TagCN   = "cn"
	TagNoCN = "!cn"
)

// Table 标签到路由动作的只读映射
type Table struct {
	actions map[string]Action
}

// NewTable 创建映射表，复制传入的 map，之后不可修改
func NewTable(m map[string]Action) *Table {
	actions := make(map[string]Action, len(m))
	for tag, action := range m {
		actions[tag] = action
	}
	return &Table{actions: actions}
}

// DefaultTable 返回 ads/cn/!cn 三项固定映射
func DefaultTable() *Table {
	return NewTable(map[string]Action{
		TagAds:  ActionBlock,
		TagCN:   ActionDirect,
		TagNoCN: ActionForward,
	})
}

// Lookup 查找标签对应的动作
func (t *Table) Lookup(tag string) (Action, bool) {
	action, ok := t.actions[tag]
	return action, ok
}

// Len 返回映射数量
func (t *Table) Len() int {
	return len(t.actions)
}

// ParseAction 解析动作字符串，仅接受三种固定动作
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionBlock, ActionDirect, ActionForward:
		return Action(s), true
	}
	return "", false
}
