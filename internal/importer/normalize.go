package importer

import (
	"strings"
	"time"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

// TaskDraft 外部来源记录规范化后的任务属性，
// 交给用例层补全派生字段后再持久化。
type TaskDraft struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Deadline    *time.Time
	Assignee    string
	StoryPoints int
}

var statusTable = map[string]domain.TaskStatus{
	"todo":        domain.StatusTodo,
	"to_do":       domain.StatusTodo,
	"in_progress": domain.StatusInProgress,
	"inprogress":  domain.StatusInProgress,
	"doing":       domain.StatusInProgress,
	"done":        domain.StatusDone,
	"completed":   domain.StatusDone,
	"blocked":     domain.StatusBlocked,
	"unclear":     domain.StatusUnclear,
}

// NormalizeStatus 将任意来源的状态字符串映射到规范枚举。
// 小写、空格替换为下划线后查表，未识别的值一律落到 TODO，从不报错。
func NormalizeStatus(raw string) domain.TaskStatus {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_")
	if s, ok := statusTable[key]; ok {
		return s
	}
	return domain.StatusTodo
}

const (
	layoutISO = "2006-01-02"
	layoutUS  = "01/02/2006"
)

// ParseDeadline 依次尝试 ISO 与美式日期格式，都失败则当作无截止日期。
func ParseDeadline(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{layoutISO, layoutUS} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// ClassifyType 基于关键词的任务类型启发式，
// 在叙事服务不可用时充当确定性兜底。
func ClassifyType(title, description string) domain.TaskType {
	text := strings.ToLower(title + " " + description)

	switch {
	case containsAny(text, "fix", "bug", "error", "issue", "broken"):
		return domain.TypeBug
	case containsAny(text, "research", "investigate", "explore", "study"):
		return domain.TypeResearch
	case containsAny(text, "blocked", "waiting", "dependency"):
		return domain.TypeBlocked
	case len(strings.TrimSpace(description)) < 10:
		return domain.TypeUnclear
	default:
		return domain.TypeFeature
	}
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
