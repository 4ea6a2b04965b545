package importer

import (
	"strings"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

// BoardCard 看板导出的卡片记录
type BoardCard struct {
	Name        string `json:"name"`
	Description string `json:"desc"`
	ListName    string `json:"list_name"`
	Due         string `json:"due"`
	Assignee    string `json:"assignee"`
}

// FromBoard 将看板卡片转换为任务草稿。状态由所在列表名推断，
// 截止日期取 due 字段的前 10 位按 ISO 解析；无名卡片跳过。
func FromBoard(cards []BoardCard) []TaskDraft {
	var drafts []TaskDraft
	for _, card := range cards {
		if strings.TrimSpace(card.Name) == "" {
			continue
		}

		due := card.Due
		if len(due) > 10 {
			due = due[:10]
		}

		drafts = append(drafts, TaskDraft{
			Title:       strings.TrimSpace(card.Name),
			Description: card.Description,
			Status:      listStatus(card.ListName),
			Deadline:    ParseDeadline(due),
			Assignee:    strings.TrimSpace(card.Assignee),
		})
	}
	return drafts
}

// listStatus 列表名启发式：done/complete 视为完成，progress/doing 视为进行中，
// blocked/waiting 视为阻塞，其余归入待办。
func listStatus(listName string) domain.TaskStatus {
	name := strings.ToLower(listName)
	switch {
	case strings.Contains(name, "done") || strings.Contains(name, "complete"):
		return domain.StatusDone
	case strings.Contains(name, "progress") || strings.Contains(name, "doing"):
		return domain.StatusInProgress
	case strings.Contains(name, "blocked") || strings.Contains(name, "waiting"):
		return domain.StatusBlocked
	default:
		return domain.StatusTodo
	}
}
