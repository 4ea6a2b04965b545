package domain

import "time"

// TaskSnapshot 报告中保存的任务快照，不是对任务行的实时引用
type TaskSnapshot struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Status        string  `json:"status"`
	Deadline      string  `json:"deadline,omitempty"`
	Assignee      string  `json:"assignee,omitempty"`
	PriorityScore float64 `json:"priority_score"`
	RiskLevel     string  `json:"risk_level"`
	TaskType      string  `json:"task_type"`
}

// ReportEntry 风险或阻塞条目
type ReportEntry struct {
	Task   string `json:"task"`
	Reason string `json:"reason"`
}

// DailyReport 日报领域对象
//
// 每个项目每天至多一份：同一天再次生成会原地覆盖四个内容字段，
// 标识保持不变。
type DailyReport struct {
	ID           int
	ProjectID    int
	Date         time.Time
	SummaryText  string
	PriorityList []TaskSnapshot
	Risks        []ReportEntry
	BlockedTasks []ReportEntry
}

// ReportSummary 对外的报告摘要视图
type ReportSummary struct {
	Date          string         `json:"date"`
	Summary       string         `json:"summary"`
	PriorityTasks []TaskSnapshot `json:"priority_tasks"`
	Risks         []ReportEntry  `json:"risks"`
	BlockedTasks  []ReportEntry  `json:"blocked_tasks"`
}

// TimelineMetrics 项目全量任务的统计指标
type TimelineMetrics struct {
	TotalTasks     int     `json:"total_tasks"`
	Completed      int     `json:"completed"`
	Blocked        int     `json:"blocked"`
	Overdue        int     `json:"overdue"`
	HighRisk       int     `json:"high_risk"`
	CompletionRate float64 `json:"completion_rate"`
}

// TimelineStatus 项目整体健康状态
type TimelineStatus struct {
	Status  string           `json:"status"`
	Reason  string           `json:"reason"`
	Metrics *TimelineMetrics `json:"metrics,omitempty"`
}

// NarrativeSummary 叙事服务返回的结构化日报内容
type NarrativeSummary struct {
	SummaryText  string        `json:"summary_text"`
	KeyProgress  []string      `json:"key_progress"`
	Risks        []ReportEntry `json:"risks"`
	UrgentTasks  []string      `json:"urgent_tasks"`
	BlockedItems []ReportEntry `json:"blocked_items"`
}

// StakeholderEmail 干系人更新邮件
type StakeholderEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
