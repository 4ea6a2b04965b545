package domain

import "time"

// TaskStatus 任务状态
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusBlocked    TaskStatus = "blocked"
	StatusUnclear    TaskStatus = "unclear"
)

// String returns the string representation of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusBlocked, StatusUnclear:
		return true
	default:
		return false
	}
}

// TaskType 任务类型
type TaskType string

const (
	TypeFeature  TaskType = "feature"
	TypeBug      TaskType = "bug"
	TypeResearch TaskType = "research"
	TypeBlocked  TaskType = "blocked"
	TypeUnclear  TaskType = "unclear"
)

// String returns the string representation of the task type.
func (t TaskType) String() string {
	return string(t)
}

// IsValid returns true if the task type is a known value.
func (t TaskType) IsValid() bool {
	switch t {
	case TypeFeature, TypeBug, TypeResearch, TypeBlocked, TypeUnclear:
		return true
	default:
		return false
	}
}

// RiskLevel 风险等级
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// IsValid returns true if the risk level is a known value.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// Task 任务领域对象
//
// PriorityScore 与 RiskLevel 是派生缓存：由分类器/打分器在创建、导入、
// 生成报告时显式重算，不在读取时隐式刷新。
type Task struct {
	ID                 int
	ProjectID          int
	Title              string
	Description        string
	Status             TaskStatus
	TaskType           TaskType
	Deadline           *time.Time
	Assignee           string
	PriorityScore      float64
	RiskLevel          RiskLevel
	StoryPoints        int
	Tags               []string
	AcceptanceCriteria []string
	Subtasks           []string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TaskAnalysis 叙事服务返回的任务拆解结果
type TaskAnalysis struct {
	Description        string   `json:"description"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
	Subtasks           []string `json:"subtasks"`
	StoryPoints        int      `json:"story_points"`
	TaskType           string   `json:"task_type"`
	Tags               []string `json:"tags"`
}
