package domain

import "time"

// Project 项目领域对象，拥有任务与日报，删除时由存储层级联清理
type Project struct {
	ID          int
	Name        string
	Description string
	CreatedAt   time.Time
}
