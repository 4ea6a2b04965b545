package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FromCSV 读取带表头的 CSV 并产出规范化任务草稿。
// 表头不区分大小写，title 缺失时回退到 name 列；
// 没有标题的行直接跳过，不算错误。
func FromCSV(r io.Reader) ([]TaskDraft, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var drafts []TaskDraft
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		title := field(row, cols, "title")
		if title == "" {
			title = field(row, cols, "name")
		}
		if title == "" {
			continue
		}

		points, _ := strconv.Atoi(field(row, cols, "story_points"))
		drafts = append(drafts, TaskDraft{
			Title:       title,
			Description: field(row, cols, "description"),
			Status:      NormalizeStatus(field(row, cols, "status")),
			Deadline:    ParseDeadline(field(row, cols, "deadline")),
			Assignee:    field(row, cols, "assignee"),
			StoryPoints: points,
		})
	}
	return drafts, nil
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
