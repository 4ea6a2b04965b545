package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/time/rate"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/biz"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/conf"
	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

const systemJSON = "You are a JSON generator. Output only a JSON string."

// Provider 基于 chat model 的叙事服务实现。
// 只负责如实生成与解析，失败降级由用例层处理。
type Provider struct {
	chatModel model.ChatModel
	limiter   *rate.Limiter
	log       *log.Helper
}

// NewProvider 初始化 LLM 与限流器；未配置 api_key 时返回 nil，业务层退化为本地启发式
func NewProvider(c *conf.LLM, logger log.Logger) (biz.NarrativeProvider, error) {
	if c == nil || c.ApiKey == "" {
		log.NewHelper(logger).Info("llm api key not configured, narrative generation disabled")
		return nil, nil
	}

	ctx := context.Background()

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: c.BaseUrl,
		APIKey:  c.ApiKey,
		Model:   c.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}

	qps := c.Qps
	if qps <= 0 {
		qps = 1
	}
	rpm := c.Rpm
	if rpm <= 0 {
		rpm = 30
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), int(qps))

	return &Provider{
		chatModel: chatModel,
		limiter:   limiter,
		log:       log.NewHelper(logger),
	}, nil
}

// DailySummary 生成项目日报的结构化内容
func (p *Provider) DailySummary(ctx context.Context, tasks []domain.TaskSnapshot, projectName string) (*domain.NarrativeSummary, error) {
	taskJSON, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task snapshots: %w", err)
	}

	prompt := fmt.Sprintf(`Analyze this project's current status and generate a daily summary.

Project: %s
Tasks: %s

Return your summary strictly as JSON with these exact keys and no markdown markers:
{
    "summary_text": "a brief paragraph summarizing overall project health and key observations",
    "key_progress": ["progress 1", "progress 2", "progress 3"],
    "risks": [{"task": "task name", "reason": "why it's at risk"}],
    "urgent_tasks": ["task 1", "task 2", "task 3"],
    "blocked_items": [{"task": "task name", "reason": "blocking reason"}]
}`, projectName, taskJSON)

	var summary domain.NarrativeSummary
	if err := p.generateJSON(ctx, prompt, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// StakeholderUpdate 生成面向干系人的自由文本更新
func (p *Provider) StakeholderUpdate(ctx context.Context, summary *domain.ReportSummary, projectName string) (string, error) {
	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report summary: %w", err)
	}

	prompt := fmt.Sprintf(`Based on this project summary, write a professional stakeholder update email:

Project: %s
Summary Data: %s

Write a concise, professional update that:
- Highlights key accomplishments
- Mentions any concerns or delays tactfully
- Provides confidence about next steps
- Is suitable for non-technical stakeholders

Keep it under 200 words. Return only the email body.`, projectName, summaryJSON)

	return p.generateText(ctx, prompt)
}

// AnalyzeTask 对任务做结构化拆解
func (p *Provider) AnalyzeTask(ctx context.Context, title, description string) (*domain.TaskAnalysis, error) {
	if description == "" {
		description = "No description provided"
	}

	prompt := fmt.Sprintf(`Analyze this project task and provide a detailed breakdown:

Task Title: %s
Task Description: %s

Return your analysis strictly as JSON with these exact keys and no markdown markers:
{
    "description": "detailed description",
    "acceptance_criteria": ["criterion 1", "criterion 2"],
    "subtasks": ["subtask 1", "subtask 2"],
    "story_points": 5,
    "task_type": "feature",
    "tags": ["tag1", "tag2", "tag3"]
}

story_points must be one of 1, 2, 3, 5, 8, 13 or 21.
task_type must be one of feature, bug, research, blocked or unclear.`, title, description)

	var analysis domain.TaskAnalysis
	if err := p.generateJSON(ctx, prompt, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

const (
	maxRetries = 3
	baseDelay  = 2 * time.Second
)

func (p *Provider) generateJSON(ctx context.Context, prompt string, out interface{}) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}

		messages := []*schema.Message{
			{Role: schema.System, Content: systemJSON},
			{Role: schema.User, Content: prompt},
		}

		resp, err := p.chatModel.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) {
				lastErr = err
				if i < maxRetries {
					time.Sleep(baseDelay * time.Duration(1<<i))
					continue
				}
			}
			return err
		}

		if err := json.Unmarshal([]byte(stripFences(resp.Content)), out); err != nil {
			lastErr = err
			if i < maxRetries {
				continue
			}
			return fmt.Errorf("json unmarshal: %w", err)
		}
		return nil
	}
	return lastErr
}

func (p *Provider) generateText(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", err
		}

		resp, err := p.chatModel.Generate(ctx, []*schema.Message{
			{Role: schema.User, Content: prompt},
		})
		if err != nil {
			if isRateLimited(err) {
				lastErr = err
				if i < maxRetries {
					time.Sleep(baseDelay * time.Duration(1<<i))
					continue
				}
			}
			return "", err
		}
		return strings.TrimSpace(resp.Content), nil
	}
	return "", lastErr
}

func stripFences(content string) string {
	clean := strings.TrimSpace(content)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

func isRateLimited(err error) bool {
	return strings.Contains(err.Error(), "429") ||
		strings.Contains(strings.ToLower(err.Error()), "too many requests")
}
