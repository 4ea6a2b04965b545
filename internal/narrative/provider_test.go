package narrative

import (
	"encoding/json"
	"testing"

	"github.com/Taimur265/AI-Project-Manager-Assistant/internal/domain"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n\n", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripFences_DecodesSummary(t *testing.T) {
	raw := "```json\n{\"summary_text\":\"all good\",\"risks\":[{\"task\":\"x\",\"reason\":\"y\"}]}\n```"

	var summary domain.NarrativeSummary
	if err := json.Unmarshal([]byte(stripFences(raw)), &summary); err != nil {
		t.Fatalf("unmarshal after stripFences: %v", err)
	}
	if summary.SummaryText != "all good" {
		t.Errorf("SummaryText = %q", summary.SummaryText)
	}
	if len(summary.Risks) != 1 || summary.Risks[0].Task != "x" {
		t.Errorf("Risks = %+v", summary.Risks)
	}
}

func TestIsRateLimited(t *testing.T) {
	if !isRateLimited(errString("status code: 429")) {
		t.Error("429 not detected")
	}
	if !isRateLimited(errString("Too Many Requests")) {
		t.Error("too many requests not detected")
	}
	if isRateLimited(errString("connection refused")) {
		t.Error("false positive")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
