package generator

import (
	"context"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt string) (string, error) {
	title := ""
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "Title: ") {
			title = strings.TrimPrefix(line, "Title: ")
		}
	}
	var sb strings.Builder
	sb.WriteString("Thanks so much for posting this")
	if title != "" {
		sb.WriteString(" (\"")
		sb.WriteString(title)
		sb.WriteString("\")")
	}
	sb.WriteString(", it really made my day.\n\n")
	sb.WriteString("As always, work hard and be nice to people.")
	return sb.String(), nil
}
