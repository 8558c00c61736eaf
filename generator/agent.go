package generator

import (
	"context"
	"errors"
	"fmt"
)

// Agent 负责把组装好的提示词发给模型并取回回复原文。
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// Reply returns the model's raw completion. No retry; callers decide what a failure means.
func (a *Agent) Reply(ctx context.Context, prompt string) (string, error) {
	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return raw, nil
}
