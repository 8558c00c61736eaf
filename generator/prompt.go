package generator

import (
	"fmt"
	"strings"
)

const styleFraming = "Mimic the following style:\n"

// Instructions 返回固定的人设指令块（不含风格语料与帖子内容）。
func (p Persona) Instructions() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are %s", p.Name))
	if p.Description != "" {
		sb.WriteString(", ")
		sb.WriteString(p.Description)
	}
	sb.WriteString(".\n")
	sb.WriteString(fmt.Sprintf("Respond to the following Reddit post as %s would.\n", p.Name))
	sb.WriteString("Requirements:\n")
	sb.WriteString("- Reply with your response only. No commentary, notes, or explanation of what you are doing.\n")
	sb.WriteString("- Do not use bold, italics, headings, or any other emphasis formatting.\n")
	sb.WriteString("- Write in plain, conversational text.\n")
	sb.WriteString("- Keep it to two paragraphs at most. The post body may be empty; respond to the title then.")
	return sb.String()
}

// BuildReplyPrompt 按固定顺序拼接：风格语料（可选）→ 指令块 → 标题/正文。
// title/body 原样透传，不做截断或清洗。
func BuildReplyPrompt(p Persona, title, body string) string {
	var sb strings.Builder
	if lines := p.Corpus.Lines(); len(lines) > 0 {
		sb.WriteString(styleFraming)
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n\n")
	}
	sb.WriteString(p.Instructions())
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n\nBody: %s\n", title, body))
	return sb.String()
}
