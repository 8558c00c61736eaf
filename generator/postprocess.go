package generator

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Normalize 去掉首尾空白；flatten 为 true 时先把 Markdown 强调/标题等渲染成纯文本。
// 返回空串表示模型输出不可用。
func Normalize(raw string, flatten bool) string {
	out := strings.TrimSpace(raw)
	if out == "" {
		return ""
	}
	if flatten {
		out = strings.TrimSpace(flattenMarkdown(out))
	}
	return out
}

var mdParser = goldmark.New().Parser()

// flattenMarkdown keeps the text of every block and drops the markup around it.
// Blocks are separated by a blank line, soft/hard breaks inside a block by "\n".
func flattenMarkdown(md string) string {
	source := []byte(md)
	doc := mdParser.Parse(text.NewReader(source))

	var (
		blocks []string
		cur    bytes.Buffer
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			blocks = append(blocks, s)
		}
		cur.Reset()
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				cur.Write(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					cur.WriteByte('\n')
				}
			}
		case *ast.String:
			if entering {
				cur.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				cur.Write(node.Label(source))
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if entering {
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					cur.Write(seg.Value(source))
				}
				flush()
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
			if !entering {
				flush()
			}
		}
		return ast.WalkContinue, nil
	})
	flush()

	return strings.Join(blocks, "\n\n")
}
