package output

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/CodMac/go-archview/model"
)

// Mermaid 把 DiagramSpec 渲染为 Mermaid flowchart 文本
func Mermaid(spec model.DiagramSpec) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, n := range spec.Nodes {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", safeID(n.ID), nodeLabel(n))
	}
	for _, e := range spec.Edges {
		arrow := arrowFor(e.Style)
		if e.Label != "" {
			fmt.Fprintf(&sb, "    %s %s|%s| %s\n", safeID(e.Source), arrow, escape(e.Label), safeID(e.Target))
		} else {
			fmt.Fprintf(&sb, "    %s %s %s\n", safeID(e.Source), arrow, safeID(e.Target))
		}
	}
	return sb.String()
}

// nodeLabel 生成节点文本：UML 节点带构造型与成员，组件节点带成员类名
func nodeLabel(n model.NodeConfig) string {
	var lines []string
	switch {
	case n.Content != nil:
		if n.Content.Stereotype != "" {
			lines = append(lines, "«"+escape(n.Content.Stereotype)+"»")
		}
		lines = append(lines, "<b>"+escape(n.Content.Header)+"</b>")
		for _, f := range n.Content.Fields {
			lines = append(lines, escape(f))
		}
		for _, m := range n.Content.Methods {
			lines = append(lines, escape(m))
		}
	case len(n.Members) > 0:
		lines = append(lines, "<b>"+escape(n.Label)+"</b>", escape(strings.Join(n.Members, ", ")))
	default:
		lines = append(lines, escape(n.Label))
	}
	return strings.Join(lines, "<br/>")
}

// arrowFor 按线型选择 Mermaid 箭头
func arrowFor(style *model.EdgeStyle) string {
	if style == nil {
		return "-->"
	}
	switch style.Line {
	case "solid":
		return "==>"
	case "dashed", "dotted":
		return "-.->"
	default:
		return "-->"
	}
}

func escape(s string) string {
	r := strings.NewReplacer(`"`, "#quot;", "<", "#lt;", ">", "#gt;", "|", "#124;")
	return r.Replace(s)
}

// ExportMermaidHTML 生成包含 Mermaid.js 渲染逻辑的静态网页
func ExportMermaidHTML(w io.Writer, title string, spec model.DiagramSpec) error {
	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%[1]s</title>
    <script src="https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.min.js"></script>
    <style>
        body { font-family: -apple-system, sans-serif; background: #f0f2f5; margin: 20px; }
        .mermaid { background: white; padding: 20px; border-radius: 12px; box-shadow: 0 4px 15px rgba(0,0,0,0.1); }
        h1 { color: #1a1a1a; text-align: center; }
    </style>
</head>
<body>
    <h1>%[1]s</h1>
    <div class="mermaid">
%[2]s    </div>
    <script>
        mermaid.initialize({
            startOnLoad: true,
            maxTextSize: 100000,
            theme: 'default',
            flowchart: { useMaxWidth: false, htmlLabels: true }
        });
    </script>
</body>
</html>
`, html.EscapeString(title), Mermaid(spec))
	return err
}

// safeID 确保节点 id 符合 Mermaid 的 ID 命名规范
func safeID(id string) string {
	r := strings.NewReplacer(".", "_", "/", "_", "-", "_", "\\", "_", ":", "_", "@", "_", " ", "_")
	return "n_" + r.Replace(id)
}
