package annotated

import "strings"

// sanitize 将注释替换为空格、将字符串/字符字面量内容替换为空格，保持字节偏移与换行不变。
// 之后的所有扫描都基于净化后的文本，括号与分号计数不会被注释或字符串干扰。
func sanitize(src string) string {
	out := []byte(src)
	n := len(out)
	blank := func(from, to int) {
		for k := from; k < to && k < n; k++ {
			if out[k] != '\n' {
				out[k] = ' '
			}
		}
	}

	for i := 0; i < n; i++ {
		switch c := src[i]; {
		case c == '/' && i+1 < n && src[i+1] == '/':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = n - i
			}
			blank(i, i+end)
			i += end - 1
		case c == '/' && i+1 < n && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				blank(i, n)
				return string(out)
			}
			blank(i, i+2+end+2)
			i += 2 + end + 1
		case c == '"' && strings.HasPrefix(src[i:], `"""`):
			end := strings.Index(src[i+3:], `"""`)
			if end < 0 {
				blank(i+3, n)
				return string(out)
			}
			blank(i+3, i+3+end)
			i += 3 + end + 2
		case c == '"' || c == '\'':
			j := i + 1
			for j < n && src[j] != c && src[j] != '\n' {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			blank(i+1, j)
			i = j
		}
	}
	return string(out)
}

// matchClose 返回与 s[open] 处开括号匹配的闭括号位置，找不到时返回 -1
func matchClose(s string, open int) int {
	var openCh, closeCh byte
	switch s[open] {
	case '(':
		openCh, closeCh = '(', ')'
	case '{':
		openCh, closeCh = '{', '}'
	case '<':
		openCh, closeCh = '<', '>'
	case '[':
		openCh, closeCh = '[', ']'
	default:
		return -1
	}

	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// scanAnnotation 从 s[at] == '@' 处读取一个注解，返回简单名称和注解结束位置 (不含)。
// "@interface" 是注解类型声明关键字而不是注解，返回 ok=false。
func scanAnnotation(s string, at int) (name string, end int, ok bool) {
	i := at + 1
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	for i < len(s) && (isIdentPart(s[i]) || s[i] == '.') {
		i++
	}
	if i == start || !isIdentStart(s[start]) {
		return "", at + 1, false
	}

	qualified := strings.TrimRight(s[start:i], ".")
	if qualified == "interface" {
		return "", at + 1, false
	}
	if dot := strings.LastIndexByte(qualified, '.'); dot >= 0 {
		name = qualified[dot+1:]
	} else {
		name = qualified
	}

	end = i
	j := i
	for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\r' || s[j] == '\n') {
		j++
	}
	if j < len(s) && s[j] == '(' {
		if closeAt := matchClose(s, j); closeAt >= 0 {
			end = closeAt + 1
		} else {
			end = len(s)
		}
	}
	return name, end, true
}

// collectAnnotations 收集文本中出现的全部注解名 (去重，保持首次出现顺序)
func collectAnnotations(clean string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for i := 0; i < len(clean); i++ {
		if clean[i] != '@' {
			continue
		}
		name, end, ok := scanAnnotation(clean, i)
		if !ok {
			continue
		}
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
		i = end - 1
	}
	return out
}

// splitTopLevel 按分隔符切分，忽略 <> () [] {} 内部的分隔符
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(', '[', '{':
			depth++
		case '>', ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}

// tokens 按空白切分，泛型尖括号内部的空白不切分 ("Map<String, Long> m" -> ["Map<String, Long>", "m"])
func tokens(s string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '<':
			depth++
		case c == '>' && depth > 0:
			depth--
		case (c == ' ' || c == '\t' || c == '\n' || c == '\r') && depth == 0:
			flush()
			continue
		}
		if (c == '\n' || c == '\r' || c == '\t') && depth > 0 {
			c = ' '
		}
		cur.WriteByte(c)
	}
	flush()
	return out
}

// stripGenerics 去掉类型中的泛型实参 ("Repo<Order, Long>" -> "Repo")
func stripGenerics(t string) string {
	if i := strings.IndexByte(t, '<'); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// collapseSpaces 将连续空白压缩为单个空格
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func lineOf(s string, offset int) int {
	if offset > len(s) {
		offset = len(s)
	}
	return strings.Count(s[:offset], "\n") + 1
}
