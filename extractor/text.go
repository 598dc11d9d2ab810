package extractor

import "strings"

// stripCommentsAndStrings 去掉注释与字符串字面量内容，避免把 "Foo.bar(" 这样的文本误认为调用点
func stripCommentsAndStrings(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	n := len(src)
	for i := 0; i < n; i++ {
		c := src[i]
		switch {
		case c == '/' && i+1 < n && src[i+1] == '/':
			for i < n && src[i] != '\n' {
				i++
			}
			b.WriteByte('\n')
		case c == '/' && i+1 < n && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			b.WriteByte(' ')
			i += 2 + end + 1
		case c == '"' || c == '\'':
			j := i + 1
			for j < n && src[j] != c && src[j] != '\n' {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			b.WriteByte(c)
			b.WriteByte(c)
			i = j
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
