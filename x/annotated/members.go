package annotated

import (
	"regexp"
	"strings"

	"github.com/CodMac/go-archview/model"
)

// rawMember 是类体中一条成员级语句：注解已被剥离并按位置归属到该语句
type rawMember struct {
	header      string   // 语句文本 (不含注解、不含方法体)
	annotations []string // 出现在语句起点与声明之间的注解
	hasBody     bool     // 以 { 结束 (方法体/初始化块/内部类)，否则以 ; 结束
}

// scanMembers 以类体深度为 0 顺序扫描，切分出成员级语句。
// 注解归属于紧随其后的声明：从上一个成员边界 (; { }) 到本声明之间出现的注解都属于本声明，
// 参数列表中的注解不计入成员注解。
func scanMembers(body string) []rawMember {
	var (
		members []rawMember
		cur     strings.Builder
		annos   []string
		paren   int
		assign  bool
	)
	reset := func() {
		cur.Reset()
		annos = nil
		paren = 0
		assign = false
	}
	emit := func(hasBody bool) {
		if strings.TrimSpace(cur.String()) != "" {
			members = append(members, rawMember{header: cur.String(), annotations: annos, hasBody: hasBody})
		}
		reset()
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '@':
			name, end, ok := scanAnnotation(body, i)
			if !ok {
				cur.WriteByte(c)
				continue
			}
			if paren == 0 {
				annos = append(annos, name)
			}
			cur.WriteByte(' ')
			i = end - 1
		case c == '(':
			paren++
			cur.WriteByte(c)
		case c == ')':
			if paren > 0 {
				paren--
			}
			cur.WriteByte(c)
		case c == '=' && paren == 0:
			assign = true
			cur.WriteByte(c)
		case c == '{':
			closeAt := matchClose(body, i)
			if closeAt < 0 {
				closeAt = len(body) - 1
			}
			if assign || paren > 0 {
				// 字段初始化表达式中的数组字面量/lambda 体
				cur.WriteString(body[i : closeAt+1])
				i = closeAt
				continue
			}
			emit(true)
			i = closeAt
		case c == ';' && paren == 0:
			emit(false)
		case c == '}':
			reset()
		default:
			cur.WriteByte(c)
		}
	}
	return members
}

var (
	modifiers = map[string]bool{
		"public": true, "protected": true, "private": true, "static": true, "final": true,
		"abstract": true, "synchronized": true, "native": true, "transient": true,
		"volatile": true, "default": true, "strictfp": true, "sealed": true, "non-sealed": true,
	}
	keywords = map[string]bool{
		"class": true, "interface": true, "enum": true, "record": true, "new": true,
		"return": true, "throw": true, "else": true, "if": true, "for": true, "while": true,
		"switch": true, "catch": true, "case": true, "do": true, "try": true, "package": true,
		"import": true, "extends": true, "implements": true, "throws": true, "this": true, "super": true,
	}
	identRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
	typeRe  = regexp.MustCompile(`^[A-Za-z_$][\w$.]*(<.*>)?(\[\])*(\.\.\.)?$`)
	nameRe  = regexp.MustCompile(`([A-Za-z_$][\w$]*)\s*$`)
)

// declTokens 去掉修饰符与前导类型参数 (<T>) 后的声明词元
func declTokens(prefix string) ([]string, bool) {
	var out []string
	for _, tok := range tokens(prefix) {
		switch {
		case modifiers[tok]:
			continue
		case len(out) == 0 && strings.HasPrefix(tok, "<"):
			continue
		case keywords[tok]:
			return nil, false
		}
		out = append(out, tok)
	}
	return out, true
}

// parseMethod 将成员语句识别为方法签名 "(modifier)? type name(params)"。
// 构造函数形态 (没有返回类型，或返回类型与方法名相同) 不算方法。
func parseMethod(m rawMember) (model.Method, bool) {
	h := strings.TrimSpace(m.header)
	open := strings.IndexByte(h, '(')
	if open <= 0 {
		return model.Method{}, false
	}

	before := h[:open]
	loc := nameRe.FindStringSubmatchIndex(before)
	if loc == nil {
		return model.Method{}, false
	}
	name := before[loc[2]:loc[3]]
	if keywords[name] {
		return model.Method{}, false
	}

	closeAt := matchClose(h, open)
	if closeAt < 0 {
		return model.Method{}, false
	}
	rest := strings.TrimSpace(h[closeAt+1:])
	if rest != "" && !strings.HasPrefix(rest, "throws") && !strings.HasPrefix(rest, "default") {
		return model.Method{}, false
	}

	toks, ok := declTokens(before[:loc[2]])
	if !ok || len(toks) != 1 {
		return model.Method{}, false
	}
	returnType := collapseSpaces(toks[0])
	if !typeRe.MatchString(returnType) || returnType == name {
		return model.Method{}, false
	}

	return model.Method{
		Name:        name,
		Annotations: nonNil(m.annotations),
		Parameters:  parseParameters(h[open+1 : closeAt]),
		ReturnType:  returnType,
	}, true
}

func parseParameters(list string) []string {
	params := make([]string, 0)
	for _, p := range splitTopLevel(list, ',') {
		var kept []string
		for _, tok := range tokens(p) {
			if tok == "final" {
				continue
			}
			kept = append(kept, tok)
		}
		if len(kept) > 0 {
			params = append(params, collapseSpaces(strings.Join(kept, " ")))
		}
	}
	return params
}

// parseFields 将成员语句识别为字段声明 "modifier? type name (= initializer)?"，
// 支持 "int a, b = 1" 这样的多声明。
func parseFields(m rawMember) []model.Field {
	if m.hasBody {
		return nil
	}

	declarators := splitTopLevel(m.header, ',')
	first := declarators[0]
	if eq := strings.IndexByte(first, '='); eq >= 0 {
		first = first[:eq]
	}
	if strings.ContainsAny(first, "()") {
		return nil
	}

	toks, ok := declTokens(first)
	if !ok || len(toks) != 2 {
		return nil
	}
	fieldType := collapseSpaces(toks[0])
	if !typeRe.MatchString(fieldType) {
		return nil
	}

	var fields []model.Field
	addField := func(name string) {
		name = strings.TrimSuffix(strings.TrimSpace(name), "[]")
		if !identRe.MatchString(name) || keywords[name] {
			return
		}
		fields = append(fields, model.Field{Name: name, Type: fieldType, Annotations: nonNil(m.annotations)})
	}

	addField(toks[1])
	for _, d := range declarators[1:] {
		if eq := strings.IndexByte(d, '='); eq >= 0 {
			d = d[:eq]
		}
		addField(d)
	}
	return fields
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
