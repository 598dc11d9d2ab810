package annotated

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_PreservesOffsets(t *testing.T) {
	src := "int a; // @Foo\nString s = \"@Bar;{\"; /* @Baz\n */ char c = '{';\nString t = \"\"\"\n@Qux\n\"\"\";"
	clean := sanitize(src)

	assert.Len(t, clean, len(src))
	assert.Equal(t, 6, len(splitLines(clean)))
	assert.NotContains(t, clean, "@")
	assert.NotContains(t, clean, "{")
	assert.Contains(t, clean, "int a;")
}

func splitLines(s string) []string {
	var lines []string
	last := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[last:i])
			last = i + 1
		}
	}
	return append(lines, s[last:])
}

func TestScanAnnotation(t *testing.T) {
	tests := []struct {
		src  string
		name string
		end  int
		ok   bool
	}{
		{"@Autowired private", "Autowired", 10, true},
		{"@GetMapping(value = (1)) x", "GetMapping", 24, true},
		{"@javax.persistence.Entity ", "Entity", 25, true},
		{"@interface Foo", "", 1, false},
		{"@ 1", "", 1, false},
	}
	for _, tt := range tests {
		name, end, ok := scanAnnotation(tt.src, 0)
		assert.Equal(t, tt.ok, ok, tt.src)
		assert.Equal(t, tt.name, name, tt.src)
		assert.Equal(t, tt.end, end, tt.src)
	}
}

func TestTokens_GenericAware(t *testing.T) {
	assert.Equal(t, []string{"private", "Map<String, Long>", "m"}, tokens("private Map<String,\nLong> m"))
	assert.Equal(t, []string{"a", "b"}, splitTopLevel("a,b", ','))
	assert.Equal(t, []string{"Map<K, V>", " x"}, splitTopLevel("Map<K, V>, x", ','))
}

func TestScanMembers_AnnotationPositions(t *testing.T) {
	body := `
    @Autowired
    private A a;
    private B b = new B() { void run() {} };
    @Bean
    public C c(@Qualifier("x") D d) { return null; }
    @Deprecated int e;
`
	members := scanMembers(sanitize(body))
	if assert.Len(t, members, 4) {
		assert.Equal(t, []string{"Autowired"}, members[0].annotations)
		assert.Nil(t, members[1].annotations)
		assert.False(t, members[1].hasBody, "匿名类体属于初始化表达式")
		assert.Equal(t, []string{"Bean"}, members[2].annotations)
		assert.True(t, members[2].hasBody)
		assert.Equal(t, []string{"Deprecated"}, members[3].annotations)
	}
}
