package software

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-theft-auto/lchart"
)

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	mainDecl     = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)\s*\{`)
	attributeRe  = regexp.MustCompile(`(?m)^\s*attribute\s+(\w+)\s+(\w+)\s*;`)
	uniformRe    = regexp.MustCompile(`(?m)^\s*uniform\s+(\w+)\s+(\w+)\s*;`)
	fragColorRe  = regexp.MustCompile(`gl_FragColor\s*=\s*vec4\s*\(([^()]*)\)\s*;`)
)

// declaration is a top-level attribute or uniform.
type declaration struct {
	typ  string
	name string
}

// compiledShader is what the software pipeline keeps of a shader: its
// interface and, for fragment shaders, a constant output color.
type compiledShader struct {
	kind       lchart.ShaderKind
	attributes []declaration
	uniforms   []declaration
	color      color.NRGBA
}

// parseShader checks source for the structure a GLSL 1.x shader must have
// and extracts its declarations. Errors read like a driver info log.
func parseShader(kind lchart.ShaderKind, source string) (*compiledShader, error) {
	src := blockComment.ReplaceAllString(source, "")
	src = lineComment.ReplaceAllString(src, "")
	src = stripPreprocessor(src)

	if err := checkBalanced(src); err != nil {
		return nil, err
	}
	if !mainDecl.MatchString(src) {
		return nil, fmt.Errorf("ERROR: 0:0: missing entry point 'void main()'")
	}

	sh := &compiledShader{kind: kind, color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	for _, m := range attributeRe.FindAllStringSubmatch(src, -1) {
		sh.attributes = append(sh.attributes, declaration{typ: m[1], name: m[2]})
	}
	for _, m := range uniformRe.FindAllStringSubmatch(src, -1) {
		sh.uniforms = append(sh.uniforms, declaration{typ: m[1], name: m[2]})
	}

	switch kind {
	case lchart.VertexShader:
		if !strings.Contains(src, "gl_Position") {
			return nil, fmt.Errorf("ERROR: 0:0: vertex shader never writes gl_Position")
		}
	case lchart.FragmentShader:
		if len(sh.attributes) > 0 {
			return nil, fmt.Errorf("ERROR: 0:0: 'attribute' : not supported in fragment shaders")
		}
		if !strings.Contains(src, "gl_FragColor") {
			return nil, fmt.Errorf("ERROR: 0:0: fragment shader never writes gl_FragColor")
		}
		if m := fragColorRe.FindStringSubmatch(src); m != nil {
			if c, ok := parseVec4(m[1]); ok {
				sh.color = c
			}
		}
	}
	return sh, nil
}

// stripPreprocessor drops directive lines. Conditional blocks are kept.
func stripPreprocessor(src string) string {
	lines := strings.Split(src, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func checkBalanced(src string) error {
	pairs := map[rune]rune{'}': '{', ')': '(', ']': '['}
	var stack []rune
	line := 1
	for _, r := range src {
		switch r {
		case '\n':
			line++
		case '{', '(', '[':
			stack = append(stack, r)
		case '}', ')', ']':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return fmt.Errorf("ERROR: 0:%d: syntax error, unexpected '%c'", line, r)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("ERROR: 0:%d: syntax error, unexpected end of file", line)
	}
	return nil
}

// parseVec4 reads four float literals as a normalized color.
func parseVec4(args string) (color.NRGBA, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 4 {
		return color.NRGBA{}, false
	}
	var c [4]uint8
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return color.NRGBA{}, false
		}
		v = min(max(v, 0), 1)
		c[i] = uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, true
}
