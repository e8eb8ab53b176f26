package markdown

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// maxLineTitleLen bounds the first-line heuristic; longer lines are prose.
const maxLineTitleLen = 100

var (
	frontmatterRe = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n|\z)`)
	titleLineRe   = regexp.MustCompile(`(?m)^title:\s*["']?(.+?)["']?\s*$`)
)

// ExtractTitle returns the presentation title found in content.
// The second return value is false when no tier matched.
func ExtractTitle(content string) (string, bool) {
	block, body, hasBlock := splitFrontmatter(content)
	if hasBlock {
		if title, ok := frontmatterTitle(block); ok {
			return title, true
		}
	}

	if title, ok := headingTitle(body); ok {
		return title, true
	}

	return firstLineTitle(body)
}

// splitFrontmatter separates a leading ----delimited metadata block from the
// rest of the document.
func splitFrontmatter(content string) (block, body string, ok bool) {
	loc := frontmatterRe.FindStringSubmatchIndex(content)
	if loc == nil {
		return "", content, false
	}
	return content[loc[2]:loc[3]], content[loc[1]:], true
}

// StripFrontmatter removes a leading metadata block, if any.
func StripFrontmatter(content string) string {
	_, body, _ := splitFrontmatter(content)
	return body
}

// frontmatterTitle reads the title field from a metadata block. The block is
// parsed as YAML; when it is not valid YAML a line scan is used instead.
func frontmatterTitle(block string) (string, bool) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err == nil &&
		len(doc.Content) > 0 && doc.Content[0].Kind == yaml.MappingNode {
		m := doc.Content[0]
		for i := 0; i+1 < len(m.Content); i += 2 {
			if m.Content[i].Value != "title" || m.Content[i+1].Kind != yaml.ScalarNode {
				continue
			}
			if title := cleanTitle(m.Content[i+1].Value); title != "" {
				return title, true
			}
		}
		return "", false
	}

	if match := titleLineRe.FindStringSubmatch(block); match != nil {
		if title := cleanTitle(match[1]); title != "" {
			return title, true
		}
	}
	return "", false
}

func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// headingTitle returns the text of the first "# " heading. Headings inside
// code blocks and setext headings are not considered.
func headingTitle(body string) (string, bool) {
	src := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 || h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}
		if !isATX(src, h.Lines().At(0).Start) {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		lines := h.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		if t := strings.TrimSpace(buf.String()); t != "" {
			title = t
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	return title, title != ""
}

// isATX reports whether the line containing offset starts with a '#' marker.
func isATX(src []byte, offset int) bool {
	start := bytes.LastIndexByte(src[:offset], '\n') + 1
	return strings.HasPrefix(strings.TrimLeft(string(src[start:offset]), " "), "#")
}

// firstLineTitle treats the first non-empty line as a title when it is short
// and does not read like a sentence.
func firstLineTitle(body string) (string, bool) {
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "---") {
			continue
		}
		if utf8.RuneCountInString(line) < maxLineTitleLen && !strings.HasSuffix(line, ".") {
			return line, true
		}
		break
	}
	return "", false
}

// FallbackTitle derives a title from a file name:
// "q3_roadmap_presentation.md" becomes "Q3 Roadmap".
func FallbackTitle(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.ReplaceAll(stem, "_presentation", "")
	stem = strings.TrimSpace(strings.ReplaceAll(stem, "_", " "))
	if stem == "" {
		return "Untitled"
	}
	return cases.Title(language.Und).String(stem)
}
