package markdown

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Extensions accepted as presentation sources.
var Extensions = []string{".md", ".markdown", ".txt"}

var (
	// ErrNotFound is returned when the source file does not exist.
	ErrNotFound = errors.New("markdown file not found")
	// ErrWrongType is returned for files without a markdown extension.
	ErrWrongType = errors.New("expected markdown file")
)

// ReadFile returns the contents of a markdown source file.
func ReadFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if info.IsDir() || !lo.Contains(Extensions, ext) {
		if ext == "" {
			ext = "(no extension)"
		}
		return "", fmt.Errorf("%w, got: %s", ErrWrongType, ext)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is the CLI argument
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// PrepareContent returns the text submitted for generation. A leading
// metadata block is dropped and the title is added as a level-one heading
// unless the body already opens with one. "---" card breaks are preserved.
func PrepareContent(content, title string) string {
	body := StripFrontmatter(content)
	if title == "" || strings.HasPrefix(strings.TrimSpace(body), "# ") {
		return body
	}
	return "# " + title + "\n\n" + body
}

// CountCards returns how many cards a document splits into when "---" lines
// are used as card breaks. Breaks inside fenced code do not count.
func CountCards(content string) int {
	body := strings.TrimSpace(StripFrontmatter(content))
	if body == "" {
		return 0
	}

	cards := 1
	inFence := false
	nonEmpty := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}
		if !inFence && trimmed == "---" {
			if nonEmpty {
				cards++
				nonEmpty = false
			}
			continue
		}
		if trimmed != "" {
			nonEmpty = true
		}
	}
	if !nonEmpty {
		cards--
	}
	return cards
}
