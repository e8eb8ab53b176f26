package generation

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
)

// RedirectPath returns the HTML stub written beside a source file.
func RedirectPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".html"
}

// RedirectHTML returns a document that immediately forwards to url.
func RedirectHTML(url string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta http-equiv="refresh" content="0;url=%s"></head>
</html>`, html.EscapeString(url))
}

// WriteRedirect writes the redirect stub for src and returns its path.
func WriteRedirect(src, url string) (string, error) {
	path := RedirectPath(src)
	if err := os.WriteFile(path, []byte(RedirectHTML(url)), 0644); err != nil { //nolint:gosec // stub is meant to be readable
		return "", fmt.Errorf("writing redirect file: %w", err)
	}
	return path, nil
}
