package email

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	policyOnce   sync.Once

	lineBreakRegex  = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockCloseRegex = regexp.MustCompile(`(?i)</(p|h[1-6]|div|li)>|<hr\s*/?>`)
	blankLinesRegex = regexp.MustCompile(`\n{3,}`)
)

// PlainText renders an HTML body as readable text for the text/plain part.
func PlainText(body string) string {
	policyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})

	body = lineBreakRegex.ReplaceAllString(body, "\n")
	body = blockCloseRegex.ReplaceAllString(body, "\n\n")
	text := html.UnescapeString(strictPolicy.Sanitize(body))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = blankLinesRegex.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}
