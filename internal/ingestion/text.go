package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`\s+`)
	blankRunsRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans extracted résumé text while preserving its line structure.
// Scoring applies its own normalization; this only makes stored and printed text tidy.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	// PDF extraction emits form feeds between pages
	content = strings.ReplaceAll(content, "\f", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankRunsRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner whitespace but keeps bullets and headings recognisable
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	content := innerSpace.ReplaceAllString(trimmed, " ")
	if isBulletLine(trimmed) {
		return content
	}
	if indent := len(line) - len(trimmed); indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "· ")
}
