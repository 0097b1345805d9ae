package project

import (
	"bytes"
	"strings"
)

// RewriteTitle replaces the first first-level heading of a Markdown document
// with "# name". Every other byte, line endings included, is preserved. When
// the document has no such heading the title is prepended. Headings inside
// fenced code blocks are ignored.
func RewriteTitle(content []byte, name string) ([]byte, bool) {
	title := "# " + name

	if len(content) == 0 {
		return []byte(title + "\n"), true
	}

	// Opening fence of the current code block, "" outside one.
	fence := ""
	offset := 0
	for offset < len(content) {
		end := bytes.IndexByte(content[offset:], '\n')
		lineEnd := len(content)
		next := len(content)
		if end >= 0 {
			lineEnd = offset + end
			next = lineEnd + 1
		}

		line := strings.TrimSuffix(string(content[offset:lineEnd]), "\r")
		trimmed := strings.TrimLeft(line, " ")
		indent := len(line) - len(trimmed)

		if indent < 4 && fence != "" {
			if closesFence(trimmed, fence) {
				fence = ""
			}
		} else if indent < 4 && fenceMarker(trimmed) != "" {
			fence = fenceMarker(trimmed)
		} else if fence == "" && indent < 4 && isLevelOneHeading(trimmed) {
			if line == title {
				return content, false
			}

			// Keep the original "\r" if the line had one.
			tail := content[offset+len(line) : len(content)]
			out := make([]byte, 0, len(content)+len(title))
			out = append(out, content[:offset]...)
			out = append(out, title...)
			out = append(out, tail...)
			return out, true
		}

		offset = next
	}

	out := make([]byte, 0, len(content)+len(title)+2)
	out = append(out, title...)
	out = append(out, '\n', '\n')
	out = append(out, content...)
	return out, true
}

// fenceMarker returns the run of backticks or tildes opening a code fence.
func fenceMarker(line string) string {
	if line == "" || (line[0] != '`' && line[0] != '~') {
		return ""
	}
	n := len(line) - len(strings.TrimLeft(line, line[:1]))
	if n < 3 {
		return ""
	}

	return line[:n]
}

// closesFence reports whether line ends the block opened by fence: the same
// character, at least as many times, and nothing else.
func closesFence(line, fence string) bool {
	marker := fenceMarker(line)
	if marker == "" || marker[0] != fence[0] || len(marker) < len(fence) {
		return false
	}

	return strings.TrimSpace(line[len(marker):]) == ""
}

func isLevelOneHeading(line string) bool {
	return line == "#" || strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "#\t")
}

// NewReadme renders the minimal README written when the template has none.
func NewReadme(name, description string) []byte {
	var b strings.Builder
	b.WriteString("# " + name + "\n")
	if description != "" {
		b.WriteString("\n## Overview\n\n")
		b.WriteString(description + "\n")
	}

	return []byte(b.String())
}
