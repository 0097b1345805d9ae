package project

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/conneroisu/starter/internal/errors"
)

// projectTable mirrors the part of the metadata file that is rewritten.
type projectTable struct {
	Project struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
	} `toml:"project"`
}

// ReadProjectMetadata decodes name and description from the [project] table.
func ReadProjectMetadata(content []byte) (name, description string, err error) {
	var doc projectTable
	if err := toml.Unmarshal(content, &doc); err != nil {
		return "", "", unexpectedFormat("metadata file is not valid TOML", err)
	}

	return doc.Project.Name, doc.Project.Description, nil
}

// RewriteProjectMetadata sets name and description in the [project] table.
// Only the two value tokens change; keys, spacing, trailing comments, other
// fields and other tables are kept byte for byte. A missing description is
// inserted right after name. The result is decoded again and must carry the
// requested values.
func RewriteProjectMetadata(content []byte, name, description string) ([]byte, bool, error) {
	lines := splitLines(content)

	inProject := false
	foundTable := false
	nameLine, descLine := -1, -1

	for i, line := range lines {
		trimmed := strings.TrimSpace(string(line))

		if strings.HasPrefix(trimmed, "[") {
			inProject = tableName(trimmed) == "project"
			if inProject {
				if foundTable {
					return nil, false, unexpectedFormat("[project] table declared twice", nil)
				}
				foundTable = true
			}
			continue
		}

		if !inProject {
			continue
		}

		switch assignmentKey(trimmed) {
		case "name":
			if nameLine < 0 {
				nameLine = i
			}
		case "description":
			if descLine < 0 {
				descLine = i
			}
		}
	}

	if !foundTable {
		return nil, false, unexpectedFormat("no [project] table found", nil)
	}
	if nameLine < 0 {
		return nil, false, unexpectedFormat("[project] table has no name field", nil)
	}

	newName, err := replaceValue(lines[nameLine], name)
	if err != nil {
		return nil, false, err
	}
	lines[nameLine] = newName

	if descLine >= 0 {
		newDesc, err := replaceValue(lines[descLine], description)
		if err != nil {
			return nil, false, err
		}
		lines[descLine] = newDesc
	} else {
		inserted := insertedDescription(lines[nameLine], description)
		lines = append(lines[:nameLine+1], append([][]byte{inserted}, lines[nameLine+1:]...)...)
	}

	updated := bytes.Join(lines, nil)

	gotName, gotDesc, err := ReadProjectMetadata(updated)
	if err != nil {
		return nil, false, err
	}
	if gotName != name || gotDesc != description {
		return nil, false, unexpectedFormat("rewritten metadata does not decode to the requested values", nil)
	}

	return updated, !bytes.Equal(updated, content), nil
}

// splitLines splits content after each '\n', keeping the terminators.
func splitLines(content []byte) [][]byte {
	var lines [][]byte
	for len(content) > 0 {
		i := bytes.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, append([]byte(nil), content...))
			break
		}
		lines = append(lines, append([]byte(nil), content[:i+1]...))
		content = content[i+1:]
	}

	return lines
}

// tableName returns the name of a standard table header, or "" for array
// tables and malformed headers.
func tableName(header string) string {
	if strings.HasPrefix(header, "[[") {
		return ""
	}
	end := strings.IndexByte(header, ']')
	if end < 0 {
		return ""
	}

	return strings.TrimSpace(header[1:end])
}

// assignmentKey returns the bare key of a "key = value" line.
func assignmentKey(line string) string {
	eq := strings.IndexByte(line, '=')
	if eq <= 0 || strings.HasPrefix(line, "#") {
		return ""
	}

	key := strings.TrimSpace(line[:eq])
	if len(key) >= 2 && (key[0] == '"' || key[0] == '\'') && key[len(key)-1] == key[0] {
		key = key[1 : len(key)-1]
	}

	return key
}

// replaceValue swaps the string value on an assignment line.
func replaceValue(line []byte, value string) ([]byte, error) {
	s := string(line)
	eq := strings.IndexByte(s, '=')

	rest := s[eq+1:]
	valueStart := eq + 1 + (len(rest) - len(strings.TrimLeft(rest, " \t")))
	token := s[valueStart:]

	var valueEnd int
	switch {
	case strings.HasPrefix(token, `"""`), strings.HasPrefix(token, `'''`):
		return nil, unexpectedFormat("multi-line string values are not supported", nil)
	case strings.HasPrefix(token, `"`):
		end := closingQuote(token)
		if end < 0 {
			return nil, unexpectedFormat("unterminated string value", nil)
		}
		valueEnd = valueStart + end + 1
	case strings.HasPrefix(token, `'`):
		end := strings.IndexByte(token[1:], '\'')
		if end < 0 {
			return nil, unexpectedFormat("unterminated string value", nil)
		}
		valueEnd = valueStart + end + 2
	default:
		return nil, unexpectedFormat("value is not a string", nil)
	}

	return []byte(s[:valueStart] + QuoteTOML(value) + s[valueEnd:]), nil
}

// closingQuote returns the index of the quote closing a basic string that
// starts at token[0].
func closingQuote(token string) int {
	for i := 1; i < len(token); i++ {
		switch token[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}

	return -1
}

func insertedDescription(nameLine []byte, description string) []byte {
	s := string(nameLine)
	indent := s[:len(s)-len(strings.TrimLeft(s, " \t"))]

	eol := "\n"
	switch {
	case strings.HasSuffix(s, "\r\n"):
		eol = "\r\n"
	case !strings.HasSuffix(s, "\n"):
		// name was the last line without a terminator; give it one first.
		eol = ""
	}

	line := indent + "description = " + QuoteTOML(description)
	if eol == "" {
		return []byte("\n" + line)
	}

	return []byte(line + eol)
}

// QuoteTOML renders s as a TOML basic string.
func QuoteTOML(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case utf8.RuneError:
			b.WriteString(`�`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')

	return b.String()
}

func unexpectedFormat(message string, cause error) *errors.StarterError {
	return errors.NewIOError(errors.ErrCodeUnexpectedFormat, message, cause)
}
