package registration

import (
	"regexp"
	"strings"
)

const (
	reasonMissing = "method not found"
	reasonNested  = "method body contains a nested block"
)

// anchorPattern matches the anchor header, its body up to the first closing
// brace, and that brace, as groups 1, 2 and 3.
func anchorPattern(anchor string) *regexp.Regexp {
	return regexp.MustCompile(`(public\s+static\s+void\s+` + regexp.QuoteMeta(anchor) +
		`\s*\(\s*this\s+IServiceCollection\s+services\s*\)\s*\{)([^}]*)(\})`)
}

// locate returns the submatch indices of anchor in text, or the reason the
// anchor cannot be patched.
func locate(text, anchor string) ([]int, string) {
	loc := anchorPattern(anchor).FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, reasonMissing
	}
	if strings.Contains(text[loc[4]:loc[5]], "{") {
		return nil, reasonNested
	}
	return loc, ""
}

// insertBinding returns text with edit.Line added as the last statement of
// the anchor body. The reason is non-empty when the anchor was not patched.
func insertBinding(text string, edit Edit, nl string) (string, string) {
	loc, reason := locate(text, edit.Anchor)
	if reason != "" {
		return text, reason
	}

	bodyStart, bodyEnd := loc[4], loc[5]
	body := text[bodyStart:bodyEnd]

	headerIndent := lineIndent(text, loc[2])
	var b strings.Builder

	lastNL := strings.LastIndex(body, "\n")
	if lastNL >= 0 && strings.TrimSpace(body[lastNL+1:]) == "" {
		// Closing brace on its own line: keep its indentation.
		closing := body[lastNL+1:]
		b.WriteString(body[:lastNL+1])
		b.WriteString(statementIndent(body[:lastNL+1], closing))
		b.WriteString(edit.Line)
		b.WriteString(nl)
		b.WriteString(closing)
	} else {
		b.WriteString(strings.TrimRight(body, " \t"))
		b.WriteString(nl)
		b.WriteString(statementIndent(body, headerIndent))
		b.WriteString(edit.Line)
		b.WriteString(nl)
		b.WriteString(headerIndent)
	}

	return text[:bodyStart] + b.String() + text[bodyEnd:], ""
}

// statementIndent returns the indentation of the last non-blank line in body,
// or one level deeper than closing when the body has no statements.
func statementIndent(body, closing string) string {
	lines := strings.Split(body, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimRight(lines[i], "\r")
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		// Content on the header line has no meaningful indentation.
		if i == 0 {
			break
		}
		return line[:len(line)-len(trimmed)]
	}
	if strings.Contains(closing, "\t") {
		return closing + "\t"
	}
	return closing + "    "
}

// lineIndent returns the leading whitespace of the line containing offset.
func lineIndent(text string, offset int) string {
	start := strings.LastIndex(text[:offset], "\n") + 1
	line := text[start:offset]
	trimmed := strings.TrimLeft(line, " \t")
	return line[:len(line)-len(trimmed)]
}

// lineEnding returns "\r\n" when text uses CRLF line endings, else "\n".
func lineEnding(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
