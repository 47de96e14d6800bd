package assembler

import "strings"

// token is one mnemonic or operand together with its character offset in the
// raw source line, so diagnostics can point at the exact text that caused
// them.
type token struct {
	text string
	pos  int
}

func (t token) rangeOn(line int) TextRange {
	return TextRange{
		Start: TextPosition{Line: line, Char: t.pos},
		End:   TextPosition{Line: line, Char: t.pos + len(t.text)},
	}
}

// normalizedLine is the canonical form of one source line: an optional label
// and the instruction tokens, with the comment, commas and base-register
// parentheses stripped away.
type normalizedLine struct {
	label      token
	hasLabel   bool
	labelError string // non-empty when the label spelling is rejected
	tokens     []token
}

func (n normalizedLine) empty() bool { return len(n.tokens) == 0 }

func checkLabelName(name string) (bool, string) {
	if len(name) == 0 {
		return false, "label names must not be empty"
	}
	for _, char := range name {
		if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') || char == '_') {
			return false, "label names must only contain alphanumeric characters and underscores"
		}
	}
	return true, ""
}

// normalizeLine produces the canonical token stream for one raw source line.
// Every rewrite replaces exactly one character with a space, so token
// positions always index into the original text. Both passes normalize the
// same way, which is what keeps their instruction counts aligned.
func normalizeLine(raw string) normalizedLine {
	buf := []byte(raw)

	// the comment runs from the first '#' to end of line
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		buf = buf[:idx]
	}

	var out normalizedLine

	// everything before the first ':' is the label
	if idx := indexByte(buf, ':'); idx >= 0 {
		start := 0
		for start < idx && (buf[start] == ' ' || buf[start] == '\t') {
			start++
		}
		name := strings.TrimSpace(string(buf[start:idx]))
		out.hasLabel = true
		out.label = token{text: name, pos: start}
		if ok, reason := checkLabelName(name); !ok {
			out.labelError = reason
		}
		for i := 0; i <= idx; i++ {
			buf[i] = ' '
		}
	}

	// commas separate operands, parentheses wrap the base register of a
	// load/store; all of them become token boundaries
	for i, c := range buf {
		if c == ',' || c == '(' || c == ')' || c == '\t' || c == '\r' {
			buf[i] = ' '
		}
	}

	out.tokens = splitTokens(string(buf))
	return out
}

func indexByte(b []byte, c byte) int {
	for i := range b {
		if b[i] == c {
			return i
		}
	}
	return -1
}

func splitTokens(s string) []token {
	var tokens []token
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, token{text: s[start:i], pos: start})
			start = -1
		}
	}
	return tokens
}
