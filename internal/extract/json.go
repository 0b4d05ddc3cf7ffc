// Package extract pulls the JSON payload out of a raw LLM completion and
// cleans up pasted input before it reaches the prompt.
package extract

import "errors"

// ErrNoJSON indicates the completion contains no JSON object at all
var ErrNoJSON = errors.New("no valid JSON found in response")

// JSON locates the substring of a completion that constitutes a JSON object,
// tolerating conversational wrapper text before and after it. It scans for the
// brace that balances the first "{", ignoring braces inside string literals.
// If the object never closes (truncated completion), it falls back to the span
// from the first "{" to the last "}" in the text.
func JSON(text string) (string, error) {
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == '{' {
			start = i
			break
		}
	}
	if start == -1 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	// Unbalanced: take everything up to the last closing brace
	end := -1
	for i := len(text) - 1; i > start; i-- {
		if text[i] == '}' {
			end = i
			break
		}
	}
	if end == -1 {
		return "", ErrNoJSON
	}
	return text[start : end+1], nil
}
