// Package envfile reads and patches KEY=VALUE environment files such as /etc/environment
// and systemd environment.d fragments.
package envfile

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/conn-castle/toolstrap/internal/messages"
)

// Parse reads environment file content into a key-value map.
// content is the raw file content; returns parsed key/value pairs or an error.
func Parse(content string) (map[string]string, error) {
	env := make(map[string]string)
	if content == "" {
		return env, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		if !ok {
			continue
		}
		// The first assignment wins, matching pam_env.
		if _, exists := env[key]; !exists {
			env[key] = value
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.EnvfileReadFailedFmt, err)
	}

	return env, nil
}

// Get returns the value assigned to key in content.
func Get(content string, key string) (string, bool, error) {
	env, err := Parse(content)
	if err != nil {
		return "", false, err
	}
	value, ok := env[key]
	return value, ok, nil
}

// Set rewrites the first assignment of key with value, drops any later assignments of the same key,
// and appends a new assignment when key is absent. Comments, unrelated keys and their order are kept.
func Set(content string, key string, value string) string {
	var lines []string
	if content != "" {
		lines = strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	}

	assignment := fmt.Sprintf("%s=%s", key, encodeValue(value))
	out := make([]string, 0, len(lines)+1)
	replaced := false
	for _, line := range lines {
		lineKey, _, ok, err := parseLine(line)
		if err == nil && ok && lineKey == key {
			if replaced {
				continue
			}
			out = append(out, assignment)
			replaced = true
			continue
		}
		out = append(out, line)
	}
	if !replaced {
		out = append(out, assignment)
	}
	return strings.Join(out, "\n") + "\n"
}

// parseLine parses a single line and returns key/value when present.
// line is the raw line; returns key/value, a boolean for presence, and an error for invalid syntax.
func parseLine(line string) (string, string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	if strings.HasPrefix(trimmed, "export ") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))
	}
	idx := strings.Index(trimmed, "=")
	if idx <= 0 {
		return "", "", false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	key := strings.TrimSpace(trimmed[:idx])
	if key == "" {
		return "", "", false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	value := strings.TrimSpace(trimmed[idx+1:])
	switch {
	case strings.HasPrefix(value, `"`):
		closing := findClosingDoubleQuote(value)
		if closing < 0 {
			return "", "", false, fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
		}
		if err := validateQuotedValueSuffix(value[closing+1:]); err != nil {
			return "", "", false, err
		}
		value = unescapeDoubleQuotedValue(value[1:closing])
	case strings.HasPrefix(value, `'`):
		closingOffset := strings.IndexByte(value[1:], '\'')
		if closingOffset < 0 {
			return "", "", false, fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
		}
		closing := 1 + closingOffset
		if err := validateQuotedValueSuffix(value[closing+1:]); err != nil {
			return "", "", false, err
		}
		value = value[1:closing]
	}
	return key, value, true, nil
}

// findClosingDoubleQuote returns the index of the first unescaped closing quote in value.
func findClosingDoubleQuote(value string) int {
	escaped := false
	for i := 1; i < len(value); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch value[i] {
		case '\\':
			escaped = true
		case '"':
			return i
		}
	}
	return -1
}

// validateQuotedValueSuffix allows only whitespace and a trailing comment after a quoted value.
func validateQuotedValueSuffix(suffix string) error {
	trimmed := strings.TrimSpace(suffix)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}
	return fmt.Errorf(messages.EnvfileInvalidQuotedSuffix)
}

func unescapeDoubleQuotedValue(escaped string) string {
	var b strings.Builder
	b.Grow(len(escaped))
	for i := 0; i < len(escaped); i++ {
		if escaped[i] == '\\' && i+1 < len(escaped) {
			switch escaped[i+1] {
			case '\\', '"':
				b.WriteByte(escaped[i+1])
				i++
				continue
			}
		}
		b.WriteByte(escaped[i])
	}
	return b.String()
}

// encodeValue quotes values that pam_env would otherwise split or treat as a comment.
func encodeValue(val string) string {
	if strings.ContainsAny(val, " \t#") || strings.Contains(val, "\"") {
		val = strings.ReplaceAll(val, "\\", "\\\\")
		val = strings.ReplaceAll(val, "\"", "\\\"")
		return fmt.Sprintf(`"%s"`, val)
	}
	return val
}
