package pathenv

import (
	"runtime"
	"strings"
)

// Syntax describes how a PATH value is delimited and how entries compare.
type Syntax struct {
	// Separator delimits entries (";" on Windows, ":" elsewhere).
	Separator string
	// DirSeparators lists characters that may end a directory entry.
	DirSeparators string
	// FoldCase compares entries case-insensitively.
	FoldCase bool
}

var (
	// UnixSyntax is the syntax of POSIX PATH values.
	UnixSyntax = Syntax{Separator: ":", DirSeparators: "/"}
	// WindowsSyntax is the syntax of Windows Path values.
	WindowsSyntax = Syntax{Separator: ";", DirSeparators: `\/`, FoldCase: true}
)

// SyntaxFor returns the PATH syntax of goos.
func SyntaxFor(goos string) Syntax {
	if goos == "windows" {
		return WindowsSyntax
	}
	return UnixSyntax
}

// HostSyntax returns the PATH syntax of the running platform.
func HostSyntax() Syntax {
	return SyntaxFor(runtime.GOOS)
}

// Split returns the non-empty entries of value in order.
func (s Syntax) Split(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, s.Separator)
	entries := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		entries = append(entries, part)
	}
	return entries
}

// Join concatenates entries with the separator.
func (s Syntax) Join(entries []string) string {
	return strings.Join(entries, s.Separator)
}

// Clean trims whitespace, surrounding quotes and trailing directory separators from entry.
// Roots ("/", `C:\`) are kept intact.
func (s Syntax) Clean(entry string) string {
	cleaned := strings.TrimSpace(entry)
	if len(cleaned) >= 2 && strings.HasPrefix(cleaned, `"`) && strings.HasSuffix(cleaned, `"`) {
		cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
	}
	for len(cleaned) > 1 && strings.ContainsRune(s.DirSeparators, rune(cleaned[len(cleaned)-1])) {
		if s.isVolumeRoot(cleaned) {
			break
		}
		cleaned = cleaned[:len(cleaned)-1]
	}
	return cleaned
}

// Normalize returns the comparison key of entry.
func (s Syntax) Normalize(entry string) string {
	cleaned := s.Clean(entry)
	if s.FoldCase {
		cleaned = strings.ToLower(cleaned)
	}
	return cleaned
}

// Count returns how many entries of value equal dir after normalization.
func (s Syntax) Count(value string, dir string) int {
	key := s.Normalize(dir)
	if key == "" {
		return 0
	}
	count := 0
	for _, entry := range s.Split(value) {
		if s.Normalize(entry) == key {
			count++
		}
	}
	return count
}

// Contains reports whether dir is an entry of value. Matching is whole-entry equality, never a
// substring or prefix match.
func (s Syntax) Contains(value string, dir string) bool {
	return s.Count(value, dir) > 0
}

// ValidEntry reports whether dir cleans to a single non-empty entry.
func (s Syntax) ValidEntry(dir string) bool {
	cleaned := s.Clean(dir)
	return cleaned != "" && !strings.Contains(cleaned, s.Separator)
}

// Append returns value with dir added as the last entry, or value unchanged when dir is already
// present or is not a valid entry. Existing entries, their order and their spelling are preserved.
func (s Syntax) Append(value string, dir string) (string, bool) {
	if !s.ValidEntry(dir) || s.Contains(value, dir) {
		return value, false
	}
	cleaned := s.Clean(dir)
	switch {
	case strings.TrimSpace(value) == "":
		return cleaned, true
	case strings.HasSuffix(value, s.Separator):
		return value + cleaned, true
	default:
		return value + s.Separator + cleaned, true
	}
}

// Prepend returns value with dir as the first entry, or value unchanged when dir is present or
// invalid.
func (s Syntax) Prepend(value string, dir string) (string, bool) {
	if !s.ValidEntry(dir) || s.Contains(value, dir) {
		return value, false
	}
	cleaned := s.Clean(dir)
	if strings.TrimSpace(value) == "" {
		return cleaned, true
	}
	return cleaned + s.Separator + value, true
}

func (s Syntax) isVolumeRoot(entry string) bool {
	if entry == s.DirSeparators[:1] {
		return true
	}
	return s.FoldCase && len(entry) == 3 && entry[1] == ':'
}
