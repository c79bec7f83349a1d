package pathenv

import (
	"errors"
	"io/fs"
	"os"
)

var osStat = os.Stat

// Entry is one analyzed PATH entry.
type Entry struct {
	Index       int    `json:"index" yaml:"index"`
	Value       string `json:"value" yaml:"value"`
	IsDuplicate bool   `json:"duplicate,omitempty" yaml:"duplicate,omitempty"`
	DuplicateOf int    `json:"duplicate_of,omitempty" yaml:"duplicate_of,omitempty"`
	Missing     bool   `json:"missing,omitempty" yaml:"missing,omitempty"`
	NotDir      bool   `json:"not_dir,omitempty" yaml:"not_dir,omitempty"`
}

// Analyze splits value and flags duplicates (by normalized entry) and entries that do not name an
// existing directory. Indices are zero-based positions among the non-empty entries.
func Analyze(syntax Syntax, value string) []Entry {
	raw := syntax.Split(value)
	entries := make([]Entry, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for i, item := range raw {
		entry := Entry{Index: i, Value: item}
		key := syntax.Normalize(item)
		if first, ok := seen[key]; ok {
			entry.IsDuplicate = true
			entry.DuplicateOf = first
		} else {
			seen[key] = i
		}
		info, err := osStat(expandValue(syntax.Clean(item)))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			entry.Missing = true
		case err == nil && !info.IsDir():
			entry.NotDir = true
		}
		entries = append(entries, entry)
	}
	return entries
}
