package probe

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/conn-castle/toolstrap/internal/pathenv"
)

var (
	osStat  = os.Stat
	hostOS  = runtime.GOOS
	getenvs = os.Getenv
)

// ResolveIn finds tool in the directories of pathValue, the way a shell with that PATH would.
func ResolveIn(pathValue string, tool string) (string, bool) {
	syntax := pathenv.SyntaxFor(hostOS)
	for _, dir := range syntax.Split(pathValue) {
		dir = syntax.Clean(dir)
		for _, name := range candidateNames(tool) {
			candidate := filepath.Join(dir, name)
			if isExecutable(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

func candidateNames(tool string) []string {
	if hostOS != "windows" || filepath.Ext(tool) != "" {
		return []string{tool}
	}
	exts := getenvs("PATHEXT")
	if exts == "" {
		exts = ".COM;.EXE;.BAT;.CMD"
	}
	names := []string{}
	for _, ext := range strings.Split(exts, ";") {
		if ext = strings.TrimSpace(ext); ext != "" {
			names = append(names, tool+strings.ToLower(ext))
		}
	}
	return names
}

func isExecutable(path string) bool {
	info, err := osStat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if hostOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
