package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the namespace used for sandboxed data directories.
const DevDirName = "lummu-dev"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}

	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveDataPath determines the actual data directory based on safety rules.
// When forceTemp is set, the path is re-rooted under the system temp directory
// so a development run never touches the user's real notes.
func ResolveDataPath(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	// Paths already inside the temp root (t.TempDir()) are trusted as is.
	cleanUserPath := filepath.Clean(userPath)
	if userPath != "" {
		rel, err := filepath.Rel(os.TempDir(), cleanUserPath)
		if err == nil && !strings.HasPrefix(rel, "..") {
			return cleanUserPath
		}
	}

	subName := "default"
	if userPath != "" && userPath != "." && userPath != "./" {
		subName = filepath.Base(cleanUserPath)
		if subName == "." || subName == string(os.PathSeparator) {
			subName = "default"
		}
	}

	return filepath.Join(os.TempDir(), DevDirName, subName)
}
