package utils

import (
	"os"
	"path/filepath"
)

// FindUp searches start and its parent directories for the first file whose
// base name is one of names. start may be a file or a directory. It returns
// the path of the file found, or false when the filesystem root is reached.
func FindUp(start string, names ...string) (string, bool) {
	absPath, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}

	dir := absPath
	if isDir, err := IsDirectory(absPath); err != nil || !isDir {
		dir = filepath.Dir(absPath)
	}

	for {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
