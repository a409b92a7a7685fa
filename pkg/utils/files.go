package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions lists the source file extensions processed by default
var DefaultExtensions = []string{".cs"}

// skippedDirs are build output and dependency folders never worth visiting
var skippedDirs = []string{"bin", "obj", "node_modules", "packages"}

// IsSourceFile checks if a file has one of the given extensions, compared
// case-insensitively. A nil list means DefaultExtensions.
func IsSourceFile(filename string, extensions []string) bool {
	if extensions == nil {
		extensions = DefaultExtensions
	}
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(strings.ToLower(filename), strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// FindSourceFiles recursively finds all source files in a directory,
// skipping hidden directories, build output and the excluded names
func FindSourceFiles(root string, extensions, exclude []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip build output and hidden directories (but not the root directory)
		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || slices.Contains(skippedDirs, strings.ToLower(name)) || slices.Contains(exclude, name) {
				return filepath.SkipDir
			}
			return nil
		}

		if IsSourceFile(d.Name(), extensions) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
