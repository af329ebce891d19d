package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"chainalign/internal/config"
)

// ListFiles returns the sorted list of files under root selected by m.
// A root that is a file is returned as is: explicit paths are always checked.
func ListFiles(root string, m *config.Matcher) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && m.SkipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && m.Match(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
