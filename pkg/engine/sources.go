package engine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/stylewalk/pkg/parser"
)

// LoadSources reads the given files, and every supported file below the
// given directories. Discovery skips vendored and dot directories as well as
// binary files. Files named explicitly are read even when their language is
// not detected, so the run reports them.
func LoadSources(paths []string) ([]Source, error) {
	var sources []Source

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("load sources: %w", err)
		}

		if !info.IsDir() {
			src, readErr := readSource(root)
			if readErr != nil {
				return nil, readErr
			}

			sources = append(sources, src)

			continue
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			if entry.IsDir() {
				if path != root && skipDir(root, path, entry.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if _, detectErr := parser.Detect(path, nil); detectErr != nil {
				return nil //nolint:nilerr // unsupported files are ignored during discovery.
			}

			src, readErr := readSource(path)
			if readErr != nil {
				return readErr
			}

			if !enry.IsBinary(src.Content) {
				sources = append(sources, src)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("load sources: %w", err)
		}
	}

	return sources, nil
}

func skipDir(root, path, name string) bool {
	if len(name) > 1 && name[0] == '.' {
		return true
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return enry.IsVendor(filepath.ToSlash(rel) + "/")
}

func readSource(path string) (Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", path, err)
	}

	return Source{Name: path, Content: content}, nil
}
