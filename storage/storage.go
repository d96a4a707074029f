package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// Files reads and writes whole text files. Paths are used as given.
type Files struct {
	dryRun bool
}

// New creates a Files. With dryRun set, WriteText does nothing.
func New(dryRun bool) *Files {
	return &Files{dryRun: dryRun}
}

// DryRun reports whether writes are suppressed.
func (f *Files) DryRun() bool {
	return f.dryRun
}

// ReadText returns the entire contents of path.
func (f *Files) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText replaces the contents of path, keeping its permission bits.
// The data goes to a temporary file in the same directory first and is
// then renamed over path.
func (f *Files) WriteText(path, content string) error {
	if f.dryRun {
		return nil
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}

// NumberedPattern matches names of the form "<prefix>-<digits>.rc".
func NumberedPattern(prefix string) (*regexp.Regexp, error) {
	if prefix == "" {
		return nil, fmt.Errorf("empty rc file prefix")
	}
	return regexp.Compile(`^` + regexp.QuoteMeta(prefix) + `-\d+\.rc$`)
}

// ListNumbered returns the regular files in dir whose names are
// "<prefix>-<digits>.rc", sorted by path.
func (f *Files) ListNumbered(dir, prefix string) ([]string, error) {
	re, err := NumberedPattern(prefix)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !re.MatchString(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}
