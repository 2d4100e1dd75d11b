package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/natefinch/atomic"
)

// Globs matched against base names in a single directory.
const (
	BlotterGlob  = "[Bb]lotter-[0-9][0-9][0-9][0-9]-[01][0-9]-[0-3][0-9].md"
	StoryGlob    = "*story.md"
	PriorityGlob = "[pP]rioritized.[mM][dD]"
)

// StorySuffix is stripped from a story file name to get the story name.
const StorySuffix = ".md"

// ReadFileString returns the contents of path, or "" when it does not exist.
func ReadFileString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile replaces path with content atomically, creating parent
// directories as needed.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	_, statErr := os.Stat(path)
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	// atomic.WriteFile leaves new files with temp-file permissions.
	if errors.Is(statErr, fs.ErrNotExist) {
		if err := os.Chmod(path, 0o644); err != nil {
			return fmt.Errorf("chmod %s: %w", path, err)
		}
	}
	return nil
}

// WriteDirFile writes content to dir/name unless the file already holds
// exactly that content. It reports whether the file was written.
func WriteDirFile(content, dir, name string) (bool, error) {
	path := filepath.Join(dir, name)
	previous, err := ReadFileString(path)
	if err != nil {
		return false, err
	}
	if _, statErr := os.Stat(path); statErr == nil && previous == content {
		return false, nil
	}
	if err := WriteFile(path, content); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFile deletes path if it exists.
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// FileNamesByPattern returns the regular files directly in dir whose base
// name matches glob, sorted by name. A missing directory yields no files.
func FileNamesByPattern(dir, glob string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, nil
	}
	names, err := doublestar.Glob(os.DirFS(dir), glob)
	if err != nil {
		return nil, fmt.Errorf("glob %q in %s: %w", glob, dir, err)
	}
	sort.Strings(names)
	var files []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// MoveFiles moves each file into targetDir, keeping its base name. Files on
// another file system are copied and then removed.
func MoveFiles(targetDir string, paths []string) error {
	info, err := os.Stat(targetDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("move target %s: %w", targetDir, ErrNotDirectory)
	}
	for _, src := range paths {
		dst := filepath.Join(targetDir, filepath.Base(src))
		if err := os.Rename(src, dst); err == nil {
			continue
		}
		content, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("move %s: %w", src, err)
		}
		if err := WriteFile(dst, string(content)); err != nil {
			return fmt.Errorf("move %s: %w", src, err)
		}
		if err := os.Remove(src); err != nil {
			return fmt.Errorf("move %s: %w", src, err)
		}
	}
	return nil
}
