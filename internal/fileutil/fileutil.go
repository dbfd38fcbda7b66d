// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrAffixPathTraversal = errors.New("temp file prefix or suffix contains path separator or null byte")
	ErrNotDirectory       = errors.New("not a directory")
)

// CreateTemp creates an empty temporary file in dir named prefix*suffix.
// The file is closed before returning so an external program can write to it.
// The returned cleanup removes the file and is safe to call more than once.
func CreateTemp(dir, prefix, suffix string) (path string, cleanup func(), err error) {
	if err := validateAffix(prefix); err != nil {
		return "", nil, err
	}
	if err := validateAffix(suffix); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp(dir, prefix+"*"+suffix)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// validateAffix checks that a temp file prefix or suffix cannot escape the directory.
func validateAffix(s string) error {
	if strings.ContainsAny(s, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrAffixPathTraversal, s)
	}
	return nil
}

// CopyFile copies src to dst, keeping the permission bits and modification time.
// An existing dst is truncated.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src) // #nosec G304 -- caller validated path
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm()) // #nosec G304 -- caller validated path
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// CopyTree copies the directory src to dst. dst must not exist yet.
func CopyTree(src, dst string) error {
	if !DirExists(src) {
		return fmt.Errorf("%w: %s", ErrNotDirectory, src)
	}
	if err := os.CopyFS(dst, os.DirFS(src)); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}

// Exists returns true if anything exists at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// SameDir reports whether a and b resolve to the same directory.
// Symlinks are resolved when possible.
func SameDir(a, b string) bool {
	return resolve(a) == resolve(b)
}

func resolve(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "csc-plain" -> false (name)
//   - "./my-theme" -> true (relative path)
//   - "../shared/theme" -> true (parent path)
//   - "/absolute/theme" -> true (absolute)
//   - "sub/dir" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a remote URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
