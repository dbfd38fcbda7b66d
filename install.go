package slidefactory

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-slidefactory/internal/fileutil"
)

// InstallOptions describe copying an installation to a new location.
type InstallOptions struct {
	// Source is the installation to copy.
	Source *Installation
	// Target must not exist yet.
	Target string
	DryRun bool
	Logger Logger
}

// rewriteExtensions are the text files that may embed the installation
// root, as a path or inside a file:// URL.
var rewriteExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".css":  true,
	".html": true,
}

// Install copies the source installation to Target and rewrites references
// to the old root inside theme and asset text files so the copy is
// self-contained. It returns the absolute target.
func Install(opts InstallOptions) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	if opts.Source == nil {
		return "", fmt.Errorf("%w: no source installation", ErrInvalidRoot)
	}
	if opts.Target == "" {
		return "", fmt.Errorf("%w: empty installation path", ErrInvalidRoot)
	}
	if fileutil.Exists(opts.Target) {
		return "", fmt.Errorf("%w: %s", ErrInstallTargetExists, opts.Target)
	}

	target, err := filepath.Abs(opts.Target)
	if err != nil {
		return "", err
	}

	if rel, err := filepath.Rel(opts.Source.Root, target); err == nil && !strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %s is inside %s", ErrInvalidRoot, target, opts.Source.Root)
	}

	logger.Info(fmt.Sprintf("Copy %s to %s", opts.Source.Root, target))
	if opts.DryRun {
		return target, nil
	}

	if err := fileutil.CopyTree(opts.Source.Root, target); err != nil {
		return "", fmt.Errorf("copying installation: %w", err)
	}
	if err := rewriteRoot(target, opts.Source.Root, logger); err != nil {
		return "", err
	}
	return target, nil
}

// rewriteRoot replaces oldRoot by root in the text files under root.
func rewriteRoot(root, oldRoot string, logger Logger) error {
	oldEscaped, newEscaped := escapedPath(oldRoot), escapedPath(root)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !rewriteExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		data, err := os.ReadFile(path) // #nosec G304 -- walking our own copy
		if err != nil {
			return err
		}
		text := string(data)
		out := replacePath(text, oldEscaped, newEscaped)
		if oldEscaped != oldRoot {
			out = replacePath(out, oldRoot, root)
		}
		if out == text {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		logger.Verbose("rewrite " + path)
		return os.WriteFile(path, []byte(out), info.Mode().Perm())
	})
}

// replacePath replaces the occurrences of oldPath in s that stand for the
// whole path: not preceded by a path character (a file:// prefix is fine)
// and followed by a separator, a quote, whitespace, ')' or the end of s.
// "/opt/sf" leaves "/opt/sf2" alone, "/slidefactory" leaves
// ".../csc-training/slidefactory@3.4.0/..." alone.
func replacePath(s, oldPath, newPath string) string {
	if oldPath == "" {
		return s
	}
	var b strings.Builder
	last := 0
	for i := 0; i <= len(s)-len(oldPath); {
		j := strings.Index(s[i:], oldPath)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(oldPath)
		if pathStartsAt(s, start) && pathEndsAt(s, end) {
			b.WriteString(s[last:start])
			b.WriteString(newPath)
			last = end
		}
		i = end
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

func pathStartsAt(s string, i int) bool {
	if i == 0 || strings.HasSuffix(s[:i], "file://") || strings.HasSuffix(s[:i], "file:///") {
		return true
	}
	return !isPathChar(s[i-1])
}

func pathEndsAt(s string, i int) bool {
	if i == len(s) {
		return true
	}
	return strings.IndexByte("/\"' \t\r\n)", s[i]) >= 0
}

func isPathChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("._~%-/@:", c) >= 0
}

// escapedPath is the percent-escaped form of p as it appears in file URLs.
func escapedPath(p string) string {
	u := url.URL{Path: filepath.ToSlash(p)}
	return u.EscapedPath()
}
