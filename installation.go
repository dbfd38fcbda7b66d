package slidefactory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-slidefactory/internal/fileutil"
)

// DefaultSharedRoot is where the container image installs slidefactory.
// An installation there is shared and read-only.
const DefaultSharedRoot = "/slidefactory"

// Installation is a slidefactory root directory holding the built-in themes
// and the bundled copies of reveal.js, MathJax and the fonts.
type Installation struct {
	// Root is the absolute installation directory.
	Root string
	// Shared is true when Root is the shared container installation.
	// Shared installations serve built-in theme stylesheets from the CDN
	// and cannot produce html-local output.
	Shared bool
}

// NewInstallation validates root and decides whether it is the shared
// installation. An empty sharedRoot means DefaultSharedRoot.
func NewInstallation(root, sharedRoot string) (*Installation, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !fileutil.DirExists(abs) {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidRoot, abs)
	}

	if sharedRoot == "" {
		sharedRoot = DefaultSharedRoot
	}
	sharedAbs, err := filepath.Abs(sharedRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: shared root: %v", ErrInvalidRoot, err)
	}

	return &Installation{Root: abs, Shared: filepath.Clean(abs) == filepath.Clean(sharedAbs)}, nil
}

// ExecutableRoot returns the directory of the running binary, the last
// fallback for the installation root.
func ExecutableRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// ThemeRoot is the directory of the built-in themes.
func (i *Installation) ThemeRoot() string {
	return filepath.Join(i.Root, "theme")
}

// RevealJSDir is the bundled reveal.js distribution.
func (i *Installation) RevealJSDir() string {
	return filepath.Join(i.Root, "reveal.js-"+RevealJSVersion)
}

// MathJaxScript is the bundled MathJax entry script.
func (i *Installation) MathJaxScript() string {
	return filepath.Join(i.Root, "MathJax-"+MathJaxVersion, "es5", "tex-chtml-full.js")
}

// FontsStylesheet is the bundled font stylesheet.
func (i *Installation) FontsStylesheet() string {
	return filepath.Join(i.Root, "fonts", "fonts.css")
}

// MissingLocalAssets lists the bundled asset paths that do not exist.
func (i *Installation) MissingLocalAssets() []string {
	var missing []string
	if !fileutil.DirExists(i.RevealJSDir()) {
		missing = append(missing, i.RevealJSDir())
	}
	for _, p := range []string{i.MathJaxScript(), i.FontsStylesheet()} {
		if !fileutil.FileExists(p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// HasLocalAssets reports whether every bundled asset is present.
func (i *Installation) HasLocalAssets() bool {
	return len(i.MissingLocalAssets()) == 0
}
