package slidefactory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-slidefactory/internal/fileutil"
)

// DefaultTheme is the built-in theme used when none is configured.
const DefaultTheme = "csc-plain"

// Files every theme directory must contain.
const (
	ThemeDefaultsFile   = "defaults.yaml"
	ThemeTemplateFile   = "template.html"
	ThemeStylesheetFile = "csc.css"
)

var requiredThemeFiles = []string{ThemeDefaultsFile, ThemeTemplateFile, ThemeStylesheetFile}

// Theme is a resolved theme directory.
type Theme struct {
	Name string
	// Dir is the absolute theme directory.
	Dir string
	// IsCustom is true for themes given as a path rather than a built-in name.
	// Custom themes have no CDN copy, so their stylesheet is always local.
	IsCustom bool
}

// ResolveTheme finds the theme named by id. An id containing a path
// separator is a directory path; anything else is looked up in themeRoot.
func ResolveTheme(id, themeRoot string) (*Theme, error) {
	if id == "" {
		id = DefaultTheme
	}

	var t Theme
	if fileutil.IsFilePath(id) {
		dir, err := filepath.Abs(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrThemeNotFound, err)
		}
		if !fileutil.DirExists(dir) {
			return nil, fmt.Errorf("%w: nonexistent theme directory %s", ErrThemeNotFound, dir)
		}
		t = Theme{Name: filepath.Base(dir), Dir: dir, IsCustom: true}
	} else {
		dir := filepath.Join(themeRoot, id)
		if id == "." || id == ".." || !fileutil.DirExists(dir) {
			return nil, fmt.Errorf("%w: %q (available: %s)",
				ErrThemeNotFound, id, strings.Join(AvailableThemes(themeRoot), ", "))
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrThemeNotFound, err)
		}
		t = Theme{Name: id, Dir: abs}
	}

	for _, name := range requiredThemeFiles {
		if !fileutil.FileExists(filepath.Join(t.Dir, name)) {
			return nil, fmt.Errorf("%w: file %s missing from the theme directory %s", ErrThemeIncomplete, name, t.Dir)
		}
	}

	return &t, nil
}

// AvailableThemes returns the sorted names of sub-directories of themeRoot.
func AvailableThemes(themeRoot string) []string {
	entries, err := os.ReadDir(themeRoot)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// DefaultsPath is the pandoc defaults file of the theme.
func (t *Theme) DefaultsPath() string {
	return filepath.Join(t.Dir, ThemeDefaultsFile)
}

// TemplatePath is the pandoc HTML template of the theme.
func (t *Theme) TemplatePath() string {
	return filepath.Join(t.Dir, ThemeTemplateFile)
}

// StylesheetPath is the theme stylesheet.
func (t *Theme) StylesheetPath() string {
	return filepath.Join(t.Dir, ThemeStylesheetFile)
}
