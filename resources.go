package slidefactory

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/alnah/go-slidefactory/internal/fileutil"
	"github.com/alnah/go-slidefactory/internal/hints"
)

// ResourceKey names one location the deck depends on.
type ResourceKey string

// Resource keys. The *_fpath keys are pandoc inputs, the *_url keys end up
// in the rendered HTML.
const (
	ResourceDefaults ResourceKey = "defaults_fpath"
	ResourceTemplate ResourceKey = "template_fpath"
	ResourceThemeURL ResourceKey = "theme_url"
	ResourceRevealJS ResourceKey = "revealjs_url"
	ResourceMathJax  ResourceKey = "mathjax_url"
	ResourceFonts    ResourceKey = "fonts_url"
)

// ResourceKeys returns every key in display order.
func ResourceKeys() []ResourceKey {
	return []ResourceKey{
		ResourceDefaults,
		ResourceTemplate,
		ResourceThemeURL,
		ResourceRevealJS,
		ResourceMathJax,
		ResourceFonts,
	}
}

// ParseResourceKey accepts a key in either snake or dash form.
func ParseResourceKey(s string) (ResourceKey, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, k := range ResourceKeys() {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidResourceKey, s)
}

// Flag returns the command-line flag name of the key.
func (k ResourceKey) Flag() string {
	return strings.ReplaceAll(string(k), "_", "-")
}

// IsPath reports whether the key names a pandoc input file rather than a URL.
func (k ResourceKey) IsPath() bool {
	return strings.HasSuffix(string(k), "_fpath")
}

// Remote locations, pinned to the bundled library versions.
const (
	remoteThemeURLFormat = "https://cdn.jsdelivr.net/gh/csc-training/slidefactory@%s/theme/%s/" + ThemeStylesheetFile
	RemoteRevealJSURL    = "https://cdn.jsdelivr.net/npm/reveal.js@" + RevealJSVersion
	RemoteMathJaxURL     = "https://cdn.jsdelivr.net/npm/mathjax@" + MathJaxVersion + "/es5/tex-chtml-full.js"
	RemoteFontsURL       = "https://fonts.googleapis.com/css2?family=Noto+Sans:ital,wdth,wght@0,100,400;0,100,700;1,100,400;1,100,700&family=Inconsolata:wght@400;700"
)

// RemoteThemeURL returns the CDN stylesheet of a built-in theme.
func RemoteThemeURL(themeName string) string {
	return fmt.Sprintf(remoteThemeURLFormat, Version, themeName)
}

// ResourceSet maps every resource key to its location.
type ResourceSet map[ResourceKey]string

// Overrides are user-supplied locations that replace computed ones.
type Overrides map[ResourceKey]string

// ParseOverrides validates a name to value map, as read from flags or a
// config file. Empty values are dropped.
func ParseOverrides(raw map[string]string) (Overrides, error) {
	out := make(Overrides, len(raw))
	for name, value := range raw {
		key, err := ParseResourceKey(name)
		if err != nil {
			return nil, err
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if strings.ContainsAny(value, "\x00\n") {
			return nil, fmt.Errorf("%w: %s contains control characters", ErrInvalidOverride, key)
		}
		if key.IsPath() && fileutil.IsURL(value) {
			return nil, fmt.Errorf("%w: %s must be a file path, got %s", ErrInvalidOverride, key, value)
		}
		out[key] = value
	}
	return out, nil
}

// Merge returns o with the entries of other layered on top.
func (o Overrides) Merge(other Overrides) Overrides {
	out := make(Overrides, len(o)+len(other))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// SelectResources computes where each resource of the deck comes from.
//
// Local formats (pdf, html-local, html-embedded) use the bundled copies
// under the installation root. Other formats use pinned CDN URLs. The theme
// stylesheet stays local for custom themes and for portable installations,
// and is only served from the CDN for built-in themes of the shared
// installation. Overrides replace any computed value.
//
// html-local fails with ErrLocalResourcesUnavailable on the shared
// installation. Every local format fails with it when a bundled copy that
// is not overridden is missing.
func SelectResources(format Format, theme *Theme, inst *Installation, overrides Overrides) (ResourceSet, error) {
	if format == FormatHTMLLocal && inst.Shared {
		return nil, fmt.Errorf("%w: install and use a local slidefactory in order to create local offline html%s",
			ErrLocalResourcesUnavailable, hints.ForLocalResources())
	}
	if format.UsesLocalResources() {
		if missing := missingBundled(inst, overrides); len(missing) > 0 {
			return nil, fmt.Errorf("%w: %s output needs %s%s",
				ErrLocalResourcesUnavailable, format, strings.Join(missing, ", "), hints.ForLocalResources())
		}
	}

	local := format.UsesLocalResources()
	set := ResourceSet{
		ResourceDefaults: theme.DefaultsPath(),
		ResourceTemplate: theme.TemplatePath(),
	}

	if theme.IsCustom || !inst.Shared || local {
		set[ResourceThemeURL] = FileURL(theme.StylesheetPath())
	} else {
		set[ResourceThemeURL] = RemoteThemeURL(theme.Name)
	}

	if local {
		set[ResourceRevealJS] = FileURL(inst.RevealJSDir())
		set[ResourceMathJax] = FileURL(inst.MathJaxScript())
		set[ResourceFonts] = FileURL(inst.FontsStylesheet())
	} else {
		set[ResourceRevealJS] = RemoteRevealJSURL
		set[ResourceMathJax] = RemoteMathJaxURL
		set[ResourceFonts] = RemoteFontsURL
	}

	for k, v := range overrides {
		set[k] = v
	}
	return set, nil
}

// missingBundled lists the bundled assets that are absent and not replaced
// by an override.
func missingBundled(inst *Installation, overrides Overrides) []string {
	absent := inst.MissingLocalAssets()
	if len(absent) == 0 {
		return nil
	}
	bundled := map[string]ResourceKey{
		inst.RevealJSDir():     ResourceRevealJS,
		inst.MathJaxScript():   ResourceMathJax,
		inst.FontsStylesheet(): ResourceFonts,
	}
	var missing []string
	for _, p := range absent {
		if _, ok := overrides[bundled[p]]; !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

// Lines renders the set as "--flag value" lines in key order, for verbose output.
func (s ResourceSet) Lines() []string {
	lines := make([]string, 0, len(s))
	for _, k := range ResourceKeys() {
		lines = append(lines, fmt.Sprintf("  --%-16s %s", k.Flag(), s[k]))
	}
	return lines
}

// FileURL converts an absolute path to a percent-escaped file:// URL.
func FileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
