package slidefactory

import (
	"fmt"
	"strings"
)

// Format selects the kind of output produced for each input.
type Format string

// Supported output formats.
const (
	FormatPDF          Format = "pdf"
	FormatHTML         Format = "html"
	FormatHTMLLocal    Format = "html-local"
	FormatHTMLEmbedded Format = "html-embedded"
)

// formatAliases maps accepted alternative spellings to their format.
var formatAliases = map[string]Format{
	"html-standalone": FormatHTMLEmbedded,
}

// DefaultFormat is used when no format is configured.
const DefaultFormat = FormatPDF

// Formats returns all supported formats in help order.
func Formats() []Format {
	return []Format{FormatPDF, FormatHTML, FormatHTMLLocal, FormatHTMLEmbedded}
}

// ParseFormat converts a name or alias into a Format.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (available: %s)", ErrInvalidFormat, s, formatList())
}

func formatList() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// Suffix returns the file suffix of outputs in this format.
// html-local gets a double suffix so it can sit beside plain html output.
func (f Format) Suffix() string {
	switch f {
	case FormatPDF:
		return ".pdf"
	case FormatHTMLLocal:
		return ".local.html"
	case FormatHTMLEmbedded:
		return ".embedded.html"
	default:
		return ".html"
	}
}

// UsesLocalResources reports whether the output must render without network
// access, so every resource points at the installation root.
func (f Format) UsesLocalResources() bool {
	switch f {
	case FormatPDF, FormatHTMLLocal, FormatHTMLEmbedded:
		return true
	}
	return false
}

// EmbedsResources reports whether pandoc inlines all resources.
func (f Format) EmbedsResources() bool {
	return f == FormatHTMLEmbedded
}

// IsPDF reports whether the browser and post-processor stages run.
func (f Format) IsPDF() bool {
	return f == FormatPDF
}

// String implements fmt.Stringer and pflag.Value.
func (f Format) String() string {
	return string(f)
}

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}
