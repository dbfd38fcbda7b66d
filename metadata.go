package slidefactory

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-slidefactory/internal/yamlutil"
)

// Metadata is the front matter of a slide source.
type Metadata struct {
	Title   string
	Author  string
	Subject string
	Event   string
	// Fields holds every key of the block, including the ones above.
	Fields map[string]any
}

// ReadMetadata reads the leading YAML block of the file at path.
func ReadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	defer f.Close()

	meta, err := ParseMetadata(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return meta, nil
}

// ParseMetadata parses the leading YAML block of a slide source.
// Sources without a block, or with an empty one, fail with ErrMissingMetadata.
func ParseMetadata(r io.Reader) (*Metadata, error) {
	block, err := yamlutil.FrontMatter(r)
	if err != nil {
		if errors.Is(err, yamlutil.ErrNoFrontMatter) || errors.Is(err, yamlutil.ErrUnterminatedFM) {
			return nil, fmt.Errorf("%w: %v", ErrMissingMetadata, err)
		}
		return nil, err
	}

	fields := map[string]any{}
	if err := yamlutil.Unmarshal(block, &fields); err != nil {
		return nil, fmt.Errorf("yaml parsing failed: %w", err)
	}

	return &Metadata{
		Title:   metaString(fields["title"]),
		Author:  metaString(fields["author"]),
		Subject: metaString(fields["subject"]),
		Event:   metaString(fields["event"]),
		Fields:  fields,
	}, nil
}

// DocumentSubject is the subject written into the PDF. The event name
// stands in when no subject is given.
func (m *Metadata) DocumentSubject() string {
	if m.Subject != "" {
		return m.Subject
	}
	return m.Event
}

// metaString flattens a YAML value; lists are joined with ", ".
func metaString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := metaString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		// pandoc author entries may be maps with a name key
		return metaString(val["name"])
	default:
		return fmt.Sprint(val)
	}
}
