// Package yamlutil wraps YAML parsing to isolate the external dependency.
// It also extracts the `---` delimited metadata block that leads slide sources.
package yamlutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNoFrontMatter  = errors.New("yamlutil: no front matter block")
	ErrUnterminatedFM = errors.New("yamlutil: front matter block is not terminated")
)

const (
	frontMatterFence   = "---"
	frontMatterEndDots = "..."
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// FrontMatter returns the YAML between the first two fence lines of r.
// Lines before the opening fence are skipped, so a shebang or comment may
// precede the block. A closing "..." line is accepted as in pandoc.
func FrontMatter(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxInputSize)

	opened := false
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == frontMatterFence {
			opened = true
			break
		}
	}
	if !opened {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("yamlutil: %w", err)
		}
		return nil, ErrNoFrontMatter
	}

	var b strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case frontMatterFence, frontMatterEndDots:
			if b.Len() == 0 {
				return nil, ErrNoFrontMatter
			}
			return []byte(b.String()), nil
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return nil, ErrUnterminatedFM
}
