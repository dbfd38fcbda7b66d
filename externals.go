package slidefactory

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/alnah/go-slidefactory/internal/fileutil"
	"github.com/alnah/go-slidefactory/internal/hints"
	"github.com/alnah/go-slidefactory/internal/pipeline"
)

// copyExternals makes the images a built deck lazy-loads available next to
// it. Each data-src path must exist relative to the input. When the HTML is
// written to a different directory, the files are copied there under the
// same relative path. Absolute paths are checked but never copied.
func (c *Converter) copyExternals(inputPath, htmlPath string) error {
	f, err := os.Open(htmlPath) // #nosec G304 -- path produced by this run
	if err != nil {
		return fmt.Errorf("reading built HTML: %w", err)
	}
	sources, err := pipeline.ScanExternalSources(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	inDir := filepath.Dir(inputPath)
	outDir := filepath.Dir(htmlPath)

	resolved := make([]string, 0, len(sources))
	for _, src := range sources {
		rel, ok := resolveExternal(inDir, src)
		if !ok {
			return fmt.Errorf("%w: %s%s", ErrMissingAsset, joinExternal(inDir, src), hints.ForMissingAsset())
		}
		resolved = append(resolved, rel)
	}

	if fileutil.SameDir(inDir, outDir) {
		return nil
	}

	for _, rel := range resolved {
		if filepath.IsAbs(rel) {
			continue
		}
		from := filepath.Join(inDir, rel)
		to := filepath.Join(outDir, rel)
		c.logger.Verbose(fmt.Sprintf("cp %s %s", from, to))
		if err := os.MkdirAll(filepath.Dir(to), 0o750); err != nil {
			return fmt.Errorf("creating directory for %s: %w", to, err)
		}
		if err := fileutil.CopyFile(from, to); err != nil {
			return fmt.Errorf("copying %s: %w", from, err)
		}
	}
	return nil
}

// resolveExternal returns the existing file src refers to, as a path
// relative to inDir (or absolute). Percent-escaped references are tried
// unescaped when the literal name does not exist.
func resolveExternal(inDir, src string) (string, bool) {
	candidates := []string{src}
	if unescaped, err := url.PathUnescape(src); err == nil && unescaped != src {
		candidates = append(candidates, unescaped)
	}
	for _, cand := range candidates {
		if fileutil.Exists(joinExternal(inDir, cand)) {
			return filepath.FromSlash(cand), true
		}
	}
	return "", false
}

func joinExternal(inDir, src string) string {
	p := filepath.FromSlash(src)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(inDir, p)
}
