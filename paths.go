package slidefactory

import (
	"path/filepath"
	"strings"
)

// OutputPath derives the output file of input for format. With an output
// directory the file goes there, otherwise it replaces the input's
// extension in place.
func OutputPath(input, outputDir string, format Format) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + format.Suffix()
	if outputDir != "" {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

// stem returns the file name of path without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
