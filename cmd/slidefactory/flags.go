package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	slidefactory "github.com/alnah/go-slidefactory"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	dryRun  bool
}

// setupFlags locate the installation, the theme and the external programs.
type setupFlags struct {
	root        string
	sharedRoot  string
	theme       string
	pandoc      string
	browser     string
	ghostscript string
}

// conversionFlags hold the per-deck pandoc settings.
type conversionFlags struct {
	filters    []string
	pandocArgs string
	noMath     bool
	resources  map[slidefactory.ResourceKey]*string
}

// outputFlags select what the slides command writes.
type outputFlags struct {
	format slidefactory.Format
	output string
}

// pagesFlags hold the pages command settings.
type pagesFlags struct {
	withPDF     bool
	infoContent string
	template    string
}

// cliFlags holds every flag of a command run. Each command registers the
// groups it needs.
type cliFlags struct {
	common     commonFlags
	setup      setupFlags
	conversion conversionFlags
	output     outputFlags
	pages      pagesFlags
	jsonOutput bool
}

// normalizeFlagName accepts snake-case spellings, so --theme_url works
// like --theme-url.
func normalizeFlagName(_ *flag.FlagSet, name string) flag.NormalizedName {
	return flag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newFlagSet(name string, usage func(io.Writer), w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetNormalizeFunc(normalizeFlagName)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show commands and tool output")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "print commands without running them")
}

// addRootFlags adds the installation flags to a FlagSet.
func addRootFlags(fs *flag.FlagSet, f *setupFlags) {
	fs.StringVar(&f.root, "root", "", "installation root (themes, bundled assets)")
	fs.StringVar(&f.sharedRoot, "shared-root", "", "root of the shared installation (default "+slidefactory.DefaultSharedRoot+")")
}

// addSetupFlags adds theme and program flags to a FlagSet.
func addSetupFlags(fs *flag.FlagSet, f *setupFlags) {
	addRootFlags(fs, f)
	fs.StringVarP(&f.theme, "theme", "t", "", "theme name or directory path (default "+slidefactory.DefaultTheme+")")
	addToolFlags(fs, f)
}

// addToolFlags adds the external program flags to a FlagSet.
func addToolFlags(fs *flag.FlagSet, f *setupFlags) {
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc binary")
	fs.StringVar(&f.browser, "browser", "", "Chrome/Chromium binary")
	fs.StringVar(&f.ghostscript, "gs", "", "Ghostscript binary")
}

// addConversionFlags adds pandoc settings and one override flag per resource.
func addConversionFlags(fs *flag.FlagSet, f *conversionFlags) {
	fs.StringArrayVar(&f.filters, "filters", nil, "pandoc filter, repeatable, applied in order")
	fs.StringVar(&f.pandocArgs, "pandoc-args", "", "extra pandoc arguments, shell-quoted")
	fs.BoolVar(&f.noMath, "no-math", false, "disable math rendering")

	f.resources = make(map[slidefactory.ResourceKey]*string, len(slidefactory.ResourceKeys()))
	for _, k := range slidefactory.ResourceKeys() {
		f.resources[k] = fs.String(k.Flag(), "", "override "+string(k))
	}
}

// addOutputFlags adds format and output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	f.format = slidefactory.DefaultFormat
	fs.VarP(&f.format, "format", "f", "output format: "+formatNames())
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: beside each input)")
}

// addPagesFlags adds pages flags to a FlagSet.
func addPagesFlags(fs *flag.FlagSet, f *pagesFlags) {
	fs.BoolVar(&f.withPDF, "with-pdf", false, "also build PDFs and slides.zip")
	fs.StringVar(&f.infoContent, "info-content", "", "Markdown for the About card")
	fs.StringVar(&f.template, "page-template", "", "directory holding a custom index.html")
}

func formatNames() string {
	names := make([]string, 0, len(slidefactory.Formats()))
	for _, f := range slidefactory.Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

// buildSlidesFlagSet registers the slides command flags into f.
func buildSlidesFlagSet(f *cliFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("slides", printSlidesUsage, w)
	addCommonFlags(fs, &f.common)
	addSetupFlags(fs, &f.setup)
	addOutputFlags(fs, &f.output)
	addConversionFlags(fs, &f.conversion)
	return fs
}

// buildPagesFlagSet registers the pages command flags into f.
func buildPagesFlagSet(f *cliFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("pages", printPagesUsage, w)
	addCommonFlags(fs, &f.common)
	addSetupFlags(fs, &f.setup)
	addConversionFlags(fs, &f.conversion)
	addPagesFlags(fs, &f.pages)
	return fs
}

// buildInstallFlagSet registers the install command flags into f.
func buildInstallFlagSet(f *cliFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("install", printInstallUsage, w)
	addCommonFlags(fs, &f.common)
	addRootFlags(fs, &f.setup)
	return fs
}

// buildDoctorFlagSet registers the doctor command flags into f.
func buildDoctorFlagSet(f *cliFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("doctor", printDoctorUsage, w)
	fs.StringVarP(&f.common.config, "config", "c", "", "config file name or path")
	addRootFlags(fs, &f.setup)
	addToolFlags(fs, &f.setup)
	fs.BoolVar(&f.jsonOutput, "json", false, "print the report as JSON")
	return fs
}

// parseArgs parses args into fs. Help requests return errHelpShown; any
// other failure is a usage error.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errHelpShown
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// errHelpShown ends a command successfully after its usage was printed.
var errHelpShown = errors.New("help shown")
