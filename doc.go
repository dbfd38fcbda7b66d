// Package slidefactory converts Markdown presentations into reveal.js slide
// decks and PDFs by driving three external programs: pandoc builds the HTML
// deck, a headless Chromium prints it to PDF, and Ghostscript compresses the
// PDF and stamps its document metadata.
//
// # Quick Start
//
// Resolve an installation and a theme, describe the run, and convert:
//
//	inst, err := slidefactory.NewInstallation("/opt/slidefactory", slidefactory.DefaultSharedRoot)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	theme, err := slidefactory.ResolveTheme("csc-plain", inst.ThemeRoot())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts := slidefactory.Options{
//	    Format:       slidefactory.FormatPDF,
//	    Theme:        theme,
//	    Installation: inst,
//	}
//	jobs, err := opts.NewJobs([]string{"talk.md"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv := slidefactory.NewConverter()
//	if err := conv.ConvertAll(ctx, jobs); err != nil {
//	    log.Fatal(err)
//	}
//
// # Conversion Pipeline
//
// Each job runs these stages in order:
//
//  1. pandoc renders the source with the theme template, defaults file and
//     resource variables (to a temporary HTML file for PDF output)
//  2. images that reveal.js lazy-loads via data-src are checked and copied
//     next to the HTML when it lands in another directory
//  3. Chromium prints the deck (?print-pdf) to a temporary PDF
//  4. Ghostscript downsamples images and writes title, author and subject
//
// Any failing tool aborts the run with a *ToolError. Temporary files are
// removed on every exit path.
//
// # Resources
//
// The deck references reveal.js, MathJax, a font stylesheet and the theme
// stylesheet. SelectResources decides per format whether they point at the
// bundled copies under the installation root or at pinned CDN URLs.
// Overrides replace any computed location.
//
// # Testing
//
// Every external program runs through a CommandRunner. Inject a fake with
// WithRunner to test without pandoc, Chromium or Ghostscript installed.
package slidefactory
