package slidefactory

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func testJob(format Format, math bool) *Job {
	return &Job{
		Input:  "talk.md",
		Output: "talk" + format.Suffix(),
		Format: format,
		Resources: ResourceSet{
			ResourceDefaults: "/sf/theme/csc-plain/defaults.yaml",
			ResourceTemplate: "/sf/theme/csc-plain/template.html",
			ResourceThemeURL: "file:///sf/theme/csc-plain/csc.css",
			ResourceRevealJS: "file:///sf/reveal.js-4.4.0",
			ResourceMathJax:  "file:///sf/MathJax-3.2.2/es5/tex-chtml-full.js",
			ResourceFonts:    "file:///sf/fonts/fonts.css",
		},
		Math: math,
	}
}

// ---------------------------------------------------------------------------
// TestEngineArgs - pandoc command line
// ---------------------------------------------------------------------------

func TestEngineArgs_HTML(t *testing.T) {
	t.Parallel()

	job := testJob(FormatHTML, true)
	job.Filters = []string{"pandoc-crossref", "./filters/columns.lua"}
	job.ExtraArgs = []string{"--slide-level=2"}

	got := engineArgs("pandoc", job, "out/talk.html")
	want := []string{
		"pandoc",
		"--defaults=/sf/theme/csc-plain/defaults.yaml",
		"--template=/sf/theme/csc-plain/template.html",
		"--variable=theme-url:file:///sf/theme/csc-plain/csc.css",
		"--variable=revealjs-url:file:///sf/reveal.js-4.4.0",
		"--variable=mathjaxurl:file:///sf/MathJax-3.2.2/es5/tex-chtml-full.js",
		"--variable=css:file:///sf/fonts/fonts.css",
		"--slide-level=2",
		"--mathjax",
		"--filter=pandoc-crossref",
		"--filter=./filters/columns.lua",
		"--output=out/talk.html",
		"talk.md",
	}

	if !slices.Equal(got, want) {
		t.Errorf("engineArgs() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestEngineArgs_NoMath(t *testing.T) {
	t.Parallel()

	got := engineArgs("pandoc", testJob(FormatPDF, false), "x.html")
	if slices.Contains(got, "--mathjax") {
		t.Error("--mathjax must be absent when math is disabled")
	}
	if slices.Contains(got, "--embed-resources") {
		t.Error("--embed-resources is only for embedded output")
	}
	if got[len(got)-1] != "talk.md" {
		t.Errorf("input must be the last argument, got %q", got[len(got)-1])
	}
}

func TestEngineArgs_Embedded(t *testing.T) {
	t.Parallel()

	got := engineArgs("pandoc", testJob(FormatHTMLEmbedded, true), "talk.embedded.html")

	if !slices.Contains(got, "--embed-resources") {
		t.Error("--embed-resources missing")
	}
	if !slices.Contains(got, "--variable=mathjaxurl:") {
		t.Errorf("mathjaxurl should be emptied, got %v", got)
	}
	want := `--variable=header-includes:<script src="file:///sf/MathJax-3.2.2/es5/tex-chtml-full.js"></script>`
	if !slices.Contains(got, want) {
		t.Errorf("header-includes script missing from %v", got)
	}
}

func TestEngineArgs_EmbeddedWithoutMath(t *testing.T) {
	t.Parallel()

	got := engineArgs("pandoc", testJob(FormatHTMLEmbedded, false), "talk.embedded.html")
	for _, a := range got {
		if strings.HasPrefix(a, "--variable=header-includes:") {
			t.Errorf("unexpected header include %q", a)
		}
	}
}

// ---------------------------------------------------------------------------
// TestBrowserArgs - headless print command
// ---------------------------------------------------------------------------

func TestBrowserArgs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := browserArgs("chromium", filepath.Join(dir, "talk-123.html"), "/tmp/out.pdf")
	if err != nil {
		t.Fatalf("browserArgs() error = %v", err)
	}

	if got[0] != "chromium" {
		t.Errorf("program = %q", got[0])
	}
	for _, flag := range []string{"--headless", "--no-sandbox", "--print-to-pdf=/tmp/out.pdf", "--virtual-time-budget=" + virtualTimeBudget} {
		if !slices.Contains(got, flag) {
			t.Errorf("missing %s in %v", flag, got)
		}
	}
	last := got[len(got)-1]
	if !strings.HasPrefix(last, "file://") || !strings.HasSuffix(last, "talk-123.html?print-pdf") {
		t.Errorf("URL = %q, want file URL with ?print-pdf", last)
	}
}

func TestTools_WithDefaults(t *testing.T) {
	t.Setenv("ROD_BROWSER_BIN", "/opt/chrome/chrome")

	got := Tools{Pandoc: "/usr/local/bin/pandoc"}.withDefaults()
	if got.Pandoc != "/usr/local/bin/pandoc" {
		t.Errorf("Pandoc = %q, configured value must win", got.Pandoc)
	}
	if got.Browser != "/opt/chrome/chrome" {
		t.Errorf("Browser = %q, want ROD_BROWSER_BIN", got.Browser)
	}
	if got.Ghostscript != DefaultGhostscript {
		t.Errorf("Ghostscript = %q, want %q", got.Ghostscript, DefaultGhostscript)
	}
}

// ---------------------------------------------------------------------------
// TestPostProcess - Ghostscript command and pdfmark
// ---------------------------------------------------------------------------

func TestPostProcessArgs(t *testing.T) {
	t.Parallel()

	got := postProcessArgs("gs", "raw.pdf", "mark.txt", "talk.pdf")
	n := len(got)
	if got[0] != "gs" || got[n-2] != "raw.pdf" || got[n-1] != "mark.txt" {
		t.Errorf("postProcessArgs() = %v", got)
	}
	for _, flag := range []string{"-dSAFER", "-sDEVICE=pdfwrite", "-dPDFSETTINGS=/printer", "-sOutputFile=talk.pdf"} {
		if !slices.Contains(got, flag) {
			t.Errorf("missing %s", flag)
		}
	}
}

func TestBuildPDFMark(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta Metadata
		want string
	}{
		{
			name: "all fields",
			meta: Metadata{Title: "Intro", Author: "Ada, Grace", Subject: "HPC"},
			want: "[ /Title (Intro) /Author (Ada, Grace) /Subject (HPC) /Creator (Slidefactory " + Version + ") /DOCINFO pdfmark",
		},
		{
			name: "event stands in for subject",
			meta: Metadata{Title: "Intro", Event: "Summer School"},
			want: "[ /Title (Intro) /Subject (Summer School) /Creator (Slidefactory " + Version + ") /DOCINFO pdfmark",
		},
		{
			name: "special characters escaped",
			meta: Metadata{Title: `f(x) \ g`},
			want: `[ /Title (f\(x\) \\ g) /Creator (Slidefactory ` + Version + `) /DOCINFO pdfmark`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := buildPDFMark(&tt.meta); got != tt.want {
				t.Errorf("buildPDFMark() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}
