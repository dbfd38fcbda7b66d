package slidefactory

// Notes:
// - External programs are replaced by fakeRunner, which writes the files
//   pandoc, Chromium and Ghostscript would produce. Real tool runs are left
//   to manual testing.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// newTalk writes a slide source into a fresh directory and returns its path.
func newTalk(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	writeFile(t, path, talkSource)
	return path
}

func testOptions(t *testing.T, format Format) Options {
	t.Helper()
	inst := newTestInstallation(t, false)
	return Options{Format: format, Theme: builtinTheme(t, inst), Installation: inst}
}

// dirNames lists the entry names of dir.
func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// ---------------------------------------------------------------------------
// TestNewJobs - Job construction from options
// ---------------------------------------------------------------------------

func TestNewJobs(t *testing.T) {
	t.Parallel()

	opts := testOptions(t, "")
	opts.NoMath = true
	opts.OutputDir = "out"

	jobs, err := opts.NewJobs([]string{"a.md", "b/c.md"})
	if err != nil {
		t.Fatalf("NewJobs() error = %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].Format != DefaultFormat {
		t.Errorf("Format = %q, want default %q", jobs[0].Format, DefaultFormat)
	}
	if jobs[1].Output != filepath.Join("out", "c.pdf") {
		t.Errorf("Output = %q", jobs[1].Output)
	}
	if jobs[0].Math {
		t.Error("NoMath should disable math")
	}
	if jobs[0].Resources[ResourceThemeURL] == "" {
		t.Error("jobs should carry the resource set")
	}
}

func TestNewJobs_Errors(t *testing.T) {
	t.Parallel()

	if _, err := testOptions(t, FormatPDF).NewJobs(nil); !errors.Is(err, ErrNoInput) {
		t.Errorf("NewJobs(nil) error = %v, want ErrNoInput", err)
	}
	if _, err := (Options{}).NewJobs([]string{"a.md"}); err == nil {
		t.Error("NewJobs() without theme should fail")
	}

	shared := newTestInstallation(t, true)
	opts := Options{Format: FormatHTMLLocal, Theme: builtinTheme(t, shared), Installation: shared}
	if _, err := opts.NewJobs([]string{"a.md"}); !errors.Is(err, ErrLocalResourcesUnavailable) {
		t.Errorf("NewJobs() error = %v, want ErrLocalResourcesUnavailable", err)
	}
}

// ---------------------------------------------------------------------------
// TestConvert - HTML and PDF pipelines
// ---------------------------------------------------------------------------

func TestConvert_HTML(t *testing.T) {
	t.Parallel()

	input := newTalk(t, "intro.md")
	jobs, err := testOptions(t, FormatHTML).NewJobs([]string{input})
	if err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{}
	logger := &recordingLogger{}
	c := NewConverter(WithRunner(runner), WithLogger(logger), WithTools(testTools))

	if err := c.Convert(context.Background(), jobs[0]); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !slices.Equal(runner.programs(), []string{"pandoc"}) {
		t.Errorf("programs = %v, want only pandoc", runner.programs())
	}
	if _, err := os.Stat(jobs[0].Output); err != nil {
		t.Errorf("output missing: %v", err)
	}
	if logger.info[0] != "Convert "+input+" to "+jobs[0].Output {
		t.Errorf("info = %q", logger.info)
	}
}

func TestConvert_PDF(t *testing.T) {
	t.Parallel()

	input := newTalk(t, "intro.md")
	jobs, err := testOptions(t, FormatPDF).NewJobs([]string{input})
	if err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{}
	c := NewConverter(WithRunner(runner), WithTools(testTools))

	if err := c.Convert(context.Background(), jobs[0]); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !slices.Equal(runner.programs(), []string{"pandoc", "chromium", "gs"}) {
		t.Errorf("programs = %v", runner.programs())
	}

	data, err := os.ReadFile(jobs[0].Output)
	if err != nil || string(data) != "%PDF-final" {
		t.Errorf("output = %q, %v", data, err)
	}

	if !strings.Contains(runner.pdfmark, "/Title (Parallel <em>Programming</em>)") ||
		!strings.Contains(runner.pdfmark, "/Author (Ada, Grace)") ||
		!strings.Contains(runner.pdfmark, "/Subject (Summer School)") {
		t.Errorf("pdfmark = %q", runner.pdfmark)
	}

	// Temporaries are gone; only source and result remain.
	names := dirNames(t, filepath.Dir(input))
	if !slices.Equal(names, []string{"intro.md", "intro.pdf"}) {
		t.Errorf("directory holds %v, want only intro.md and intro.pdf", names)
	}
}

func TestConvert_PDFTemporaryHTMLBesideInput(t *testing.T) {
	t.Parallel()

	input := newTalk(t, "intro.md")
	opts := testOptions(t, FormatPDF)
	opts.OutputDir = t.TempDir()
	jobs, err := opts.NewJobs([]string{input})
	if err != nil {
		t.Fatal(err)
	}

	var htmlDir string
	runner := &fakeRunner{onCall: func(argv []string) {
		if filepath.Base(argv[0]) == "pandoc" {
			for _, a := range argv {
				if strings.HasPrefix(a, "--output=") {
					htmlDir = filepath.Dir(strings.TrimPrefix(a, "--output="))
				}
			}
		}
	}}
	c := NewConverter(WithRunner(runner), WithTools(testTools))

	if err := c.Convert(context.Background(), jobs[0]); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if htmlDir != filepath.Dir(input) {
		t.Errorf("temporary HTML in %q, want input directory %q", htmlDir, filepath.Dir(input))
	}
	if names := dirNames(t, opts.OutputDir); !slices.Equal(names, []string{"intro.pdf"}) {
		t.Errorf("output directory holds %v", names)
	}
}

func TestConvert_FailureCleansUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		failOn string
		want   error
	}{
		{"pandoc", ErrEngineFailed},
		{"chromium", ErrBrowserFailed},
		{"gs", ErrPostProcessFailed},
	}

	for _, tt := range tests {
		t.Run(tt.failOn, func(t *testing.T) {
			t.Parallel()

			input := newTalk(t, "intro.md")
			jobs, err := testOptions(t, FormatPDF).NewJobs([]string{input})
			if err != nil {
				t.Fatal(err)
			}

			runner := &fakeRunner{failOn: tt.failOn, exitCode: 2, stderr: "broken"}
			c := NewConverter(WithRunner(runner), WithTools(testTools))

			err = c.Convert(context.Background(), jobs[0])
			if !errors.Is(err, tt.want) || !errors.Is(err, ErrExternalTool) {
				t.Fatalf("Convert() error = %v, want %v", err, tt.want)
			}
			if names := dirNames(t, filepath.Dir(input)); !slices.Equal(names, []string{"intro.md"}) {
				t.Errorf("directory holds %v after failure, want only intro.md", names)
			}
		})
	}
}

func TestConvert_PDFNeedsMetadata(t *testing.T) {
	t.Parallel()

	input := filepath.Join(t.TempDir(), "bare.md")
	writeFile(t, input, "# Slide\n")
	jobs, err := testOptions(t, FormatPDF).NewJobs([]string{input})
	if err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{}
	c := NewConverter(WithRunner(runner), WithTools(testTools))

	if err := c.Convert(context.Background(), jobs[0]); !errors.Is(err, ErrMissingMetadata) {
		t.Fatalf("Convert() error = %v, want ErrMissingMetadata", err)
	}
	if slices.Contains(runner.programs(), "chromium") {
		t.Error("browser must not run without metadata")
	}
}

func TestConvert_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	input := newTalk(t, "intro.md")
	opts := testOptions(t, FormatPDF)
	opts.OutputDir = filepath.Join(t.TempDir(), "new", "dir")
	jobs, err := opts.NewJobs([]string{input})
	if err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{}
	logger := &recordingLogger{}
	c := NewConverter(WithRunner(runner), WithLogger(logger), WithTools(testTools), WithDryRun(true))

	if err := c.Convert(context.Background(), jobs[0]); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("dry run executed %d commands", len(runner.calls))
	}
	if _, err := os.Stat(opts.OutputDir); !os.IsNotExist(err) {
		t.Error("dry run created the output directory")
	}
	if names := dirNames(t, filepath.Dir(input)); !slices.Equal(names, []string{"intro.md"}) {
		t.Errorf("dry run left %v", names)
	}

	// Convert line plus the three commands.
	if len(logger.info) != 4 {
		t.Fatalf("info = %q, want 4 lines", logger.info)
	}
	if !strings.Contains(logger.info[1], "intro-XXXXXX.html") {
		t.Errorf("pandoc line should show a placeholder temporary, got %q", logger.info[1])
	}
}

// ---------------------------------------------------------------------------
// TestConvertAll - Batch order and abort
// ---------------------------------------------------------------------------

func TestConvertAll_AbortsOnFirstFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "01.md")
	second := filepath.Join(dir, "02.md")
	third := filepath.Join(dir, "03.md")
	writeFile(t, first, talkSource)
	writeFile(t, second, "no metadata\n")
	writeFile(t, third, talkSource)

	jobs, err := testOptions(t, FormatPDF).NewJobs([]string{first, second, third})
	if err != nil {
		t.Fatal(err)
	}

	c := NewConverter(WithRunner(&fakeRunner{}), WithTools(testTools))
	err = c.ConvertAll(context.Background(), jobs)
	if !errors.Is(err, ErrMissingMetadata) {
		t.Fatalf("ConvertAll() error = %v, want ErrMissingMetadata", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "01.pdf")); err != nil {
		t.Error("first job should have completed")
	}
	if _, err := os.Stat(filepath.Join(dir, "03.pdf")); !os.IsNotExist(err) {
		t.Error("jobs after the failure must not run")
	}
}

func TestConvertAll_Empty(t *testing.T) {
	t.Parallel()

	c := NewConverter(WithRunner(&fakeRunner{}), WithTools(testTools))
	if err := c.ConvertAll(context.Background(), nil); !errors.Is(err, ErrNoInput) {
		t.Errorf("ConvertAll(nil) error = %v, want ErrNoInput", err)
	}
}

func TestConvert_CanceledBeforeStart(t *testing.T) {
	t.Parallel()

	input := newTalk(t, "intro.md")
	jobs, err := testOptions(t, FormatHTML).NewJobs([]string{input})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{}
	c := NewConverter(WithRunner(runner), WithTools(testTools))
	if err := c.Convert(ctx, jobs[0]); !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
	if len(runner.calls) != 0 {
		t.Error("no command should run after cancellation")
	}
}
