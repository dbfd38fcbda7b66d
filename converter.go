package slidefactory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-slidefactory/internal/fileutil"
	"github.com/alnah/go-slidefactory/internal/hints"
)

// Job is the conversion of one input file. Jobs are built by Options.NewJobs
// and not modified afterwards.
type Job struct {
	Input     string
	Output    string
	Format    Format
	Theme     *Theme
	Resources ResourceSet
	Filters   []string
	ExtraArgs []string
	// Math adds --mathjax.
	Math bool
}

// Options describe a run; NewJobs turns them into one Job per input.
type Options struct {
	Format       Format
	Theme        *Theme
	Installation *Installation
	Overrides    Overrides
	// OutputDir holds the outputs; empty means beside each input.
	OutputDir string
	Filters   []string
	ExtraArgs []string
	NoMath    bool
}

// Resources computes the resource set of the run.
func (o Options) Resources() (ResourceSet, error) {
	if o.Theme == nil || o.Installation == nil {
		return nil, errors.New("slidefactory: options need a theme and an installation")
	}
	return SelectResources(o.Format, o.Theme, o.Installation, o.Overrides)
}

// NewJobs creates the jobs for inputs, in order. The resource set is
// computed once and shared read-only by every job.
func (o Options) NewJobs(inputs []string) ([]*Job, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	resources, err := o.Resources()
	if err != nil {
		return nil, err
	}

	jobs := make([]*Job, 0, len(inputs))
	for _, in := range inputs {
		jobs = append(jobs, &Job{
			Input:     in,
			Output:    OutputPath(in, o.OutputDir, o.Format),
			Format:    o.Format,
			Theme:     o.Theme,
			Resources: resources,
			Filters:   o.Filters,
			ExtraArgs: o.ExtraArgs,
			Math:      !o.NoMath,
		})
	}
	return jobs, nil
}

// Converter runs jobs through pandoc, Chromium and Ghostscript.
// A Converter is not safe for concurrent use; jobs run strictly one
// after another.
type Converter struct {
	runner CommandRunner
	logger Logger
	tools  Tools
	dryRun bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithRunner sets the command runner (tests inject a fake).
func WithRunner(r CommandRunner) Option {
	return func(c *Converter) { c.runner = r }
}

// WithLogger sets the progress logger.
func WithLogger(l Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithTools sets the external programs. Empty entries keep their default.
func WithTools(t Tools) Option {
	return func(c *Converter) { c.tools = t }
}

// WithDryRun prints the commands instead of running them. Nothing is
// written to disk.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) { c.dryRun = dryRun }
}

// NewConverter creates a Converter. Without options it runs the real
// programs found in PATH and logs nothing.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		runner: &ExecRunner{},
		logger: NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tools = c.tools.withDefaults()
	return c
}

// ConvertAll converts jobs in order and stops at the first failure.
func (c *Converter) ConvertAll(ctx context.Context, jobs []*Job) error {
	if len(jobs) == 0 {
		return ErrNoInput
	}
	for _, job := range jobs {
		if err := c.Convert(ctx, job); err != nil {
			return err
		}
	}
	return nil
}

// Convert produces job.Output.
func (c *Converter) Convert(ctx context.Context, job *Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.logger.Info(fmt.Sprintf("Convert %s to %s", job.Input, job.Output))

	if !c.dryRun {
		if err := os.MkdirAll(filepath.Dir(job.Output), 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
		}
	}

	if job.Format.IsPDF() {
		return c.convertPDF(ctx, job)
	}
	return c.buildHTML(ctx, job, job.Output)
}

// buildHTML runs pandoc into htmlPath and brings lazy-loaded images along.
func (c *Converter) buildHTML(ctx context.Context, job *Job, htmlPath string) error {
	if err := c.run(ctx, stageEngine, engineArgs(c.tools.Pandoc, job, htmlPath)); err != nil {
		return err
	}
	if c.dryRun {
		return nil
	}
	return c.copyExternals(job.Input, htmlPath)
}

// convertPDF renders the deck to a temporary HTML file beside the input
// (so relative references resolve), prints it, and post-processes the
// printed PDF into job.Output. Temporaries are removed on every path.
func (c *Converter) convertPDF(ctx context.Context, job *Job) error {
	inDir := filepath.Dir(job.Input)
	outDir := filepath.Dir(job.Output)

	htmlPath, cleanupHTML, err := c.tempFile(inDir, stem(job.Input)+"-", ".html")
	if err != nil {
		return err
	}
	defer cleanupHTML()

	if err := c.buildHTML(ctx, job, htmlPath); err != nil {
		return err
	}

	meta, err := ReadMetadata(job.Input)
	if err != nil {
		return err
	}

	rawPDF, cleanupPDF, err := c.tempFile(outDir, stem(job.Output)+"-", ".pdf")
	if err != nil {
		return err
	}
	defer cleanupPDF()

	argv, err := browserArgs(c.tools.Browser, htmlPath, rawPDF)
	if err != nil {
		return err
	}
	if err := c.run(ctx, stageBrowser, argv); err != nil {
		return c.withBrowserHint(err)
	}

	markPath, cleanupMark, err := c.tempFile(outDir, stem(job.Output)+"-", ".txt")
	if err != nil {
		return err
	}
	defer cleanupMark()

	mark := buildPDFMark(meta)
	c.logger.Verbose("write " + markPath)
	c.logger.Verbose(mark + "\n")
	if !c.dryRun {
		if err := os.WriteFile(markPath, []byte(mark), 0o600); err != nil {
			return fmt.Errorf("writing pdfmark: %w", err)
		}
	}

	return c.run(ctx, stagePostProcess, postProcessArgs(c.tools.Ghostscript, rawPDF, markPath, job.Output))
}

// tempFile creates a scoped temporary file. In dry-run mode nothing is
// created and a recognizable placeholder path is returned.
func (c *Converter) tempFile(dir, prefix, suffix string) (string, func(), error) {
	if c.dryRun {
		return filepath.Join(dir, prefix+"XXXXXX"+suffix), func() {}, nil
	}
	path, cleanup, err := fileutil.CreateTemp(dir, prefix, suffix)
	if err != nil {
		return "", nil, fmt.Errorf("creating temporary file: %w", err)
	}
	return path, cleanup, nil
}

func (c *Converter) withBrowserHint(err error) error {
	if _, ok := err.(*ToolError); !ok {
		return err
	}
	if hint := hints.ForBrowser(); hint != "" {
		return fmt.Errorf("%w%s", err, hint)
	}
	return err
}
