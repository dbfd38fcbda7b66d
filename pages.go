package slidefactory

import (
	"context"
	"fmt"
	"html"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/alnah/go-slidefactory/internal/assets"
	"github.com/alnah/go-slidefactory/internal/fileutil"
	"github.com/alnah/go-slidefactory/internal/pipeline"
	"github.com/alnah/go-slidefactory/internal/yamlutil"
)

// DefaultInfoContent fills the About card when no info text is given.
const DefaultInfoContent = "This page is generated with slidefactory."

// PagesOptions describe building a course site from an about file.
type PagesOptions struct {
	// Options carries the theme, installation, overrides, filters and
	// pandoc arguments used for every deck. Format and OutputDir are set
	// per deck.
	Options
	// About is the root metadata file (title plus modules or slidesdir).
	About string
	// OutputDir must not exist yet.
	OutputDir string
	// WithPDF also builds PDFs and a slides.zip of all of them.
	WithPDF bool
	// InfoContent is Markdown shown in the About card.
	InfoContent string
	// TemplateDir optionally holds an index.html replacing the built-in page.
	TemplateDir string
}

// about is the metadata file of a course or of one of its modules.
type about struct {
	Title     string   `yaml:"title"`
	Modules   []string `yaml:"modules"`
	SlidesDir string   `yaml:"slidesdir"`
}

// pageContent holds the link lists built for one about file.
type pageContent struct {
	title string
	html  string
	pdf   string
}

type indexData struct {
	Title        string
	Info         template.HTML
	HTML         template.HTML
	PDF          template.HTML
	CSCUIVersion string
}

// BuildPages converts every deck reachable from opts.About into
// OutputDir/html (and OutputDir/pdf) and writes OutputDir/index.html
// linking them. The theme is copied into the site so the HTML decks
// reference it relatively.
func (c *Converter) BuildPages(ctx context.Context, opts PagesOptions) error {
	if opts.About == "" || opts.OutputDir == "" {
		return ErrNoInput
	}
	if opts.Theme == nil {
		return fmt.Errorf("%w: no theme", ErrThemeNotFound)
	}
	if fileutil.Exists(opts.OutputDir) {
		return fmt.Errorf("%w: %s", ErrPagesOutputExists, opts.OutputDir)
	}

	resolver, err := assets.NewAssetResolver(opts.TemplateDir)
	if err != nil {
		return fmt.Errorf("page template: %w", err)
	}
	if resolver.HasCustomLoader() {
		c.logger.Verbose("Page template from " + opts.TemplateDir)
	}
	pageTemplate, err := resolver.LoadTemplate(assets.IndexTemplate)
	if err != nil {
		return fmt.Errorf("page template: %w", err)
	}
	tmpl, err := template.New(assets.IndexTemplate).Parse(pageTemplate)
	if err != nil {
		return fmt.Errorf("parsing page template: %w", err)
	}

	themeDir := filepath.Join(opts.OutputDir, "html", "theme", opts.Theme.Name)
	c.logger.Info("Copy theme to " + themeDir)
	if !c.dryRun {
		if err := fileutil.CopyTree(opts.Theme.Dir, themeDir); err != nil {
			return fmt.Errorf("copying theme: %w", err)
		}
	}

	b := &pagesBuilder{c: c, opts: opts, baseDir: filepath.Dir(opts.About)}
	content, err := b.build(ctx, opts.About, "%s")
	if err != nil {
		return err
	}

	pdfContent := "Not generated."
	if opts.WithPDF {
		zipPath := filepath.Join(opts.OutputDir, "slides.zip")
		c.logger.Info("Create " + zipPath)
		if !c.dryRun {
			if err := writeZip(zipPath, filepath.Join(opts.OutputDir, "pdf")); err != nil {
				return err
			}
		}
		pdfContent = content.pdf +
			"</c-card-content>\n<c-card-content>\n" +
			`<c-link href="slides.zip">Download a zip file containing all slides.</c-link>` + "\n"
	}

	infoContent := opts.InfoContent
	if infoContent == "" {
		infoContent = DefaultInfoContent
	}
	info, err := pipeline.RenderInfo(ctx, pipeline.NewGoldmarkConverter(), infoContent)
	if err != nil {
		return fmt.Errorf("rendering info content: %w", err)
	}

	indexPath := filepath.Join(opts.OutputDir, "index.html")
	c.logger.Info("Create " + indexPath)
	if c.dryRun {
		return nil
	}

	f, err := os.Create(indexPath) // #nosec G304 -- inside the new output directory
	if err != nil {
		return fmt.Errorf("creating index: %w", err)
	}
	// The fragments are built from escaped values and goldmark output
	// without raw HTML.
	err = tmpl.Execute(f, indexData{
		Title:        content.title,
		Info:         template.HTML(info),         // #nosec G203
		HTML:         template.HTML(content.html), // #nosec G203
		PDF:          template.HTML(pdfContent),   // #nosec G203
		CSCUIVersion: assets.CSCUIVersion,
	})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

type pagesBuilder struct {
	c       *Converter
	opts    PagesOptions
	baseDir string
}

// build processes one about file. Modules recurse into
// <module>/<same file name> and render as accordion items.
func (b *pagesBuilder) build(ctx context.Context, aboutPath, lineFormat string) (*pageContent, error) {
	b.c.logger.Info("Process " + aboutPath)

	data, err := os.ReadFile(aboutPath) // #nosec G304 -- user-provided metadata file
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPagesMetadata, err)
	}
	var a about
	if err := yamlutil.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPagesMetadata, aboutPath, err)
	}
	if a.Title == "" {
		return nil, fmt.Errorf("%w: %s: missing title", ErrInvalidPagesMetadata, aboutPath)
	}

	switch {
	case len(a.Modules) > 0:
		return b.buildModules(ctx, aboutPath, &a)
	case a.SlidesDir != "":
		return b.buildSlides(ctx, aboutPath, &a, lineFormat)
	default:
		return nil, fmt.Errorf("%w: %s: needs modules or slidesdir", ErrInvalidPagesMetadata, aboutPath)
	}
}

func (b *pagesBuilder) buildModules(ctx context.Context, aboutPath string, a *about) (*pageContent, error) {
	var htmlList, pdfList strings.Builder
	htmlList.WriteString("<c-accordion>\n")
	pdfList.WriteString("<c-accordion>\n")

	for _, module := range a.Modules {
		modPath := filepath.Join(filepath.Dir(aboutPath), module, filepath.Base(aboutPath))
		sub, err := b.build(ctx, modPath, "<p>%s</p>")
		if err != nil {
			return nil, err
		}
		item := fmt.Sprintf(`<c-accordion-item heading="%s" value="%s">`+"\n",
			html.EscapeString(sub.title), html.EscapeString(module))
		htmlList.WriteString(item + sub.html + "</c-accordion-item>\n")
		pdfList.WriteString(item + sub.pdf + "</c-accordion-item>\n")
	}

	htmlList.WriteString("</c-accordion>\n")
	pdfList.WriteString("</c-accordion>\n")
	return &pageContent{title: a.Title, html: htmlList.String(), pdf: pdfList.String()}, nil
}

func (b *pagesBuilder) buildSlides(ctx context.Context, aboutPath string, a *about, lineFormat string) (*pageContent, error) {
	relDir, err := filepath.Rel(b.baseDir, filepath.Dir(aboutPath))
	if err != nil {
		return nil, err
	}
	relURL := filepath.ToSlash(relDir)

	sources, err := filepath.Glob(filepath.Join(filepath.Dir(aboutPath), a.SlidesDir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(sources)

	themeURLBase := path.Join("html", "theme", b.opts.Theme.Name, ThemeStylesheetFile)

	var htmlList, pdfList strings.Builder
	for _, src := range sources {
		meta, err := ReadMetadata(src)
		if err != nil {
			return nil, err
		}

		name := stem(src)
		htmlHref := path.Join("html", relURL, name+".html")
		pdfHref := path.Join("pdf", relURL, name+".pdf")
		label := linkLabel(name, meta.Title)

		htmlList.WriteString(fmt.Sprintf(lineFormat,
			fmt.Sprintf(`<c-link href="%s" target="_blank">%s</c-link>`, html.EscapeString(htmlHref), label)) + "\n")
		pdfList.WriteString(fmt.Sprintf(lineFormat,
			fmt.Sprintf(`<c-link href="%s" target="_blank">%s</c-link>`, html.EscapeString(pdfHref), label)) + "\n")

		themeURL, err := relativeURL(path.Dir(htmlHref), themeURLBase)
		if err != nil {
			return nil, err
		}
		if err := b.convert(ctx, src, FormatHTML, filepath.Join(b.opts.OutputDir, "html", relDir),
			Overrides{ResourceThemeURL: themeURL}); err != nil {
			return nil, err
		}
		if b.opts.WithPDF {
			if err := b.convert(ctx, src, FormatPDF, filepath.Join(b.opts.OutputDir, "pdf", relDir), nil); err != nil {
				return nil, err
			}
		}
	}

	return &pageContent{title: a.Title, html: htmlList.String(), pdf: pdfList.String()}, nil
}

func (b *pagesBuilder) convert(ctx context.Context, src string, format Format, outDir string, extra Overrides) error {
	opts := b.opts.Options
	opts.Format = format
	opts.OutputDir = outDir
	opts.Overrides = opts.Overrides.Merge(extra)

	jobs, err := opts.NewJobs([]string{src})
	if err != nil {
		return err
	}
	return b.c.Convert(ctx, jobs[0])
}

var leadingNumber = regexp.MustCompile(`^\d+`)

// linkLabel is "N. Title" for sources named like 01-intro.md, else the
// title. HTML in the title is reduced to text.
func linkLabel(name, title string) string {
	label := html.EscapeString(pipeline.PlainText(title))
	if m := leadingNumber.FindString(name); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return fmt.Sprintf("%d. %s", n, label)
		}
	}
	return label
}

// relativeURL returns the slash path of target relative to the directory from.
func relativeURL(from, target string) (string, error) {
	rel, err := filepath.Rel(filepath.FromSlash(from), filepath.FromSlash(target))
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// writeZip archives the files under srcDir into zipPath with paths
// relative to srcDir. A missing srcDir gives an empty archive.
func writeZip(zipPath, srcDir string) (err error) {
	f, err := os.Create(zipPath) // #nosec G304 -- inside the new output directory
	if err != nil {
		return fmt.Errorf("creating zip: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("closing zip: %w", closeErr)
		}
	}()

	zw := zip.NewWriter(f)
	if fileutil.DirExists(srcDir) {
		err = filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil || d.IsDir() {
				return walkErr
			}
			return addZipFile(zw, srcDir, p, d)
		})
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("writing zip: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("writing zip: %w", err)
	}
	return nil
}

func addZipFile(zw *zip.Writer, root, p string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(rel)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	src, err := os.Open(p) // #nosec G304 -- walking our own output
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(w, src)
	return err
}
