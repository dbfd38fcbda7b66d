package slidefactory

import (
	"strings"
)

// postProcessArgs builds the Ghostscript command that rewrites input into
// output at printer quality, applying the pdfmark file.
func postProcessArgs(bin, input, pdfmark, output string) []string {
	return []string{
		bin,
		"-q",
		"-dNOPAUSE",
		"-dBATCH",
		"-dSAFER",
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		"-dPDFSETTINGS=/printer",
		"-dDownsampleColorImages=true",
		"-dColorImageResolution=300",
		"-dDownsampleGrayImages=true",
		"-dGrayImageResolution=300",
		"-dDownsampleMonoImages=true",
		"-dMonoImageResolution=300",
		"-dColorConversionStrategy=/LeaveColorUnchanged",
		"-dPreserveAnnots=true",
		"-dDetectDuplicateImages=true",
		"-sOutputFile=" + output,
		input,
		pdfmark,
	}
}

// buildPDFMark returns the DOCINFO pdfmark stamping the metadata.
// Empty fields are left out.
func buildPDFMark(meta *Metadata) string {
	var b strings.Builder
	b.WriteString("[ ")
	for _, field := range []struct{ key, value string }{
		{"Title", meta.Title},
		{"Author", meta.Author},
		{"Subject", meta.DocumentSubject()},
	} {
		if field.value == "" {
			continue
		}
		b.WriteString("/" + field.key + " (" + escapePDFString(field.value) + ") ")
	}
	b.WriteString("/Creator (Slidefactory " + Version + ") /DOCINFO pdfmark")
	return b.String()
}

var pdfStringEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// escapePDFString escapes the characters special in a PDF literal string.
func escapePDFString(s string) string {
	return pdfStringEscaper.Replace(s)
}
