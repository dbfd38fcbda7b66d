package slidefactory

// engineArgs builds the pandoc command line of a job writing to output.
//
// Order matters to pandoc only for filters, which run in the given order;
// the rest follows the layout of the command users see in dry-run output.
func engineArgs(bin string, job *Job, output string) []string {
	args := []string{
		bin,
		"--defaults=" + job.Resources[ResourceDefaults],
		"--template=" + job.Resources[ResourceTemplate],
	}
	for _, v := range engineVariables(job) {
		args = append(args, "--variable="+v.key+":"+v.value)
	}
	args = append(args, job.ExtraArgs...)
	if job.Math {
		args = append(args, "--mathjax")
	}
	if job.Format.EmbedsResources() {
		args = append(args, "--embed-resources")
	}
	for _, f := range job.Filters {
		args = append(args, "--filter="+f)
	}
	return append(args, "--output="+output, job.Input)
}

type engineVariable struct {
	key   string
	value string
}

// engineVariables maps resources to template variables.
// When resources are embedded, pandoc cannot inline MathJax (it loads its
// fonts and extensions lazily), so the script is kept as an external
// header include and the template's own MathJax tag is disabled.
func engineVariables(job *Job) []engineVariable {
	vars := []engineVariable{
		{"theme-url", job.Resources[ResourceThemeURL]},
		{"revealjs-url", job.Resources[ResourceRevealJS]},
		{"mathjaxurl", job.Resources[ResourceMathJax]},
		{"css", job.Resources[ResourceFonts]},
	}
	if job.Format.EmbedsResources() && job.Math {
		vars[2].value = ""
		vars = append(vars, engineVariable{
			"header-includes",
			`<script src="` + job.Resources[ResourceMathJax] + `"></script>`,
		})
	}
	return vars
}
