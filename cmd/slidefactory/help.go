package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slidefactory [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  slides       Convert Markdown decks (default command)")
	fmt.Fprintln(w, "  pages        Build a static web site from a course directory")
	fmt.Fprintln(w, "  install      Copy the installation to a private directory")
	fmt.Fprintln(w, "  doctor       Check the installation and external programs")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'slidefactory help <command>' for details on a specific command.")
}

// printSlidesUsage prints usage for the slides command.
func printSlidesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slidefactory [slides] <input.md>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown decks to reveal.js HTML or PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input.md    One or more Markdown files, converted in order")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -f, --format <s>          Format: "+formatNames())
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: beside each input)")
	fmt.Fprintln(w)
	printSetupUsage(w)
	printConversionUsage(w)
	printCommonUsage(w)
}

// printPagesUsage prints usage for the pages command.
func printPagesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slidefactory pages <about.yaml> <output-dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a static site with one HTML deck per slide file and an index page.")
	fmt.Fprintln(w, "about.yaml has a title and either slidesdir, the directory of the decks,")
	fmt.Fprintln(w, "or modules, subdirectories each holding their own about.yaml.")
	fmt.Fprintln(w, "The output directory must not exist.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pages:")
	fmt.Fprintln(w, "      --with-pdf            Also build PDFs and slides.zip")
	fmt.Fprintln(w, "      --info-content <s>    Markdown for the About card")
	fmt.Fprintln(w, "      --page-template <dir> Directory holding a custom index.html")
	fmt.Fprintln(w)
	printSetupUsage(w)
	printConversionUsage(w)
	printCommonUsage(w)
}

// printInstallUsage prints usage for the install command.
func printInstallUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slidefactory install <path> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Copy the installation to path, rewriting references to the old root.")
	fmt.Fprintln(w, "A private installation can produce html-local output.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "      --root <dir>          Installation to copy")
	fmt.Fprintln(w, "      --shared-root <dir>   Root of the shared installation")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slidefactory doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the installation, the themes and the external programs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --root <dir>          Installation root")
	fmt.Fprintln(w, "      --shared-root <dir>   Root of the shared installation")
	fmt.Fprintln(w, "      --pandoc <bin>        pandoc binary")
	fmt.Fprintln(w, "      --browser <bin>       Chrome/Chromium binary")
	fmt.Fprintln(w, "      --gs <bin>            Ghostscript binary")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ready (warnings allowed), 1 errors found.")
}

func printSetupUsage(w io.Writer) {
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "      --root <dir>          Installation root (themes, bundled assets)")
	fmt.Fprintln(w, "      --shared-root <dir>   Root of the shared installation")
	fmt.Fprintln(w, "  -t, --theme <s>           Theme name or directory path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Programs:")
	fmt.Fprintln(w, "      --pandoc <bin>        pandoc binary")
	fmt.Fprintln(w, "      --browser <bin>       Chrome/Chromium binary")
	fmt.Fprintln(w, "      --gs <bin>            Ghostscript binary")
	fmt.Fprintln(w)
}

func printConversionUsage(w io.Writer) {
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --filters <s>         Pandoc filter, repeatable, applied in order")
	fmt.Fprintln(w, "      --pandoc-args <s>     Extra pandoc arguments, shell-quoted")
	fmt.Fprintln(w, "      --no-math             Disable math rendering")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resources (path or URL overrides, '_' and '-' are interchangeable):")
	fmt.Fprintln(w, "      --defaults-fpath <p>  Pandoc defaults file")
	fmt.Fprintln(w, "      --template-fpath <p>  Pandoc template")
	fmt.Fprintln(w, "      --theme-url <u>       Theme stylesheet")
	fmt.Fprintln(w, "      --revealjs-url <u>    reveal.js base")
	fmt.Fprintln(w, "      --mathjax-url <u>     MathJax script")
	fmt.Fprintln(w, "      --fonts-url <u>       Font stylesheet")
	fmt.Fprintln(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -n, --dry-run             Print commands without running them")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show commands and tool output")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "slides":
		printSlidesUsage(env.Stdout)
	case "pages":
		printPagesUsage(env.Stdout)
	case "install":
		printInstallUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: slidefactory version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: slidefactory help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
