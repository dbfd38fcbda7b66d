package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	slidefactory "github.com/alnah/go-slidefactory"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long       string   // --output
	Short      string   // -o (empty if none)
	Type       flagType // completion type
	Desc       string   // help text
	Values     []string // for enum flags
	FileGlob   string   // for file flags
	Repeatable bool     // may be given more than once
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed argument values
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.md")
	TakesDirs   bool     // accepts directory arguments
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"format": {Values: formatValues()},

	// File flags with glob patterns
	"config":         {FileGlob: "*.yaml,*.yml"},
	"defaults-fpath": {FileGlob: "*.yaml,*.yml"},
	"template-fpath": {FileGlob: "*.html"},

	// Directory flags
	"output":        {IsDir: true},
	"root":          {IsDir: true},
	"shared-root":   {IsDir: true},
	"theme":         {IsDir: true},
	"page-template": {IsDir: true},
}

func formatValues() []string {
	values := make([]string, 0, len(slidefactory.Formats()))
	for _, f := range slidefactory.Formats() {
		values = append(values, f.String())
	}
	return values
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "stringArray":
			fd.Repeatable = true
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	flagsOf := func(build func(*cliFlags, io.Writer) *flag.FlagSet) []flagDef {
		return extractFlagsFromFlagSet(build(&cliFlags{}, io.Discard))
	}

	return []commandDef{
		{
			Name:        "slides",
			Desc:        "Convert Markdown decks",
			Flags:       flagsOf(buildSlidesFlagSet),
			TakesFiles:  true,
			FilePattern: "*.md",
		},
		{
			Name:        "pages",
			Desc:        "Build a static web site from a course directory",
			Flags:       flagsOf(buildPagesFlagSet),
			TakesFiles:  true,
			FilePattern: "*.yaml,*.yml",
		},
		{
			Name:      "install",
			Desc:      "Copy the installation to a private directory",
			Flags:     flagsOf(buildInstallFlagSet),
			TakesDirs: true,
		},
		{
			Name:  "doctor",
			Desc:  "Check the installation and external programs",
			Flags: flagsOf(buildDoctorFlagSet),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)},
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: commands,
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	case ShellPowerShell:
		script = generatePowerShell(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func flagNames(flags []flagDef) []string {
	var names []string
	for _, f := range flags {
		names = append(names, "--"+f.Long)
		if f.Short != "" {
			names = append(names, "-"+f.Short)
		}
	}
	return names
}

// globExtensions turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(g), "*."))
	}
	return exts
}

func generateBash(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for slidefactory\n\n")
	b.WriteString("_slidefactory_completions() {\n")
	b.WriteString("    local cur prev cmd i\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=slides\n")
	b.WriteString("    for ((i = 1; i < COMP_CWORD; i++)); do\n")
	fmt.Fprintf(&b, "        case \"${COMP_WORDS[i]}\" in\n            %s)\n", strings.Join(commandNames(cmds), "|"))
	b.WriteString("                cmd=\"${COMP_WORDS[i]}\"\n                break\n                ;;\n        esac\n")
	b.WriteString("    done\n\n")
	b.WriteString("    if [[ $COMP_CWORD -eq 1 && \"$cur\" != -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\") $(compgen -f -X '!*.md' -- \"$cur\"))\n",
		strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n    fi\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var valued []flagDef
		for _, f := range c.Flags {
			if f.Type != flagBool {
				valued = append(valued, f)
			}
		}
		if len(valued) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			for _, f := range valued {
				pattern := "--" + f.Long
				if f.Short != "" {
					pattern += "|-" + f.Short
				}
				fmt.Fprintf(&b, "        %s)\n", pattern)
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
				case flagFile:
					fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\"))\n",
						strings.Join(globExtensions(f.FileGlob), "|"))
				case flagDir:
					b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
				default:
					b.WriteString("            COMPREPLY=()\n")
				}
				b.WriteString("            return\n            ;;\n")
			}
			b.WriteString("        esac\n")
		}

		if len(c.Flags) > 0 {
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagNames(c.Flags), " "))
			b.WriteString("            return\n        fi\n")
		}

		switch {
		case c.TakesFiles:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\"))\n",
				strings.Join(globExtensions(c.FilePattern), "|"))
		case c.TakesDirs:
			b.WriteString("        COMPREPLY=($(compgen -d -- \"$cur\"))\n")
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(c.Args, " "))
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _slidefactory_completions slidefactory\n")
	return b.String()
}

var zshEscaper = strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)

// zshFlagSpec formats one _arguments specification.
func zshFlagSpec(f flagDef) string {
	desc := zshEscaper.Replace(f.Desc)

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		var globs []string
		for _, ext := range globExtensions(f.FileGlob) {
			globs = append(globs, "-g \"*."+ext+"\"")
		}
		action = ":file:_files " + strings.Join(globs, " ")
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + f.Long + ": "
	}

	repeat := ""
	if f.Repeatable {
		repeat = "*"
	}
	if f.Short != "" {
		return fmt.Sprintf("'%s(-%s --%s)'{-%s,--%s}'[%s]%s'", repeat, f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return fmt.Sprintf("'%s--%s[%s]%s'", repeat, f.Long, desc, action)
}

func generateZsh(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef slidefactory\n\n")
	b.WriteString("_slidefactory() {\n")
	b.WriteString("    local -a commands\n    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscaper.Replace(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        _files -g \"*.md\"\n")
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    local cmd=\"$words[2]\"\n")
	b.WriteString("    if (( ${commands[(I)$cmd:*]} )); then\n")
	b.WriteString("        shift words\n        (( CURRENT-- ))\n")
	b.WriteString("    else\n        cmd=slides\n    fi\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments -s")
		for _, f := range c.Flags {
			b.WriteString(" \\\n            " + zshFlagSpec(f))
		}
		switch {
		case c.TakesFiles:
			fmt.Fprintf(&b, " \\\n            '*:file:_files -g \"%s\"'", c.FilePattern)
		case c.TakesDirs:
			b.WriteString(" \\\n            '*:directory:_files -/'")
		case len(c.Args) > 0:
			fmt.Fprintf(&b, " \\\n            '1:argument:(%s)'", strings.Join(c.Args, " "))
		}
		b.WriteString("\n        ;;\n")
	}
	b.WriteString("    esac\n}\n\n")
	b.WriteString("compdef _slidefactory slidefactory\n")
	return b.String()
}

var fishEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func generateFish(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for slidefactory\n\n")
	b.WriteString("function __fish_slidefactory_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\nend\n\n")
	b.WriteString("function __fish_slidefactory_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test \"$cmd[2]\" = \"$argv[1]\"\nend\n\n")

	b.WriteString("complete -c slidefactory -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c slidefactory -n __fish_slidefactory_needs_command -a %s -d '%s'\n",
			c.Name, fishEscaper.Replace(c.Desc))
	}
	b.WriteString("complete -c slidefactory -n __fish_slidefactory_needs_command -a '(__fish_complete_suffix .md)'\n")

	for _, c := range cmds {
		b.WriteString("\n")
		cond := fmt.Sprintf("'__fish_slidefactory_using_command %s'", c.Name)
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c slidefactory -n %s", cond)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			fmt.Fprintf(&b, " -l %s", f.Long)
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(&b, " -r -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(&b, " -r -a '(__fish_complete_suffix .%s)'", globExtensions(f.FileGlob)[0])
			case flagDir:
				b.WriteString(" -r -a '(__fish_complete_directories)'")
			default:
				b.WriteString(" -r")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscaper.Replace(f.Desc))
		}
		switch {
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c slidefactory -n %s -a '(__fish_complete_suffix .%s)'\n",
				cond, globExtensions(c.FilePattern)[0])
		case c.TakesDirs:
			fmt.Fprintf(&b, "complete -c slidefactory -n %s -a '(__fish_complete_directories)'\n", cond)
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c slidefactory -n %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
	}
	return b.String()
}

func psList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# PowerShell completion for slidefactory\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName slidefactory -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    $command = ''\n")
	b.WriteString("    if ($words.Count -gt 2 -or ($words.Count -eq 2 -and $wordToComplete -eq '')) {\n")
	b.WriteString("        $command = $words[1]\n    }\n\n")
	b.WriteString("    $completions = switch ($command) {\n")
	for _, c := range cmds {
		values := append(flagNames(c.Flags), c.Args...)
		if len(values) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        '%s' { %s }\n", c.Name, psList(values))
	}
	fmt.Fprintf(&b, "        default { %s }\n", psList(commandNames(cmds)))
	b.WriteString("    }\n\n")
	b.WriteString("    $completions | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n}\n")
	return b.String()
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slidefactory completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(slidefactory completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(slidefactory completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    slidefactory completion fish > ~/.config/fish/completions/slidefactory.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    slidefactory completion powershell | Out-String | Invoke-Expression")
}
