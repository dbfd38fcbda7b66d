package main

import (
	"errors"
	"fmt"

	"github.com/kballard/go-shellquote"
	flag "github.com/spf13/pflag"

	slidefactory "github.com/alnah/go-slidefactory"
	"github.com/alnah/go-slidefactory/internal/config"
	"github.com/alnah/go-slidefactory/internal/fileutil"
	"github.com/alnah/go-slidefactory/internal/hints"
)

// settings are the resolved inputs of a conversion command.
type settings struct {
	cfg     *config.Config
	options slidefactory.Options
	tools   slidefactory.Tools
}

// loadConfig layers the config file, the environment and the flags set
// on fs, in increasing priority.
func loadConfig(fs *flag.FlagSet, f *cliFlags) (*config.Config, error) {
	env := loadEnvConfig()

	name := f.common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	mergeFlags(fs, f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. Only flags given on the
// command line are applied, so empty flag values never clear the config.
func mergeFlags(fs *flag.FlagSet, f *cliFlags, cfg *config.Config) {
	changed := func(name string) bool {
		return fs.Lookup(name) != nil && fs.Changed(name)
	}

	values := []struct {
		flag string
		src  string
		dst  *string
	}{
		{"root", f.setup.root, &cfg.Root},
		{"shared-root", f.setup.sharedRoot, &cfg.SharedRoot},
		{"theme", f.setup.theme, &cfg.Theme},
		{"pandoc", f.setup.pandoc, &cfg.Tools.Pandoc},
		{"browser", f.setup.browser, &cfg.Tools.Browser},
		{"gs", f.setup.ghostscript, &cfg.Tools.Ghostscript},
		{"output", f.output.output, &cfg.Output},
		{"pandoc-args", f.conversion.pandocArgs, &cfg.PandocArgs},
		{"info-content", f.pages.infoContent, &cfg.Pages.InfoContent},
		{"page-template", f.pages.template, &cfg.Pages.Template},
	}
	for _, s := range values {
		if changed(s.flag) {
			*s.dst = s.src
		}
	}

	if changed("format") {
		cfg.Format = f.output.format.String()
	}
	if changed("filters") {
		cfg.Filters = f.conversion.filters
	}
	if changed("no-math") {
		cfg.NoMath = f.conversion.noMath
	}
	if changed("with-pdf") {
		cfg.Pages.WithPDF = f.pages.withPDF
	}
	for k, v := range f.conversion.resources {
		if changed(k.Flag()) {
			cfg.Resources.Set(string(k), *v)
		}
	}
}

// resolveInstallation picks the installation root: flag, environment,
// config, then the directory of the executable.
func resolveInstallation(cfg *config.Config, env *Environment) (*slidefactory.Installation, error) {
	root := cfg.Root
	if root == "" && env.ExecutableRoot != nil {
		var err error
		if root, err = env.ExecutableRoot(); err != nil {
			return nil, err
		}
	}
	return slidefactory.NewInstallation(root, cfg.SharedRoot)
}

// resolveSettings turns a merged config into converter options.
func resolveSettings(cfg *config.Config, env *Environment) (*settings, error) {
	inst, err := resolveInstallation(cfg, env)
	if err != nil {
		return nil, err
	}

	theme, err := slidefactory.ResolveTheme(cfg.Theme, inst.ThemeRoot())
	if err != nil {
		if errors.Is(err, slidefactory.ErrThemeNotFound) && fileutil.IsFilePath(cfg.Theme) {
			return nil, fmt.Errorf("%w%s", err, hints.ForThemeNotFound(slidefactory.AvailableThemes(inst.ThemeRoot())))
		}
		return nil, err
	}

	format := slidefactory.DefaultFormat
	if cfg.Format != "" {
		if format, err = slidefactory.ParseFormat(cfg.Format); err != nil {
			return nil, err
		}
	}

	overrides, err := slidefactory.ParseOverrides(cfg.Resources.Map())
	if err != nil {
		return nil, err
	}

	extraArgs, err := shellquote.Split(cfg.PandocArgs)
	if err != nil {
		return nil, fmt.Errorf("%w: pandocArgs: %v", config.ErrInvalidValue, err)
	}

	return &settings{
		cfg: cfg,
		options: slidefactory.Options{
			Format:       format,
			Theme:        theme,
			Installation: inst,
			Overrides:    overrides,
			OutputDir:    cfg.Output,
			Filters:      cfg.Filters,
			ExtraArgs:    extraArgs,
			NoMath:       cfg.NoMath,
		},
		tools: slidefactory.Tools{
			Pandoc:      cfg.Tools.Pandoc,
			Browser:     cfg.Tools.Browser,
			Ghostscript: cfg.Tools.Ghostscript,
		},
	}, nil
}
