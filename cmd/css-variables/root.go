package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/cssvars/internal/config"
	"bennypowers.dev/cssvars/internal/diff"
	"bennypowers.dev/cssvars/internal/documents"
	"bennypowers.dev/cssvars/internal/files"
	"bennypowers.dev/cssvars/internal/log"
	"bennypowers.dev/cssvars/internal/transform"
	"bennypowers.dev/cssvars/internal/version"
	"github.com/spf13/cobra"
)

// flags holds the command line options of one invocation
type flags struct {
	config   string
	preserve string
	vars     []string
	tokens   []string
	outDir   string
	write    bool
	diff     bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "css-variables [flags] <file|glob>...",
		Short: "Resolve CSS custom properties at build time",
		Long: `css-variables replaces var() references with the values of the custom
properties they name, following the cascade of rules and at-rules, and removes
the variable declarations afterwards.

CSS files are transformed directly. HTML files are transformed in their <style>
elements and style attributes, JS and TS files in their css and html tagged
templates.`,
		Version: version.Build().String(),
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.config, "config", "c", "", "config file (default: discovered in the working directory)")
	cmd.Flags().StringVar(&f.preserve, "preserve", "false", "keep variable declarations: false, true or computed")
	cmd.Flags().StringArrayVar(&f.vars, "var", nil, "seed variable as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.tokens, "tokens", nil, "design token file or glob to seed variables from (repeatable)")
	cmd.Flags().StringVarP(&f.outDir, "out-dir", "o", "", "write results under this directory")
	cmd.Flags().BoolVarP(&f.write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&f.diff, "diff", false, "print a diff instead of the result")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	cmd.MarkFlagsMutuallyExclusive("out-dir", "write", "diff")

	return cmd
}

func run(cmd *cobra.Command, f *flags, args []string) error {
	level, err := log.ParseLevel(f.logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetOutput(cmd.ErrOrStderr())

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	opts, err := resolveOptions(cmd, f, cwd)
	if err != nil {
		return err
	}

	paths, err := files.Expand(cwd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var errs []error
	for _, path := range paths {
		if err := processFile(out, f, cwd, path, opts); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", displayPath(cwd, path), err))
		}
	}
	return errors.Join(errs...)
}

// resolveOptions merges the configuration file with the command line. Flags win.
func resolveOptions(cmd *cobra.Command, f *flags, cwd string) (transform.Options, error) {
	var cfg *config.Config
	var err error
	if f.config != "" {
		cfg, err = config.Load(f.config)
	} else {
		cfg, err = config.Discover(cwd)
	}
	if err != nil {
		return transform.Options{}, err
	}
	if cfg == nil {
		cfg = &config.Config{Dir: cwd}
	}

	for _, t := range f.tokens {
		path := t
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		cfg.Tokens = append(cfg.Tokens, config.TokenFileSpec{Path: path})
	}

	opts, err := cfg.Options()
	if err != nil {
		return opts, err
	}

	if cmd.Flags().Changed("preserve") {
		opts.Preserve, err = transform.ParsePreserve(f.preserve)
		if err != nil {
			return opts, err
		}
	}

	for _, v := range f.vars {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return opts, fmt.Errorf("invalid --var %q: expected name=value", v)
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		opts.Variables[name] = value
	}

	return opts, nil
}

func processFile(out io.Writer, f *flags, cwd, path string, opts transform.Options) error {
	languageID := documents.LanguageIDFromPath(path)
	if languageID == "" {
		return fmt.Errorf("%w: %s", documents.ErrUnsupportedLanguage, filepath.Ext(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: input files are named on the command line
	if err != nil {
		return err
	}
	content := string(data)

	result, err := documents.NewDocument(path, languageID, content).Transform(opts)
	if err != nil {
		return err
	}

	name := displayPath(cwd, path)
	log.Info("%s: %d resolved, %d unresolved, %d variables removed, %d rules removed",
		name, result.Stats.Resolved, result.Stats.Unresolved, result.Stats.Removed, result.Stats.RulesRemoved)

	switch {
	case f.diff:
		_, err = io.WriteString(out, diff.Unified(name, content, result.Content, diff.NewColors()))
		return err

	case f.write:
		if result.Content == content {
			return nil
		}
		return os.WriteFile(path, []byte(result.Content), info.Mode().Perm())

	case f.outDir != "":
		dest := filepath.Join(f.outDir, outputName(cwd, path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		return os.WriteFile(dest, []byte(result.Content), info.Mode().Perm())

	default:
		_, err = io.WriteString(out, result.Content)
		return err
	}
}

// displayPath shortens path relative to the working directory when it is below it
func displayPath(cwd, path string) string {
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// outputName is the path of a result under the output directory. Files outside the
// working directory keep only their base name.
func outputName(cwd, path string) string {
	rel, err := filepath.Rel(cwd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(path)
	}
	return rel
}
