// Package config loads css-variables configuration files.
//
// A configuration may live in .config/css-variables.{yaml,yml,json},
// css-variables.config.json, or under the "cssVariables" key of package.json.
// JSON files may contain comments. When a configuration names no token files,
// the design token files of a .config/design-tokens.{yaml,json} file are used.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/cssvars/internal/log"
	"bennypowers.dev/cssvars/internal/tokens"
	"bennypowers.dev/cssvars/internal/transform"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// PackageJSONKey is the package.json field holding the configuration
const PackageJSONKey = "cssVariables"

// ErrNoConfig is returned by Load for a package.json without a cssVariables key
var ErrNoConfig = errors.New("no css-variables configuration")

// FileNames are the configuration files Discover looks for, in order
var FileNames = []string{
	filepath.Join(".config", "css-variables.yaml"),
	filepath.Join(".config", "css-variables.yml"),
	filepath.Join(".config", "css-variables.json"),
	"css-variables.config.json",
	"package.json",
}

// Config is a css-variables configuration
type Config struct {
	// Variables are seed variables, keyed by name with or without the -- prefix
	Variables map[string]VariableValue `yaml:"variables" json:"variables"`

	// Preserve is the retention policy for variable declarations
	Preserve Preserve `yaml:"preserve" json:"preserve"`

	// Tokens are design token files whose tokens become seed variables
	Tokens []TokenFileSpec `yaml:"tokens" json:"tokens"`

	// Path is the file the configuration was read from
	Path string `yaml:"-" json:"-"`

	// Dir is the directory relative token paths are resolved against
	Dir string `yaml:"-" json:"-"`
}

// Load reads a configuration file. The format follows the extension; package.json
// is read from its cssVariables key.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: the configuration path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{}
	switch {
	case filepath.Base(path) == "package.json":
		cfg, err = parsePackageJSON(data)
	case hasExt(path, ".yaml", ".yml"):
		err = yaml.Unmarshal(data, cfg)
	case hasExt(path, ".json", ".jsonc"):
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		err = fmt.Errorf("unsupported config file type %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cfg.Path = path
	cfg.Dir = filepath.Dir(abs)
	return cfg, nil
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// parsePackageJSON extracts the cssVariables object from package.json
func parsePackageJSON(data []byte) (*Config, error) {
	var pkgJSON map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkgJSON); err != nil {
		return nil, err
	}

	raw, ok := pkgJSON[PackageJSONKey]
	if !ok {
		return nil, ErrNoConfig
	}

	cfg := &Config{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", PackageJSONKey, err)
	}
	return cfg, nil
}

// Discover looks for a configuration file in dir. It returns nil and no error when
// there is none.
func Discover(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		cfg, err := Load(path)
		if errors.Is(err, ErrNoConfig) {
			continue
		}
		if err != nil {
			return nil, err
		}
		log.Info("Using config %s", path)
		return cfg, nil
	}
	return nil, nil
}

// TokenFiles returns the configured token files, falling back to the files of a
// design tokens configuration next to this one
func (c *Config) TokenFiles() ([]tokens.TokenFile, error) {
	if len(c.Tokens) > 0 {
		files := make([]tokens.TokenFile, 0, len(c.Tokens))
		for _, spec := range c.Tokens {
			files = append(files, spec.TokenFile())
		}
		return files, nil
	}
	return DesignTokensFiles(c.Dir)
}

// Options builds transform options: token values first, then explicit variables,
// which win over tokens of the same name
func (c *Config) Options() (transform.Options, error) {
	opts := transform.Options{
		Variables: make(map[string]string),
		Preserve:  c.Preserve.Preserve,
	}

	files, err := c.TokenFiles()
	if err != nil {
		return opts, err
	}
	if len(files) > 0 {
		vars, err := tokens.Load(c.Dir, files)
		if err != nil {
			return opts, err
		}
		for name, value := range vars {
			opts.Variables[name] = value
		}
	}

	for name, value := range c.Variables {
		opts.Variables[normalizeName(name)] = string(value)
	}
	return opts, nil
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
