package tokens

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	asimonimParser "bennypowers.dev/asimonim/parser"
	"bennypowers.dev/asimonim/resolver"
	"bennypowers.dev/asimonim/schema"
	"bennypowers.dev/asimonim/token"
	"bennypowers.dev/asimonim/validator"
	"bennypowers.dev/cssvars/internal/files"
	"bennypowers.dev/cssvars/internal/log"
)

// Load reads every configured token file, resolves aliases across all of them and
// returns their values keyed by CSS variable name. Paths are relative to root.
// A name defined by more than one file takes the value of the last one.
func Load(root string, specs []TokenFile) (Variables, error) {
	var all []*loadedToken
	for _, spec := range specs {
		if spec.Path == "" {
			return nil, fmt.Errorf("token file path must not be empty")
		}
		paths, err := files.Expand(root, []string{spec.Path})
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			loaded, err := loadFile(path, spec)
			if err != nil {
				return nil, err
			}
			all = append(all, loaded...)
		}
	}

	return resolve(all), nil
}

// loadedToken pairs a parsed token with the file it came from
type loadedToken struct {
	path string
	tok  *token.Token
}

func loadFile(path string, spec TokenFile) ([]*loadedToken, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".yaml", ".yml":
		// Supported
	default:
		return nil, fmt.Errorf("unsupported token file type %s: %s", ext, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: token files are named by the user's configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", path, err)
	}

	parser := asimonimParser.NewJSONParser()
	parsed, err := parser.Parse(data, asimonimParser.Options{
		Prefix:       spec.Prefix,
		GroupMarkers: spec.GroupMarkers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", path, err)
	}

	version := detectVersion(parsed)
	for _, ve := range validator.ValidateConsistencyWithPath(data, version, path) {
		log.Warn("Schema validation: %s", ve.Error())
	}

	loaded := make([]*loadedToken, 0, len(parsed))
	for _, tok := range parsed {
		loaded = append(loaded, &loadedToken{path: path, tok: tok})
	}
	log.Info("Loaded %d tokens from %s", len(loaded), path)
	return loaded, nil
}

// resolve resolves aliases and converts the tokens to variables
func resolve(loaded []*loadedToken) Variables {
	vars := make(Variables, len(loaded))
	if len(loaded) == 0 {
		return vars
	}

	list := make([]*token.Token, 0, len(loaded))
	for _, l := range loaded {
		list = append(list, l.tok)
	}
	if err := resolver.ResolveAliases(list, detectVersion(list)); err != nil {
		log.Warn("Failed to resolve token aliases: %v", err)
	}

	for _, l := range loaded {
		value, ok := tokenValue(l.tok)
		if !ok {
			log.Debug("Skipping token %s from %s: no literal value", l.tok.Name, l.path)
			continue
		}
		name := l.tok.CSSVariableName()
		if previous, exists := vars[name]; exists && previous != value {
			log.Debug("Token %s from %s replaces an earlier definition", name, l.path)
		}
		vars[name] = value
	}
	return vars
}

// detectVersion uses the first token's schema version, defaulting to the draft schema
func detectVersion(list []*token.Token) schema.Version {
	for _, t := range list {
		if t.SchemaVersion != schema.Unknown {
			return t.SchemaVersion
		}
	}
	return schema.Draft
}

// tokenValue returns the CSS text of a token. Structured values that have no
// single CSS representation are reported as missing.
func tokenValue(tok *token.Token) (string, bool) {
	if tok.IsResolved {
		switch v := tok.ResolvedValue.(type) {
		case string:
			return literal(v)
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), true
		case int:
			return strconv.Itoa(v), true
		case bool:
			return strconv.FormatBool(v), true
		case nil:
			// fall through to the raw value
		default:
			return structuredValue(v)
		}
	}
	return literal(tok.Value)
}

// literal rejects values that still hold an unresolved {alias}
func literal(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasPrefix(value, "{") && strings.HasSuffix(value, "}") {
		return "", false
	}
	return value, true
}
