package config

import (
	"encoding/json"
	"fmt"
	"strconv"

	"bennypowers.dev/cssvars/internal/tokens"
	"bennypowers.dev/cssvars/internal/transform"
	"gopkg.in/yaml.v3"
)

// VariableValue is a seed variable value. Files may give it as a scalar
// (`--gap: 8px`) or as an object with a value key (`--gap: {value: 8px}`).
type VariableValue string

// UnmarshalYAML accepts a scalar or a mapping with a value key
func (v *VariableValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = VariableValue(node.Value)
		return nil
	case yaml.MappingNode:
		var obj struct {
			Value *yaml.Node `yaml:"value"`
		}
		if err := node.Decode(&obj); err != nil {
			return err
		}
		if obj.Value == nil || obj.Value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: variable object must have a scalar value key", node.Line)
		}
		*v = VariableValue(obj.Value.Value)
		return nil
	default:
		return fmt.Errorf("line %d: variable must be a string or an object with a value key", node.Line)
	}
}

// UnmarshalJSON accepts a string, a number or an object with a value key
func (v *VariableValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if obj, ok := raw.(map[string]any); ok {
		inner, ok := obj["value"]
		if !ok {
			return fmt.Errorf("variable object must have a value key")
		}
		raw = inner
	}

	switch val := raw.(type) {
	case string:
		*v = VariableValue(val)
	case float64:
		*v = VariableValue(strconv.FormatFloat(val, 'f', -1, 64))
	default:
		return fmt.Errorf("variable must be a string, a number or an object with a value key")
	}
	return nil
}

// Preserve is the preserve option: false, true or "computed"
type Preserve struct {
	transform.Preserve
	// Set records whether the file specified the option at all
	Set bool
}

func (p *Preserve) set(s string) error {
	mode, err := transform.ParsePreserve(s)
	if err != nil {
		return err
	}
	p.Preserve = mode
	p.Set = true
	return nil
}

// UnmarshalYAML accepts a boolean or a string
func (p *Preserve) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: preserve must be true, false or computed", node.Line)
	}
	return p.set(node.Value)
}

// UnmarshalJSON accepts a boolean or a string
func (p *Preserve) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case bool:
		return p.set(strconv.FormatBool(val))
	case string:
		return p.set(val)
	default:
		return fmt.Errorf("preserve must be true, false or computed")
	}
}

// TokenFileSpec is a token file entry: a path string or an object with path, prefix
// and groupMarkers
type TokenFileSpec struct {
	Path         string   `yaml:"path" json:"path"`
	Prefix       string   `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	GroupMarkers []string `yaml:"groupMarkers,omitempty" json:"groupMarkers,omitempty"`
}

// tokenFileSpec has the same fields without the custom decoders
type tokenFileSpec TokenFileSpec

// UnmarshalYAML accepts a scalar path or a mapping
func (s *TokenFileSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = TokenFileSpec{Path: node.Value}
		return nil
	}
	var spec tokenFileSpec
	if err := node.Decode(&spec); err != nil {
		return err
	}
	*s = TokenFileSpec(spec)
	return nil
}

// UnmarshalJSON accepts a string path or an object
func (s *TokenFileSpec) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		*s = TokenFileSpec{Path: path}
		return nil
	}
	var spec tokenFileSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return err
	}
	*s = TokenFileSpec(spec)
	return nil
}

// TokenFile converts the entry to a token loader configuration
func (s TokenFileSpec) TokenFile() tokens.TokenFile {
	return tokens.TokenFile{
		Path:         s.Path,
		Prefix:       s.Prefix,
		GroupMarkers: s.GroupMarkers,
	}
}
