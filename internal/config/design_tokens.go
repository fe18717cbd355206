package config

import (
	asimonimConfig "bennypowers.dev/asimonim/config"
	"bennypowers.dev/asimonim/fs"
	"bennypowers.dev/cssvars/internal/tokens"
)

// DesignTokensFiles reads the token files of a .config/design-tokens.{yaml,json}
// file in root. Returns nil if no such file exists (not an error).
func DesignTokensFiles(root string) ([]tokens.TokenFile, error) {
	if root == "" {
		return nil, nil
	}

	cfg, err := asimonimConfig.Load(fs.NewOSFileSystem(), root)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil
	}

	files := make([]tokens.TokenFile, 0, len(cfg.Files))
	for _, spec := range cfg.Files {
		file := tokens.TokenFile{
			Path:         spec.Path,
			Prefix:       cfg.Prefix,
			GroupMarkers: cfg.GroupMarkers,
		}
		if spec.Prefix != "" {
			file.Prefix = spec.Prefix
		}
		if len(spec.GroupMarkers) > 0 {
			file.GroupMarkers = spec.GroupMarkers
		}
		files = append(files, file)
	}
	return files, nil
}
