// Package tokens loads DTCG design token files as seed variables.
package tokens

// TokenFile represents a design token file configuration
type TokenFile struct {
	// Path to the token file, or a glob pattern matching several files
	Path string

	// Prefix for CSS variables from this file
	Prefix string

	// GroupMarkers indicate terminal paths that are also groups
	GroupMarkers []string
}

// Variables maps CSS custom property names (e.g. "--ds-color-primary") to token values
type Variables map[string]string

// Merge copies other into v, replacing existing names
func (v Variables) Merge(other Variables) {
	for name, value := range other {
		v[name] = value
	}
}
