package render

import (
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig resolves a manifest and variant into the renderer view of a
// theme. Variant tokens and asset files override the manifest defaults.
func ThemeConfig(manifest *theme.Manifest, variant string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, nil
	}
	if strings.TrimSpace(manifest.Name) == "" {
		return nil, fmt.Errorf("render: theme manifest name is required")
	}

	tokens := copyStrings(manifest.Tokens)
	files := copyStrings(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	variant = strings.TrimSpace(variant)
	if variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", manifest.Name, variant)
		}
		for key, value := range v.Tokens {
			tokens[key] = value
		}
		for key, value := range v.Assets.Files {
			files[key] = value
		}
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:   manifest.Name,
		Variant: variant,
		Tokens:  tokens,
		CSSVars: cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.Contains(file, "://") || strings.HasPrefix(file, "/") || prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}, nil
}

// CSSVarsStyle serialises CSS variables in key order for a style block.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}

func copyStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
