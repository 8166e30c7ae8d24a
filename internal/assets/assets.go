// Package assets resolves icon names to embedded PNG images.
package assets

import (
	"embed"
	"errors"
	"sort"
	"strings"
)

//go:embed icons/*.png
var iconFiles embed.FS

// ErrNotFound is returned when no embedded image matches the requested name.
var ErrNotFound = errors.New("no icon asset with that name")

const (
	iconDir    = "icons"
	iconSuffix = ".png"
)

// Resolve maps a path-like name to an embedded PNG image. Leading
// slashes are stripped and ".png" is appended before lookup, so both
// "sun" and "/sun" resolve to the same asset. Empty names and unknown
// names return ErrNotFound.
func Resolve(name string) ([]byte, error) {
	trimmed := strings.TrimLeft(name, "/")
	if trimmed == "" {
		return nil, ErrNotFound
	}
	data, err := iconFiles.ReadFile(iconDir + "/" + trimmed + iconSuffix)
	if err != nil {
		return nil, ErrNotFound
	}
	return data, nil
}

// Names returns the available icon names (without the ".png" suffix),
// sorted alphabetically.
func Names() []string {
	entries, err := iconFiles.ReadDir(iconDir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), iconSuffix))
	}
	sort.Strings(names)
	return names
}
