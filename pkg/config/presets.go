package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed presets
var presets embed.FS

// ErrUnknownPreset is returned by Preset for a name with no embedded file.
var ErrUnknownPreset = errors.New("unknown preset")

// PresetNames lists the embedded machine descriptions in sorted order.
func PresetNames() []string {
	entries, err := fs.ReadDir(presets, "presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	slices.Sort(names)
	return names
}

// Preset parses the embedded description called name, such as "m3" or "m4".
func Preset(name string) (*Description, error) {
	entries, err := fs.ReadDir(presets, "presets")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		file := e.Name()
		if strings.TrimSuffix(file, path.Ext(file)) != name {
			continue
		}
		f, err := presets.Open(path.Join("presets", file))
		if err != nil {
			return nil, err
		}
		defer f.Close()

		d, err := Parse(f, FormatFor(file))
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		return d, nil
	}
	return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
}
