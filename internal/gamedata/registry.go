package gamedata

import (
	"errors"
	"fmt"
	"sort"
)

// ThemeRegistry holds validated themes keyed by id.
type ThemeRegistry struct {
	themes map[string]*ThemeDef
	ids    []string
}

// NewThemeRegistry validates themes and indexes them by id.
func NewThemeRegistry(themes []ThemeDef) (*ThemeRegistry, error) {
	r := &ThemeRegistry{themes: make(map[string]*ThemeDef, len(themes))}
	for i := range themes {
		def := &themes[i]
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.themes[def.ID]; dup {
			return nil, fmt.Errorf("duplicate theme id %q", def.ID)
		}
		r.themes[def.ID] = def
		r.ids = append(r.ids, def.ID)
	}
	sort.Strings(r.ids)
	return r, nil
}

// LoadThemeRegistry builds a registry from the embedded themes.json.
func LoadThemeRegistry() (*ThemeRegistry, error) {
	themes, err := LoadThemes()
	if err != nil {
		return nil, err
	}
	if len(themes) == 0 {
		return nil, errors.New("no themes loaded from themes.json")
	}
	return NewThemeRegistry(themes)
}

// Get returns the theme with the given id.
func (r *ThemeRegistry) Get(id string) (*ThemeDef, error) {
	def, ok := r.themes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownTheme, id, r.ids)
	}
	return def, nil
}

// IDs returns the known theme ids, sorted.
func (r *ThemeRegistry) IDs() []string {
	return r.ids
}

// Count returns the number of themes in the registry.
func (r *ThemeRegistry) Count() int {
	return len(r.ids)
}
