package namedxlsx

import (
	"sort"
	"strings"
)

// Config is structured configuration data: sheet name to a flat mapping of
// defined name to value.
type Config map[string]map[string]any

// Flatten merges all sections into one name-to-value mapping. Section
// boundaries carry no meaning on import; a name appearing in several
// sections is last-write-wins in map iteration order.
func (c Config) Flatten() map[string]any {
	out := map[string]any{}
	for _, section := range c {
		for name, value := range section {
			out[name] = value
		}
	}
	return out
}

// Spec is one defined name together with where it points and what it holds.
type Spec struct {
	Name  string
	Sheet string
	Coord string
	Value any
}

// Specifications reads every defined name whose identifier starts with
// filterPrefix (empty prefix matches all) and returns one record per name,
// sorted by (sheet, coord, name).
func (b *Book) Specifications(filterPrefix string) ([]Spec, error) {
	var out []Spec
	for _, name := range b.Names() {
		if !strings.HasPrefix(name, filterPrefix) {
			continue
		}
		addr, err := b.NameAddress(name)
		if err != nil {
			return nil, err
		}
		value, err := b.Read(addr)
		if err != nil {
			return nil, err
		}
		out = append(out, Spec{
			Name:  name,
			Sheet: addr.Sheet(),
			Coord: addr.Coord(),
			Value: value,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sheet != out[j].Sheet {
			return out[i].Sheet < out[j].Sheet
		}
		if out[i].Coord != out[j].Coord {
			return out[i].Coord < out[j].Coord
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Export reads every matching defined name and groups the values by the
// sheet its address lives on, one configuration section per sheet.
func (b *Book) Export(filterPrefix string) (Config, error) {
	specs, err := b.Specifications(filterPrefix)
	if err != nil {
		return nil, err
	}
	out := Config{}
	for _, spec := range specs {
		section, ok := out[spec.Sheet]
		if !ok {
			section = map[string]any{}
			out[spec.Sheet] = section
		}
		section[spec.Name] = spec.Value
	}
	return out, nil
}

// LoadConfig writes every (name, value) entry across all sections of cfg
// into the workbook by name. Sections are merged flat first; a section's
// key does not have to match the sheet its names resolve to.
func (b *Book) LoadConfig(cfg Config) error {
	for name, value := range cfg.Flatten() {
		if err := b.WriteName(name, value); err != nil {
			return err
		}
	}
	return nil
}
