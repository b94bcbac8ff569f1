package skill

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// catalogFile is the on-disk layout of a skill catalogue.
type catalogFile struct {
	Skills []catalogEntry `yaml:"skills"`
}

// catalogEntry keeps value and chance as pointers so an explicit 0
// is told apart from an omitted key.
type catalogEntry struct {
	Metadata `yaml:",inline"`
	Value    *float64 `yaml:"value"`
	Chance   *float64 `yaml:"chance"`
}

// kindDefault is used for an omitted value or chance, per behavior kind.
type kindDefault struct {
	value, chance float64
}

var kindDefaults = map[string]kindDefault{
	"surge":        {value: 0.25},
	"berserk":      {value: 0.5, chance: 0.25},
	"golden_egg":   {value: 2.0, chance: 0.01},
	"joker":        {value: 0.3, chance: 0.5},
	"guard":        {value: 0.10},
	"amber_sun":    {value: 0.20},
	"eternity":     {value: 0.30},
	"ephemerality": {value: 0.10},
	"onyx_moon":    {value: 0.25},
	"revive":       {value: 0.25},
}

func (e catalogEntry) metadata() Metadata {
	m := e.Metadata
	def := kindDefaults[m.Behavior]
	m.Value, m.Chance = def.value, def.chance
	if e.Value != nil {
		m.Value = *e.Value
	}
	if e.Chance != nil {
		m.Chance = *e.Chance
	}
	return m
}

var loadDefault = sync.OnceValues(func() (*Registry, error) {
	r, err := Load(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("loading embedded catalog: %w", err)
	}
	slog.Debug("loaded skill catalog", "skills", r.Len())
	return r, nil
})

// Default returns the built-in catalogue. It panics if the embedded
// catalogue is broken.
func Default() *Registry {
	r, err := loadDefault()
	if err != nil {
		panic(err)
	}
	return r
}

// Load parses a YAML catalogue. An omitted value or chance takes the
// default of the entry's behavior kind; an explicit 0 is kept.
func Load(data []byte) (*Registry, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing skill catalog: %w", err)
	}
	entries := make([]Metadata, 0, len(cf.Skills))
	for _, e := range cf.Skills {
		entries = append(entries, e.metadata())
	}
	return NewRegistry(entries)
}

// LoadFile parses a YAML catalogue from path.
// An empty path yields the built-in catalogue.
func LoadFile(path string) (*Registry, error) {
	if path == "" {
		return loadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skill catalog %s: %w", path, err)
	}
	r, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("loaded skill catalog", "path", path, "skills", r.Len())
	return r, nil
}
