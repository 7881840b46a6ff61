package game

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CardDefinition is one immutable catalog row.
type CardDefinition struct {
	Name     string   `yaml:"name" json:"name"`
	Category Category `yaml:"category" json:"category"`
	Subtype  string   `yaml:"subtype,omitempty" json:"subtype,omitempty"`
	Class    int      `yaml:"class,omitempty" json:"class,omitempty"`
	Text     string   `yaml:"text" json:"text"`
	Copies   int      `yaml:"copies" json:"copies"`
	Effect   Effect   `yaml:"effect,omitempty" json:"effect"`
}

// CatalogFile represents the top-level catalog YAML structure.
type CatalogFile struct {
	Cards []CardDefinition `yaml:"cards"`
}

// Catalog is the loaded, validated card table.
type Catalog struct {
	cards  []CardDefinition
	byName map[string]int
}

// ParseCatalog parses and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	if len(cf.Cards) == 0 {
		return nil, fmt.Errorf("catalog has no cards")
	}

	c := &Catalog{byName: make(map[string]int, len(cf.Cards))}
	for _, def := range cf.Cards {
		if def.Name == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", len(c.cards)+1)
		}
		if _, dup := c.byName[def.Name]; dup {
			return nil, fmt.Errorf("duplicate card %q", def.Name)
		}
		if def.Copies < 1 {
			return nil, fmt.Errorf("card %q: copies must be positive, got %d", def.Name, def.Copies)
		}
		if def.Class < 0 {
			return nil, fmt.Errorf("card %q: negative class %d", def.Name, def.Class)
		}
		switch def.Category {
		case CategoryStar:
			if def.Effect != EffectNone && def.Effect != EffectProtoStar {
				return nil, fmt.Errorf("star %q cannot carry effect %s", def.Name, def.Effect)
			}
		case CategoryDiscovery:
			if def.Effect != EffectNone {
				return nil, fmt.Errorf("discovery %q cannot carry effect %s", def.Name, def.Effect)
			}
		}
		c.byName[def.Name] = len(c.cards)
		c.cards = append(c.cards, def)
	}
	return c, nil
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the built-in catalog. It panics if the embedded YAML
// is invalid, since nothing can run without it.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := ParseCatalog(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Cards returns the definitions in catalog order.
func (c *Catalog) Cards() []CardDefinition {
	out := make([]CardDefinition, len(c.cards))
	copy(out, c.cards)
	return out
}

// Lookup finds a definition by name.
func (c *Catalog) Lookup(name string) (CardDefinition, bool) {
	i, ok := c.byName[name]
	if !ok {
		return CardDefinition{}, false
	}
	return c.cards[i], true
}

// PoolSize is the total number of card instances a deck built from this catalog holds.
func (c *Catalog) PoolSize() int {
	n := 0
	for _, def := range c.cards {
		n += def.Copies
	}
	return n
}

// SupernovaNames lists the distinct names that together trigger a Supernova win.
func (c *Catalog) SupernovaNames() []string {
	var names []string
	for _, def := range c.cards {
		if def.Effect == EffectSupernova {
			names = append(names, def.Name)
		}
	}
	return names
}
