// Package shop defines the items users can buy with sparks and what each
// purchase grants.
package shop

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/vytor/bondflash/internal/models"
)

//go:embed catalog.toml
var defaultCatalog string

// Grant is what an item adds to the buyer.
type Grant struct {
	StreakFreezes int    `toml:"streak_freezes" json:"streakFreezes,omitempty"`
	Theme         string `toml:"theme" json:"theme,omitempty"`
	SpicyDice     bool   `toml:"spicy_dice" json:"spicyDiceUnlocked,omitempty"`
}

// Apply adds the grant to u. Themes are a set, so buying one twice keeps a
// single entry.
func (g Grant) Apply(u *models.User) {
	u.StreakFreezes += g.StreakFreezes
	if g.Theme != "" && !slices.Contains(u.OwnedThemes, g.Theme) {
		u.OwnedThemes = append(u.OwnedThemes, g.Theme)
	}
	if g.SpicyDice {
		u.SpicyDiceUnlocked = true
	}
}

type Item struct {
	ID          string `toml:"id" json:"id"`
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description"`
	Cost        int    `toml:"cost" json:"cost"`
	Grant       Grant  `toml:"grant" json:"grant"`
}

// Catalog is an ordered, id-indexed set of items.
type Catalog struct {
	items []Item
	byID  map[string]Item
}

type catalogFile struct {
	Items []Item `toml:"item"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("shop: built-in catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns the built-in one when path is
// empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes a TOML catalog and checks that ids are unique and costs
// non-negative.
func Parse(data string) (*Catalog, error) {
	var f catalogFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]Item, len(f.Items))}
	for _, it := range f.Items {
		if it.ID == "" {
			return nil, fmt.Errorf("catalog item %q has no id", it.Name)
		}
		if it.Cost < 0 {
			return nil, fmt.Errorf("catalog item %s has negative cost %d", it.ID, it.Cost)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog item %s", it.ID)
		}
		c.byID[it.ID] = it
		c.items = append(c.items, it)
	}
	return c, nil
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Items returns every item in file order.
func (c *Catalog) Items() []Item {
	return slices.Clone(c.items)
}
