package engine

import (
	"fmt"
	"image/color"
)

// Flags is a bitmask of element behaviours.
type Flags uint8

const (
	// Gravity elements accelerate downward every gravity period.
	Gravity Flags = 1 << iota
	// Fixed elements never move and absorb no momentum.
	Fixed
	// PauseExempt elements never go to sleep.
	PauseExempt
	// PerfectRestitution elements bounce without losing speed.
	PerfectRestitution
	// Fluid elements are pushed through instead of always colliding.
	Fluid
)

// NoFlags is the empty flag set.
const NoFlags Flags = 0

// Has reports whether any bit of flag is set, so a combined mask such as
// Fixed|Fluid matches elements carrying either flag.
func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// Element is the static descriptor shared by every tile of one kind.
type Element struct {
	ID    ElementID
	Name  string
	Flags Flags
	Mass  int8
	Color color.RGBA
	// StateColor, when set, overrides Color based on special info.
	StateColor func(info uint8) color.RGBA
	// Periodic runs once per cell every reaction period. Nil means none.
	Periodic           PeriodicReaction
	DefaultTemperature int16
}

// Has reports whether the element carries flag.
func (e *Element) Has(flag Flags) bool { return e.Flags.Has(flag) }

// ColorFor returns the display colour for a tile holding info.
func (e *Element) ColorFor(info uint8) color.RGBA {
	if e.StateColor != nil {
		return e.StateColor(info)
	}
	return e.Color
}

// Catalog is the read-only table of elements indexed by id. Slot zero holds
// the Empty placeholder.
type Catalog struct {
	elements []Element
	byName   map[string]ElementID
}

// NewCatalog validates and indexes the descriptors. Ids must be exactly
// 1..len(elements), each used once, with unique non-empty names.
func NewCatalog(elements ...Element) (*Catalog, error) {
	table := make([]Element, len(elements)+1)
	table[0] = Element{ID: Empty, Name: "empty", Periodic: NoReaction{}}
	seen := make([]bool, len(table))
	byName := make(map[string]ElementID, len(elements))
	for _, e := range elements {
		id := int(e.ID)
		if e.ID == Empty || id >= len(table) {
			return nil, fmt.Errorf("element %q: id %d outside 1..%d", e.Name, e.ID, len(elements))
		}
		if seen[id] {
			return nil, fmt.Errorf("element %q: duplicate id %d", e.Name, e.ID)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("element id %d: missing name", e.ID)
		}
		if _, dup := byName[e.Name]; dup {
			return nil, fmt.Errorf("element %q: duplicate name", e.Name)
		}
		if e.Periodic == nil {
			e.Periodic = NoReaction{}
		}
		seen[id] = true
		byName[e.Name] = e.ID
		table[id] = e
	}
	return &Catalog{elements: table, byName: byName}, nil
}

// MustCatalog is NewCatalog that panics on a malformed element list.
func MustCatalog(elements ...Element) *Catalog {
	c, err := NewCatalog(elements...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the element count including the Empty slot.
func (c *Catalog) Len() int { return len(c.elements) }

// Get returns the descriptor for id. It panics on unknown ids.
func (c *Catalog) Get(id ElementID) *Element {
	if int(id) >= len(c.elements) {
		panic(fmt.Sprintf("unknown element id %d", id))
	}
	return &c.elements[id]
}

// Has reports whether element id carries flag. Empty carries none.
func (c *Catalog) Has(id ElementID, flag Flags) bool {
	if id == Empty {
		return false
	}
	return c.Get(id).Has(flag)
}

// Name returns the element's name.
func (c *Catalog) Name(id ElementID) string {
	if int(id) >= len(c.elements) {
		return fmt.Sprintf("element#%d", id)
	}
	return c.elements[id].Name
}

// Lookup finds an element by name.
func (c *Catalog) Lookup(name string) (ElementID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// Elements returns the descriptors in id order, excluding Empty.
func (c *Catalog) Elements() []Element {
	return c.elements[1:]
}

// ColorOf returns the display colour of a tile. Empty tiles report ok=false.
func (c *Catalog) ColorOf(t Tile) (color.RGBA, bool) {
	if t.IsEmpty() {
		return color.RGBA{}, false
	}
	return c.Get(t.Element()).ColorFor(t.SpecialInfo()), true
}

// Spawn returns a resting tile of element id at its default temperature.
func (c *Catalog) Spawn(id ElementID) Tile {
	return Stationary(StateOf(id), c.Get(id).DefaultTemperature)
}
