package shared

import (
	"fmt"
	"sort"
	"strings"
)

// CargoItem is one line of a cargo manifest snapshot
type CargoItem struct {
	Kind  ResourceKind
	Units int
}

// CargoHold is a bounded multiset of resources owned by exactly one ship.
//
// Invariant: the sum of all held quantities never exceeds capacity, and no
// entry is ever stored with a zero quantity.
type CargoHold struct {
	capacity int
	items    map[ResourceKind]int
}

// NewCargoHold creates an empty hold with the given capacity
func NewCargoHold(capacity int) (*CargoHold, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("cargo capacity cannot be negative")
	}

	return &CargoHold{
		capacity: capacity,
		items:    make(map[ResourceKind]int),
	}, nil
}

// Add stores up to amount units of kind and returns how many were admitted.
// Admitted is min(amount, AvailableCapacity()); negative amounts admit nothing.
func (c *CargoHold) Add(kind ResourceKind, amount int) int {
	if amount <= 0 {
		return 0
	}

	admitted := amount
	if free := c.AvailableCapacity(); admitted > free {
		admitted = free
	}
	if admitted <= 0 {
		return 0
	}

	c.items[kind] += admitted
	return admitted
}

// Remove takes out up to amount units of kind and returns how many were removed
func (c *CargoHold) Remove(kind ResourceKind, amount int) int {
	if amount <= 0 {
		return 0
	}

	held := c.items[kind]
	removed := amount
	if removed > held {
		removed = held
	}
	if removed == 0 {
		return 0
	}

	if held-removed == 0 {
		delete(c.items, kind)
	} else {
		c.items[kind] = held - removed
	}
	return removed
}

// Grow raises capacity by delta (used by cargo upgrades)
func (c *CargoHold) Grow(delta int) error {
	if delta < 0 {
		return fmt.Errorf("cargo capacity cannot shrink")
	}
	c.capacity += delta
	return nil
}

// Capacity returns the maximum number of units the hold accepts
func (c *CargoHold) Capacity() int {
	return c.capacity
}

// Units returns the total number of units held
func (c *CargoHold) Units() int {
	total := 0
	for _, units := range c.items {
		total += units
	}
	return total
}

// AvailableCapacity calculates free cargo space
func (c *CargoHold) AvailableCapacity() int {
	return c.capacity - c.Units()
}

// Quantity returns units of kind held (0 if not present)
func (c *CargoHold) Quantity(kind ResourceKind) int {
	return c.items[kind]
}

// Has checks if the hold carries at least one unit of kind
func (c *CargoHold) Has(kind ResourceKind) bool {
	return c.items[kind] > 0
}

// Kinds returns held kinds in canonical order
func (c *CargoHold) Kinds() []ResourceKind {
	kinds := make([]ResourceKind, 0, len(c.items))
	for kind := range c.items {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i].ordinal() < kinds[j].ordinal()
	})
	return kinds
}

// Snapshot returns the manifest as a slice in canonical order
func (c *CargoHold) Snapshot() []CargoItem {
	kinds := c.Kinds()
	items := make([]CargoItem, len(kinds))
	for i, kind := range kinds {
		items[i] = CargoItem{Kind: kind, Units: c.items[kind]}
	}
	return items
}

// IsEmpty checks if cargo hold is empty
func (c *CargoHold) IsEmpty() bool {
	return len(c.items) == 0
}

// IsFull checks if cargo hold is full
func (c *CargoHold) IsFull() bool {
	return c.Units() >= c.capacity
}

func (c *CargoHold) String() string {
	parts := make([]string, 0, len(c.items))
	for _, item := range c.Snapshot() {
		parts = append(parts, fmt.Sprintf("%s=%d", item.Kind, item.Units))
	}
	return fmt.Sprintf("Cargo(%d/%d)[%s]", c.Units(), c.capacity, strings.Join(parts, ","))
}
