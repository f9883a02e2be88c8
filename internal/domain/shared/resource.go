package shared

import "strings"

// ResourceKind identifies a minable, tradable material
type ResourceKind string

const (
	ResourceIron            ResourceKind = "IRON"
	ResourceCopper          ResourceKind = "COPPER"
	ResourceTitanium        ResourceKind = "TITANIUM"
	ResourceGold            ResourceKind = "GOLD"
	ResourceRareEarth       ResourceKind = "RARE_EARTH"
	ResourceQuantumCrystals ResourceKind = "QUANTUM_CRYSTALS"
)

type resourceInfo struct {
	displayName string
	baseValue   float64
}

var resourceCatalog = map[ResourceKind]resourceInfo{
	ResourceIron:            {displayName: "Iron", baseValue: 2.0},
	ResourceCopper:          {displayName: "Copper", baseValue: 3.5},
	ResourceTitanium:        {displayName: "Titanium", baseValue: 8.0},
	ResourceGold:            {displayName: "Gold", baseValue: 15.0},
	ResourceRareEarth:       {displayName: "Rare Earth", baseValue: 25.0},
	ResourceQuantumCrystals: {displayName: "Quantum Crystals", baseValue: 100.0},
}

// AllResourceKinds returns every resource kind in canonical order.
// Generation draws, cargo listings and quotes all iterate in this order.
func AllResourceKinds() []ResourceKind {
	return []ResourceKind{
		ResourceIron,
		ResourceCopper,
		ResourceTitanium,
		ResourceGold,
		ResourceRareEarth,
		ResourceQuantumCrystals,
	}
}

// String returns the symbol of the resource kind
func (k ResourceKind) String() string {
	return string(k)
}

// IsValid checks if the kind belongs to the closed enumeration
func (k ResourceKind) IsValid() bool {
	_, ok := resourceCatalog[k]
	return ok
}

// DisplayName returns the human readable name ("Rare Earth")
func (k ResourceKind) DisplayName() string {
	if info, ok := resourceCatalog[k]; ok {
		return info.displayName
	}
	return string(k)
}

// BaseValue returns the reference value of one unit. Outposts price
// independently, this is informational only.
func (k ResourceKind) BaseValue() float64 {
	return resourceCatalog[k].baseValue
}

// ordinal returns the canonical position of the kind, or len(kinds) if unknown
func (k ResourceKind) ordinal() int {
	for i, kind := range AllResourceKinds() {
		if kind == k {
			return i
		}
	}
	return len(resourceCatalog)
}

// ParseResourceKind parses a symbol ("RARE_EARTH") or display name ("Rare Earth"),
// case-insensitive. Anything else is an UnknownResourceKindError.
func ParseResourceKind(s string) (ResourceKind, error) {
	normalized := strings.TrimSpace(s)
	if normalized == "" {
		return "", NewUnknownResourceKindError(s)
	}

	for _, kind := range AllResourceKinds() {
		if strings.EqualFold(normalized, string(kind)) || strings.EqualFold(normalized, kind.DisplayName()) {
			return kind, nil
		}
	}

	// Accept "rare-earth" / "rare earth" style spellings of the symbol too
	symbol := strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_").Replace(normalized))
	if kind := ResourceKind(symbol); kind.IsValid() {
		return kind, nil
	}

	return "", NewUnknownResourceKindError(s)
}
