package game

import (
	"strconv"
	"strings"
)

// ResourceKind represents a type of resource.
type ResourceKind int

const (
	ResourceGold ResourceKind = iota
	ResourceWood
	ResourceStone
	ResourceFood
)

// AllResources returns all resource kinds in display order.
func AllResources() []ResourceKind {
	return []ResourceKind{
		ResourceGold,
		ResourceWood,
		ResourceStone,
		ResourceFood,
	}
}

// String returns the resource name.
func (r ResourceKind) String() string {
	switch r {
	case ResourceGold:
		return "Gold"
	case ResourceWood:
		return "Wood"
	case ResourceStone:
		return "Stone"
	case ResourceFood:
		return "Food"
	default:
		return "None"
	}
}

// Bundle is an amount per resource kind, used for costs and production.
// Kinds absent from the map count as zero.
type Bundle map[ResourceKind]int

// Clone creates a copy of the bundle.
func (b Bundle) Clone() Bundle {
	out := make(Bundle, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// String lists the non-zero entries in resource order, e.g. "10 Gold, 5 Stone".
func (b Bundle) String() string {
	var sb strings.Builder
	for _, kind := range AllResources() {
		amount := b[kind]
		if amount == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(amount))
		sb.WriteByte(' ')
		sb.WriteString(kind.String())
	}
	if sb.Len() == 0 {
		return "nothing"
	}
	return sb.String()
}

// Stockpile represents a player's collected resources.
type Stockpile struct {
	Gold  int `json:"gold"`
	Wood  int `json:"wood"`
	Stone int `json:"stone"`
	Food  int `json:"food"`
}

// NewStockpile creates an empty stockpile.
func NewStockpile() *Stockpile {
	return &Stockpile{}
}

// StartingStockpile returns the ledger every faction begins with.
func StartingStockpile() *Stockpile {
	return &Stockpile{Gold: 100, Wood: 50, Stone: 50, Food: 100}
}

// slot returns the counter backing a resource kind, or nil.
func (s *Stockpile) slot(kind ResourceKind) *int {
	switch kind {
	case ResourceGold:
		return &s.Gold
	case ResourceWood:
		return &s.Wood
	case ResourceStone:
		return &s.Stone
	case ResourceFood:
		return &s.Food
	default:
		return nil
	}
}

// Add adds resources to the stockpile. Non-positive amounts are ignored.
func (s *Stockpile) Add(kind ResourceKind, amount int) {
	if amount <= 0 {
		return
	}
	if p := s.slot(kind); p != nil {
		*p += amount
	}
}

// Get returns the amount of a resource.
func (s *Stockpile) Get(kind ResourceKind) int {
	if p := s.slot(kind); p != nil {
		return *p
	}
	return 0
}

// Has checks if the stockpile holds at least every requested amount.
func (s *Stockpile) Has(costs Bundle) bool {
	for kind, amount := range costs {
		if s.Get(kind) < amount {
			return false
		}
	}
	return true
}

// Pay removes resources for a cost. Nothing is removed unless the whole cost is covered.
func (s *Stockpile) Pay(costs Bundle) error {
	if !s.Has(costs) {
		return ErrInsufficientResources
	}
	for kind, amount := range costs {
		if amount <= 0 {
			continue
		}
		if p := s.slot(kind); p != nil {
			*p -= amount
		}
	}
	return nil
}

// AddBundle credits every entry of a bundle.
func (s *Stockpile) AddBundle(b Bundle) {
	for kind, amount := range b {
		s.Add(kind, amount)
	}
}

// Total returns the total number of resources.
func (s *Stockpile) Total() int {
	return s.Gold + s.Wood + s.Stone + s.Food
}

// Clone creates a copy of the stockpile.
func (s *Stockpile) Clone() *Stockpile {
	return &Stockpile{
		Gold:  s.Gold,
		Wood:  s.Wood,
		Stone: s.Stone,
		Food:  s.Food,
	}
}

// Snapshot returns the stockpile as a bundle holding every kind.
func (s *Stockpile) Snapshot() Bundle {
	return Bundle{
		ResourceGold:  s.Gold,
		ResourceWood:  s.Wood,
		ResourceStone: s.Stone,
		ResourceFood:  s.Food,
	}
}
