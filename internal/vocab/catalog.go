package vocab

import (
	"context"
	"sort"

	"github.com/abhisek/wordpath/internal/errs"
)

// Catalog provides read access to vocabulary sets.
type Catalog interface {
	// List returns all sets ordered by ascending level.
	List() []Set

	// Get returns the set with the given id, or a *errs.NotFoundError.
	Get(id string) (Set, error)
}

// StaticCatalog is an immutable in-memory Catalog built from validated set
// definitions.
type StaticCatalog struct {
	sets []Set
	byID map[string]int
}

// NewCatalog validates the given sets and builds a catalog from them.
// Sets are ordered by level; definition order is kept within a level.
func NewCatalog(sets []Set) (*StaticCatalog, error) {
	if err := validateSets(sets); err != nil {
		return nil, err
	}

	sorted := make([]Set, len(sets))
	for i := range sets {
		sorted[i] = sets[i].clone()
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Level.Rank() < sorted[j].Level.Rank()
	})

	c := &StaticCatalog{
		sets: sorted,
		byID: make(map[string]int, len(sorted)),
	}
	for i, s := range sorted {
		c.byID[s.ID] = i
	}
	return c, nil
}

// List returns copies of all sets in display order.
func (c *StaticCatalog) List() []Set {
	out := make([]Set, len(c.sets))
	for i := range c.sets {
		out[i] = c.sets[i].clone()
	}
	return out
}

// Get returns a copy of the set with the given id.
func (c *StaticCatalog) Get(id string) (Set, error) {
	i, ok := c.byID[id]
	if !ok {
		return Set{}, errs.NotFound("vocabulary set", id)
	}
	return c.sets[i].clone(), nil
}

// ByLevel returns the sets at the given level in display order.
func (c *StaticCatalog) ByLevel(level Level) []Set {
	var out []Set
	for i := range c.sets {
		if c.sets[i].Level == level {
			out = append(out, c.sets[i].clone())
		}
	}
	return out
}

// SymbolLookup resolves symbol ids to their metadata.
type SymbolLookup interface {
	// Resolve returns the symbol, or a *errs.NotFoundError when unknown.
	Resolve(ctx context.Context, symbolID string) (Symbol, error)
}

// SymbolIndex is an in-memory SymbolLookup.
type SymbolIndex struct {
	byID map[string]Symbol
}

// NewSymbolIndex indexes symbols by id. Later duplicates replace earlier ones.
func NewSymbolIndex(symbols []Symbol) *SymbolIndex {
	idx := &SymbolIndex{byID: make(map[string]Symbol, len(symbols))}
	for _, s := range symbols {
		idx.byID[s.ID] = s
	}
	return idx
}

// Resolve implements SymbolLookup.
func (x *SymbolIndex) Resolve(_ context.Context, symbolID string) (Symbol, error) {
	s, ok := x.byID[symbolID]
	if !ok {
		return Symbol{}, errs.NotFound("symbol", symbolID)
	}
	return s, nil
}

// Len returns the number of indexed symbols.
func (x *SymbolIndex) Len() int {
	return len(x.byID)
}
