package pgn

import (
	"fmt"
	"sort"
)

// Registry is static mapping from PGN number to its schema. Read-only after creation, safe for
// concurrent lookups without synchronization.
type Registry struct {
	schemas map[uint32]Schema
}

// NewRegistry creates registry from given schemas. All schemas are validated, duplicate PGNs
// are rejected.
func NewRegistry(schemas []Schema) (*Registry, error) {
	byPGN := make(map[uint32]Schema, len(schemas))
	for _, s := range schemas {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, ok := byPGN[s.PGN]; ok {
			return nil, fmt.Errorf("duplicate schema for PGN %v", s.PGN)
		}
		byPGN[s.PGN] = s
	}
	return &Registry{schemas: byPGN}, nil
}

func mustNewRegistry(schemas []Schema) *Registry {
	r, err := NewRegistry(schemas)
	if err != nil {
		panic(err)
	}
	return r
}

var standard = mustNewRegistry(catalog)

// StandardRegistry returns registry built from the compiled-in catalog (version CatalogVersion).
func StandardRegistry() *Registry {
	return standard
}

// Lookup returns schema for given PGN or ErrUnknownPGN when none is registered.
func (r *Registry) Lookup(pgn uint32) (Schema, error) {
	s, ok := r.schemas[pgn]
	if !ok {
		return Schema{}, ErrUnknownPGN
	}
	return s, nil
}

// Contains reports whether PGN has a registered schema.
func (r *Registry) Contains(pgn uint32) bool {
	_, ok := r.schemas[pgn]
	return ok
}

// FastPacketPGNs returns sorted list of PGNs that use fast-packet framing. Feed this to
// n2k.NewFastPacketAssembler and n2k.NewFragmenter.
func (r *Registry) FastPacketPGNs() []uint32 {
	result := make([]uint32, 0, len(r.schemas))
	for pgn, s := range r.schemas {
		if s.IsFastPacket() {
			result = append(result, pgn)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// PGNs returns sorted list of all registered PGNs.
func (r *Registry) PGNs() []uint32 {
	result := make([]uint32, 0, len(r.schemas))
	for pgn := range r.schemas {
		result = append(result, pgn)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
