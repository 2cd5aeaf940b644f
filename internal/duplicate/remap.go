package duplicate

import (
	"github.com/google/uuid"
)

// Table records, per entity kind, which new identifier was assigned to the
// copy of a source record. It is scoped to a single clone or import call.
//
// During a clone the key is the source record's identifier. During an import
// the key is the identifier carried in the snapshot node, or a freshly
// generated placeholder when the snapshot omits one; either way it only has
// to be stable for the duration of the call.
type Table struct {
	kinds map[Kind]map[uuid.UUID]uuid.UUID
}

// NewTable returns an empty remap table.
func NewTable() *Table {
	return &Table{kinds: make(map[Kind]map[uuid.UUID]uuid.UUID)}
}

// Register records that the copy of the record identified by key was
// created with the identifier id.
func (t *Table) Register(kind Kind, key, id uuid.UUID) {
	m, ok := t.kinds[kind]
	if !ok {
		m = make(map[uuid.UUID]uuid.UUID)
		t.kinds[kind] = m
	}

	m[key] = id
}

// Resolve returns the identifier assigned to the copy of the record
// identified by key. A reference that was never registered resolves to
// (uuid.Nil, false); it is the caller's responsibility to treat the
// reference as unset, a stale identifier is never returned.
func (t *Table) Resolve(kind Kind, key uuid.UUID) (uuid.UUID, bool) {
	id, ok := t.kinds[kind][key]
	return id, ok
}

// resolveOptional rewrites an optional reference. An absent reference stays
// absent, an unresolvable one becomes absent.
func (t *Table) resolveOptional(kind Kind, key *uuid.UUID) *uuid.UUID {
	if key == nil {
		return nil
	}

	id, ok := t.Resolve(kind, *key)
	if !ok {
		return nil
	}

	return &id
}
