// Package ecs implements the entity-component-system world: monotonic
// entity IDs, per-type component pools backed by flat byte buffers,
// bitmask queries (lazy and cached), and a binary snapshot codec.
//
// The pool layout (parallel raw-byte buffer plus active-flag buffer,
// indexed directly by entity ID) mirrors the fixed-capacity array
// discipline used throughout Pricilla/internal/physics — no maps in the
// hot path, just slices sized once at pool creation.
package ecs

import "github.com/asgard/orrery/internal/simerr"

// MaxComponentTypes is the maximum number of distinct component pools a
// world may register, per spec.
const MaxComponentTypes = 32

// DefaultCapacity is the default entity capacity. Entity IDs run from 1
// to capacity-1, so a world holds at most capacity-1 entities.
const DefaultCapacity = 10000

// EntityID identifies an entity. 0 is reserved as invalid.
type EntityID uint32

const InvalidEntity EntityID = 0

// pool is one component type's storage: a flat byte buffer of
// capacity*elementSize bytes and a parallel active-flag buffer.
type pool struct {
	typeID      uint32
	elementSize uint32
	data        []byte
	active      []bool
}

func newPool(typeID, elementSize uint32, capacity int) *pool {
	return &pool{
		typeID:      typeID,
		elementSize: elementSize,
		data:        make([]byte, capacity*int(elementSize)),
		active:      make([]bool, capacity),
	}
}

func (p *pool) slot(id EntityID, elementSize int) []byte {
	start := int(id) * elementSize
	return p.data[start : start+elementSize]
}

// World is an entity-component-system container with a fixed entity
// capacity and up to MaxComponentTypes registered component pools.
type World struct {
	capacity     int
	nextEntityID EntityID
	pools        map[uint32]*pool
	order        []uint32 // insertion order of type IDs, for deterministic snapshot output
}

// NewWorld creates an empty world with the given entity capacity.
func NewWorld(capacity int) *World {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &World{
		capacity:     capacity,
		nextEntityID: 1,
		pools:        make(map[uint32]*pool),
	}
}

// CreateEntity allocates and returns a new entity ID.
func (w *World) CreateEntity() (EntityID, error) {
	if int(w.nextEntityID) >= w.capacity {
		return InvalidEntity, simerr.Wrap(nil, simerr.CodeEntityOutOfRange, "entity capacity exhausted")
	}
	id := w.nextEntityID
	w.nextEntityID++
	return id, nil
}

// DestroyEntity clears the entity's active flag in every pool. Raw bytes
// are left in place but become unreachable.
func (w *World) DestroyEntity(id EntityID) {
	for _, p := range w.pools {
		if int(id) < len(p.active) {
			p.active[id] = false
		}
	}
}

// Add stores data as the component of the given type for entity id,
// implicitly registering the pool on first use. Subsequent adds of a
// different size for the same type are a hard error.
func (w *World) Add(typeID uint32, id EntityID, data []byte) error {
	if id == InvalidEntity || int(id) >= w.capacity {
		return simerr.Wrap(nil, simerr.CodeEntityOutOfRange, "entity id out of range")
	}
	p, ok := w.pools[typeID]
	if !ok {
		if len(w.pools) >= MaxComponentTypes {
			return simerr.Wrap(nil, simerr.CodePoolAllocFailed, "component type capacity exhausted")
		}
		p = newPool(typeID, uint32(len(data)), w.capacity)
		w.pools[typeID] = p
		w.order = append(w.order, typeID)
	}
	if int(p.elementSize) != len(data) {
		return simerr.Wrap(nil, simerr.CodeComponentSizeMismatch, "component size does not match pool's registered size")
	}
	copy(p.slot(id, len(data)), data)
	p.active[id] = true
	return nil
}

// Get returns the raw bytes for entity id's component of type typeID, and
// whether it is active. The returned slice aliases the pool's storage and
// is valid only until the next structural mutation.
func (w *World) Get(typeID uint32, id EntityID) ([]byte, bool) {
	p, ok := w.pools[typeID]
	if !ok || int(id) >= len(p.active) || !p.active[id] {
		return nil, false
	}
	return p.slot(id, int(p.elementSize)), true
}

// Has reports whether entity id has an active component of typeID.
func (w *World) Has(typeID uint32, id EntityID) bool {
	_, ok := w.Get(typeID, id)
	return ok
}

// NextEntityID returns the next ID that CreateEntity would allocate.
func (w *World) NextEntityID() EntityID { return w.nextEntityID }
