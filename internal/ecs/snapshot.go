package ecs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/asgard/orrery/internal/simerr"
)

// magic and version identify the on-disk snapshot format ("BHS1").
const (
	magic   uint32 = 0x42485331
	version uint32 = 1
)

// Encoder writes a World's active components to an io.Writer as a
// little-endian chunked stream, one chunk per registered component type.
// The Encoder{w io.Writer}/binary.Write-per-field shape mirrors the
// bundle codec pattern used elsewhere in this codebase's lineage, with a
// little-endian "BHS1" wire format in place of a big-endian one.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Encode writes the full snapshot: header, then one chunk per registered
// component pool, in the order types were first registered.
func (e *Encoder) Encode(world *World) error {
	numEntities := uint32(world.nextEntityID - 1)
	numTypes := uint32(len(world.order))

	for _, field := range []uint32{magic, version, numEntities, numTypes} {
		if err := binary.Write(e.w, binary.LittleEndian, field); err != nil {
			return err
		}
	}

	for _, typeID := range world.order {
		p := world.pools[typeID]
		activeIDs := make([]EntityID, 0, len(p.active))
		for id := EntityID(1); id < world.nextEntityID; id++ {
			if int(id) < len(p.active) && p.active[id] {
				activeIDs = append(activeIDs, id)
			}
		}

		if err := binary.Write(e.w, binary.LittleEndian, typeID); err != nil {
			return err
		}
		if err := binary.Write(e.w, binary.LittleEndian, p.elementSize); err != nil {
			return err
		}
		if err := binary.Write(e.w, binary.LittleEndian, uint32(len(activeIDs))); err != nil {
			return err
		}
		for _, id := range activeIDs {
			if err := binary.Write(e.w, binary.LittleEndian, uint32(id)); err != nil {
				return err
			}
			if _, err := e.w.Write(p.slot(id, int(p.elementSize))); err != nil {
				return err
			}
		}
	}
	return nil
}

// Decoder reads a snapshot written by Encoder, loading it into an
// existing World. Chunks for component types already registered at a
// different element size are treated as incompatible and skipped;
// unregistered types are registered fresh up to MaxComponentTypes.
type Decoder struct {
	r io.Reader
}

func NewDecoder(r io.Reader) *Decoder { return &Decoder{r: r} }

// Load clears all active flags in world's existing pools, restores
// next_entity_id from the header, then replays each chunk: re-creating
// missing pools, skipping (with no error) chunks whose size mismatches an
// existing pool, and skipping unknown-type chunks by seeking past their
// payload.
func (d *Decoder) Load(world *World) error {
	var hdr [4]uint32
	for i := range hdr {
		if err := binary.Read(d.r, binary.LittleEndian, &hdr[i]); err != nil {
			return simerr.Wrap(err, simerr.CodeSaveFormatInvalid, "truncated snapshot header")
		}
	}
	gotMagic, gotVersion, numEntities, numTypes := hdr[0], hdr[1], hdr[2], hdr[3]

	if gotMagic != magic {
		return simerr.New(simerr.CodeSaveFormatInvalid, fmt.Sprintf("bad magic 0x%x", gotMagic))
	}
	if gotVersion != version {
		return simerr.New(simerr.CodeSaveVersionMismatch, fmt.Sprintf("unsupported version %d", gotVersion))
	}

	for _, p := range world.pools {
		for i := range p.active {
			p.active[i] = false
		}
	}
	world.nextEntityID = EntityID(numEntities + 1)

	for t := uint32(0); t < numTypes; t++ {
		var typeID, elementSize, count uint32
		if err := binary.Read(d.r, binary.LittleEndian, &typeID); err != nil {
			return simerr.Wrap(err, simerr.CodeSaveFormatInvalid, "truncated chunk header")
		}
		if err := binary.Read(d.r, binary.LittleEndian, &elementSize); err != nil {
			return simerr.Wrap(err, simerr.CodeSaveFormatInvalid, "truncated chunk header")
		}
		if err := binary.Read(d.r, binary.LittleEndian, &count); err != nil {
			return simerr.Wrap(err, simerr.CodeSaveFormatInvalid, "truncated chunk header")
		}

		p, known := world.pools[typeID]
		if known && p.elementSize != elementSize {
			// Registered pool exists but size mismatches: skip the chunk.
			// No warning is logged or returned for the skipped chunk.
			if err := skipBytes(d.r, int64(count)*(4+int64(elementSize))); err != nil {
				return simerr.Wrap(err, simerr.CodeSaveFormatInvalid, "truncated chunk payload")
			}
			continue
		}
		if !known {
			if len(world.pools) >= MaxComponentTypes {
				if err := skipBytes(d.r, int64(count)*(4+int64(elementSize))); err != nil {
					return simerr.Wrap(err, simerr.CodeSaveFormatInvalid, "truncated chunk payload")
				}
				continue
			}
			p = newPool(typeID, elementSize, world.capacity)
			world.pools[typeID] = p
			world.order = append(world.order, typeID)
		}

		buf := make([]byte, elementSize)
		for i := uint32(0); i < count; i++ {
			var rawID uint32
			if err := binary.Read(d.r, binary.LittleEndian, &rawID); err != nil {
				return simerr.Wrap(err, simerr.CodeSaveFormatInvalid, "truncated entity id")
			}
			if _, err := io.ReadFull(d.r, buf); err != nil {
				return simerr.Wrap(err, simerr.CodeSaveFormatInvalid, "truncated component bytes")
			}
			id := EntityID(rawID)
			if int(id) >= len(p.active) {
				continue
			}
			copy(p.slot(id, int(elementSize)), buf)
			p.active[id] = true
		}
	}
	return nil
}

func skipBytes(r io.Reader, n int64) error {
	_, err := io.CopyN(io.Discard, r, n)
	return err
}

// Marshal encodes world's snapshot into a byte slice.
func Marshal(world *World) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(world); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal loads data into world, per Decoder.Load's semantics.
func Unmarshal(data []byte, world *World) error {
	return NewDecoder(bytes.NewReader(data)).Load(world)
}
