package ecs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/asgard/orrery/internal/simerr"
)

const (
	typeTransform uint32 = 0
	typeVelocity  uint32 = 1
)

func TestCreateEntityStartsAtOne(t *testing.T) {
	w := NewWorld(100)
	id, err := w.CreateEntity()
	if err != nil {
		t.Fatalf("CreateEntity: %v", err)
	}
	if id != 1 {
		t.Errorf("first entity id = %v, want 1", id)
	}
}

func TestAddGetRoundTrip(t *testing.T) {
	w := NewWorld(100)
	id, _ := w.CreateEntity()

	data := []byte{1, 2, 3, 4}
	if err := w.Add(typeTransform, id, data); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, active := w.Get(typeTransform, id)
	if !active {
		t.Fatalf("expected component active")
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got %v, want %v", got, data)
	}
}

func TestComponentSizeMismatch(t *testing.T) {
	w := NewWorld(100)
	id, _ := w.CreateEntity()
	if err := w.Add(typeTransform, id, make([]byte, 24)); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	id2, _ := w.CreateEntity()
	err := w.Add(typeTransform, id2, make([]byte, 16))
	if !errors.Is(err, simerr.ErrComponentSizeMismatch) {
		t.Errorf("expected ErrComponentSizeMismatch, got %v", err)
	}
}

func TestDestroyEntityClearsActiveOnly(t *testing.T) {
	w := NewWorld(100)
	id, _ := w.CreateEntity()
	w.Add(typeTransform, id, []byte{9, 9, 9, 9})
	w.DestroyEntity(id)

	if _, active := w.Get(typeTransform, id); active {
		t.Errorf("expected component inactive after destroy")
	}
}

func TestQueryLazyMatchesActiveComponents(t *testing.T) {
	w := NewWorld(100)
	a, _ := w.CreateEntity()
	b, _ := w.CreateEntity()
	c, _ := w.CreateEntity()

	w.Add(typeTransform, a, []byte{1, 2, 3, 4})
	w.Add(typeTransform, b, []byte{1, 2, 3, 4})
	w.Add(typeVelocity, b, []byte{1, 2})
	w.Add(typeTransform, c, []byte{1, 2, 3, 4})

	mask := Mask(1<<typeTransform | 1<<typeVelocity)
	q := w.Init(mask)
	var matched []EntityID
	for {
		id, ok := q.Next()
		if !ok {
			break
		}
		matched = append(matched, id)
	}
	if len(matched) != 1 || matched[0] != b {
		t.Errorf("matched = %v, want [%v]", matched, b)
	}
}

func TestQueryCachedMatchesLazyInvariant10(t *testing.T) {
	w := NewWorld(100)
	for i := 0; i < 5; i++ {
		id, _ := w.CreateEntity()
		w.Add(typeTransform, id, []byte{byte(i), 0, 0, 0})
		if i%2 == 0 {
			w.Add(typeVelocity, id, []byte{1, 1})
		}
	}

	mask := Mask(1<<typeTransform | 1<<typeVelocity)

	lazy := w.Init(mask)
	var lazyIDs []EntityID
	for {
		id, ok := lazy.Next()
		if !ok {
			break
		}
		lazyIDs = append(lazyIDs, id)
	}

	cached := w.InitCached(mask)
	var cachedIDs []EntityID
	for {
		id, ok := cached.Next()
		if !ok {
			break
		}
		cachedIDs = append(cachedIDs, id)
	}

	if len(lazyIDs) != len(cachedIDs) {
		t.Fatalf("lazy=%v cached=%v differ in length", lazyIDs, cachedIDs)
	}
	for i := range lazyIDs {
		if lazyIDs[i] != cachedIDs[i] {
			t.Errorf("mismatch at %d: lazy=%v cached=%v", i, lazyIDs[i], cachedIDs[i])
		}
	}
}

func TestSnapshotRoundTripScenarioF(t *testing.T) {
	w := NewWorld(100)
	transforms := map[EntityID][]byte{}
	velocities := map[EntityID][]byte{}

	for i := 0; i < 3; i++ {
		id, _ := w.CreateEntity()
		tf := make([]byte, 24)
		for j := range tf {
			tf[j] = byte(int(id)*10 + j)
		}
		vel := make([]byte, 16)
		for j := range vel {
			vel[j] = byte(int(id)*20 + j)
		}
		w.Add(typeTransform, id, tf)
		w.Add(typeVelocity, id, vel)
		transforms[id] = tf
		velocities[id] = vel
	}

	data, err := Marshal(w)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	fresh := NewWorld(100)
	if err := Unmarshal(data, fresh); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if fresh.NextEntityID() != 4 {
		t.Errorf("NextEntityID after load = %v, want 4", fresh.NextEntityID())
	}

	for id, want := range transforms {
		got, active := fresh.Get(typeTransform, id)
		if !active {
			t.Errorf("entity %v transform not active after load", id)
			continue
		}
		if !bytes.Equal(got, want) {
			t.Errorf("entity %v transform = %v, want %v", id, got, want)
		}
	}
	for id, want := range velocities {
		got, active := fresh.Get(typeVelocity, id)
		if !active {
			t.Errorf("entity %v velocity not active after load", id)
			continue
		}
		if !bytes.Equal(got, want) {
			t.Errorf("entity %v velocity = %v, want %v", id, got, want)
		}
	}
}

func TestSnapshotRejectsBadMagic(t *testing.T) {
	w := NewWorld(10)
	bad := []byte{0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	err := Unmarshal(bad, w)
	if !errors.Is(err, simerr.ErrSaveFormatInvalid) {
		t.Errorf("expected ErrSaveFormatInvalid, got %v", err)
	}
}
