// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package avltree

import (
	"cmp"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func init() {
	seed := time.Now().Unix()
	fmt.Println(seed)
	rand.Seed(seed)
}

var treeSize = flag.Int("size", 1000, "number of keys per test tree")

// perm returns a random permutation of n keys in the range [0, n).
func perm(n int) []int {
	return rand.Perm(n)
}

// rang returns an ordered list of keys in the range [0, n).
func rang(n int) (out []int) {
	for i := 0; i < n; i++ {
		out = append(out, i)
	}
	return
}

// all extracts all keys from a tree in key order as a slice.
func all[V any](tr *Tree[int, V]) (out []int) {
	tr.Ascend(func(_ int, key int, _ V) bool {
		out = append(out, key)
		return true
	})
	return
}

// insert places the key and rebalances the tree as callers are expected to.
func insert(t *testing.T, tr *Tree[int, int], key int) {
	t.Helper()
	slot, replaced, err := tr.Insert(key, key)
	if err != nil {
		t.Fatalf("insert %d: %v", key, err)
	}
	if !replaced {
		tr.Rebalance(slot)
	}
}

// verify checks the order, balance and stored heights of every subtree as
// well as the absence of orphaned slots.
func verify[V any](t *testing.T, tr *Tree[int, V]) {
	t.Helper()
	var check func(i int) int
	check = func(i int) int {
		if !tr.occupied(i) {
			return 0
		}
		l, r := check(left(i)), check(right(i))
		if d := l - r; d < -1 || 1 < d {
			t.Fatalf("slot %d unbalanced: left %d right %d", i, l, r)
		}
		h := max(l, r) + 1
		if got := int(tr.nodes[i].height); got != h {
			t.Fatalf("slot %d stored height %d, want %d", i, got, h)
		}
		return h
	}
	check(0)

	count := 0
	for i := range tr.nodes {
		if !tr.nodes[i].used {
			continue
		}
		count++
		if i != 0 && !tr.occupied(parent(i)) {
			t.Fatalf("slot %d is occupied but its parent is not", i)
		}
	}
	if count != tr.Len() {
		t.Fatalf("len %d, counted %d occupied slots", tr.Len(), count)
	}

	keys := all(tr)
	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			t.Fatalf("keys out of order at %d: %v", i, keys)
		}
	}
}

func TestTree(t *testing.T) {
	tr := New[int, int](8, cmp.Compare[int])
	for i := 0; i < 4; i++ {
		if tr.Len() != 0 || tr.Height() != 0 {
			t.Fatalf("empty tree, got len %d height %d", tr.Len(), tr.Height())
		}
		for _, key := range perm(*treeSize) {
			insert(t, tr, key)
		}
		verify(t, tr)
		if tr.Len() != *treeSize {
			t.Fatalf("len: want %d got %d", *treeSize, tr.Len())
		}
		for _, key := range perm(*treeSize) {
			if !tr.Has(key) {
				t.Fatal("has did not find key", key)
			}
		}
		for _, key := range perm(*treeSize) {
			slot, replaced, err := tr.Insert(key, -key)
			if err != nil || !replaced {
				t.Fatalf("insert did not find key %d: replaced %v err %v", key, replaced, err)
			}
			if got, ok := tr.KeyAt(slot); !ok || got != key {
				t.Fatalf("slot %d: want key %d got %d", slot, key, got)
			}
		}
		for _, key := range perm(*treeSize) {
			if v, ok := tr.Get(key); !ok || v != -key {
				t.Fatalf("get %d: want %d got %d", key, -key, v)
			}
		}
		if got, want := all(tr), rang(*treeSize); !reflect.DeepEqual(got, want) {
			t.Fatalf("mismatch:\n got: %v\nwant: %v", got, want)
		}
		if _, ok := tr.Get(*treeSize); ok {
			t.Fatal("get found a key that was never inserted")
		}
		tr.Clear()
	}
}

func TestHeightIsLogarithmic(t *testing.T) {
	tr := New[int, int](1, cmp.Compare[int])
	for _, key := range rang(1 << 10) {
		insert(t, tr, key)
	}
	verify(t, tr)
	// an AVL tree holding 2^10 keys is no taller than 1.44 * log2(2^10 + 2)
	if h := tr.Height(); 14 < h {
		t.Fatalf("height %d too large for %d keys", h, tr.Len())
	}
}

func TestRotations(t *testing.T) {
	for _, tc := range []struct {
		name string
		keys []int
		want []int
	}{
		{"left-left", []int{3, 2, 1}, []int{2, 1, 3}},
		{"left-right", []int{3, 1, 2}, []int{2, 1, 3}},
		{"right-right", []int{1, 2, 3}, []int{2, 1, 3}},
		{"right-left", []int{1, 3, 2}, []int{2, 1, 3}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tr := New[int, int](3, cmp.Compare[int])
			for _, key := range tc.keys {
				insert(t, tr, key)
			}
			verify(t, tr)
			for slot, want := range tc.want {
				if got, ok := tr.KeyAt(slot); !ok || got != want {
					t.Fatalf("slot %d: want %d got %d (ok %v)", slot, want, got, ok)
				}
			}
		})
	}
}

func TestRotationMovesSubtrees(t *testing.T) {
	tr := New[int, int](16, cmp.Compare[int])
	// a left-left imbalance at the root with non-empty A, B and C subtrees
	for _, key := range []int{50, 30, 70, 20, 40, 60, 10, 25, 35, 45, 5} {
		insert(t, tr, key)
	}
	verify(t, tr)
	if got, want := all(tr), []int{5, 10, 20, 25, 30, 35, 40, 45, 50, 60, 70}; !reflect.DeepEqual(got, want) {
		t.Fatalf("mismatch:\n got: %v\nwant: %v", got, want)
	}
}

func TestIterateSlotOrder(t *testing.T) {
	tr := New[int, int](4, cmp.Compare[int])
	for _, key := range perm(100) {
		insert(t, tr, key)
	}
	last, seen := -1, 0
	tr.Iterate(func(slot int, key int, _ int) bool {
		if slot <= last {
			t.Fatalf("slot %d visited after slot %d", slot, last)
		}
		if got, ok := tr.KeyAt(slot); !ok || got != key {
			t.Fatalf("slot %d: want key %d got %d", slot, key, got)
		}
		last = slot
		seen++
		return true
	})
	if seen != tr.Len() {
		t.Fatalf("visited %d slots, want %d", seen, tr.Len())
	}

	seen = 0
	tr.Iterate(func(int, int, int) bool {
		seen++
		return seen < 10
	})
	if seen != 10 {
		t.Fatalf("iteration did not stop: visited %d", seen)
	}
}

func TestRemove(t *testing.T) {
	tr := New[int, int](8, cmp.Compare[int])
	for _, key := range perm(*treeSize) {
		insert(t, tr, key)
	}
	removed := make(map[int]bool)
	for _, key := range perm(*treeSize)[:*treeSize/2] {
		v, ok := tr.Remove(key)
		if !ok || v != key {
			t.Fatalf("remove %d: got %d ok %v", key, v, ok)
		}
		removed[key] = true
		verify(t, tr)
	}
	for key := 0; key < *treeSize; key++ {
		if tr.Has(key) == removed[key] {
			t.Fatalf("has %d: %v after removal %v", key, tr.Has(key), removed[key])
		}
	}
	if _, ok := tr.Remove(-1); ok {
		t.Fatal("removed a key that was never inserted")
	}
	for key := range removed {
		insert(t, tr, key)
	}
	verify(t, tr)
	if got, want := all(tr), rang(*treeSize); !reflect.DeepEqual(got, want) {
		t.Fatalf("mismatch:\n got: %v\nwant: %v", got, want)
	}
}

func TestRemoveAll(t *testing.T) {
	tr := New[int, int](8, cmp.Compare[int])
	for _, key := range perm(200) {
		insert(t, tr, key)
	}
	for _, key := range perm(200) {
		if _, ok := tr.Remove(key); !ok {
			t.Fatalf("remove %d failed", key)
		}
		verify(t, tr)
	}
	if tr.Len() != 0 || tr.Height() != 0 {
		t.Fatalf("want empty tree, got len %d height %d", tr.Len(), tr.Height())
	}
}

// shadow mirrors the keys of a tree using nothing but placements and
// relocation notifications.
type shadow []int

func (s *shadow) set(slot, key int) {
	for len(*s) <= slot {
		*s = append(*s, -1)
	}
	(*s)[slot] = key
}

func (s *shadow) Relocated(from, to int) {
	key := (*s)[from]
	s.set(from, -1)
	s.set(to, key)
}

func TestObserver(t *testing.T) {
	var sh shadow
	tr := New[int, int](2, cmp.Compare[int], WithObserver(&sh))

	match := func() {
		t.Helper()
		for slot := 0; slot < max(len(sh), tr.Cap()); slot++ {
			want := -1
			if slot < len(sh) {
				want = sh[slot]
			}
			got, ok := tr.KeyAt(slot)
			if !ok {
				got = -1
			}
			if got != want {
				t.Fatalf("slot %d: tree holds %d, observer saw %d", slot, got, want)
			}
		}
	}

	for _, key := range perm(500) {
		slot, replaced, err := tr.Insert(key, key)
		if err != nil || replaced {
			t.Fatalf("insert %d: replaced %v err %v", key, replaced, err)
		}
		sh.set(slot, key)
		tr.Rebalance(slot)
		match()
	}
	for _, key := range perm(500)[:250] {
		tr.Iterate(func(slot int, k int, _ int) bool {
			if k == key {
				sh.set(slot, -1)
				return false
			}
			return true
		})
		tr.Remove(key)
		match()
	}
}

func TestMaxCapacity(t *testing.T) {
	tr := New[int, int](1, cmp.Compare[int], WithMaxCapacity(3))
	insert(t, tr, 1)
	insert(t, tr, 2)
	if _, _, err := tr.Insert(3, 3); !errors.Is(err, ErrCapacity) {
		t.Fatalf("want ErrCapacity, got %v", err)
	}
	if tr.Len() != 2 || tr.Has(3) {
		t.Fatalf("failed insert changed the tree: len %d", tr.Len())
	}
	// an equal key never needs a new slot
	if _, replaced, err := tr.Insert(2, 20); err != nil || !replaced {
		t.Fatalf("replace: replaced %v err %v", replaced, err)
	}
}

func TestMaxCapacityBoundsSlots(t *testing.T) {
	for limit := 3; limit < 63; limit++ {
		tr := New[int, int](1+rand.Intn(limit), cmp.Compare[int], WithMaxCapacity(limit))
		rejected := 0
		for _, key := range perm(2 * limit) {
			slot, _, err := tr.Insert(key, key)
			if errors.Is(err, ErrCapacity) {
				rejected++
				continue
			}
			if err != nil {
				t.Fatalf("insert %d: %v", key, err)
			}
			if limit <= slot {
				t.Fatalf("key %d placed at slot %d beyond max capacity %d", key, slot, limit)
			}
			tr.Rebalance(slot)
			if limit < tr.Cap() {
				t.Fatalf("cap %d beyond max capacity %d", tr.Cap(), limit)
			}
			tr.Iterate(func(slot, key, _ int) bool {
				if limit <= slot {
					t.Fatalf("key %d relocated to slot %d beyond max capacity %d", key, slot, limit)
				}
				return true
			})
		}
		if rejected == 0 {
			t.Fatalf("max capacity %d: all %d keys accepted", limit, 2*limit)
		}
		verify(t, tr)
	}
}

// mustPanic fails the test unless fn panics.
func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s did not panic", name)
		}
	}()
	fn()
}

func TestContractViolations(t *testing.T) {
	mustPanic(t, "zero capacity", func() { New[int, int](0, cmp.Compare[int]) })
	mustPanic(t, "nil comparator", func() { New[int, int](1, nil) })

	tr := New[int, int](4, cmp.Compare[int])
	insert(t, tr, 1)
	mustPanic(t, "out of range rebalance", func() { tr.Rebalance(100) })
	mustPanic(t, "negative slot", func() { tr.KeyAt(-1) })
	mustPanic(t, "parent of root", func() { Parent(0) })
	mustPanic(t, "insert while iterating", func() {
		tr.Iterate(func(int, int, int) bool {
			tr.Insert(2, 2)
			return true
		})
	})

	var reentrant *Tree[int, int]
	reentrant = New[int, int](4, cmp.Compare[int], WithObserver(ObserverFunc(func(from, to int) {
		reentrant.Insert(100, 100)
	})))
	mustPanic(t, "insert from observer", func() {
		for _, key := range []int{1, 2, 3} {
			slot, _, _ := reentrant.Insert(key, key)
			reentrant.Rebalance(slot)
		}
	})

	broken := New[int, int](4, func(a, b int) int { return 1 })
	mustPanic(t, "irreflexive comparator", func() { broken.Insert(1, 1) })
}
