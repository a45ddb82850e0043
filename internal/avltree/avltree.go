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

// Package avltree implements an in-memory AVL tree laid out over an array.
//
// There are no node objects and no child references: the tree lives in a
// single growable slice addressed heap-style, the root at slot 0 and the
// children of slot i at 2i+1 and 2i+2.  A rotation therefore cannot relink
// anything; it relocates whole subtrees between regions of the slice.  Each
// relocated node is reported to an optional Observer so that a layer built on
// top of the tree can keep side tables indexed by slot in step with it.
//
// Insert places a key but does not rotate.  Callers that keep derived data
// per slot fix that data up first and then call Rebalance with the returned
// slot.
//
// Iterate visits slots in increasing slot order, which is not key order.
// Use Ascend for a key-ordered walk.
//
// A Tree is not safe for concurrent use.
package avltree

import (
	"errors"
	"fmt"
)

// DefaultMaxCapacity is the largest number of slots a tree grows to unless
// WithMaxCapacity says otherwise.
const DefaultMaxCapacity = 1 << 28

// ErrCapacity is returned when placing a key would grow the tree beyond its
// maximum capacity.
var ErrCapacity = errors.New("avltree: capacity exceeded")

// Observer is notified every time a node is physically moved from one slot to
// another by a rotation or a removal.  The move has already happened when
// Relocated is called: slot to holds the node and slot from is empty unless
// a later move of the same operation refills it.
//
// Relocated may be called several times per rotation and must not mutate the
// tree it observes.
type Observer interface {
	Relocated(from, to int)
}

// ObserverFunc is an adapter to allow the use of ordinary functions as
// observers.
type ObserverFunc func(from, to int)

// Relocated calls f(from, to).
func (f ObserverFunc) Relocated(from, to int) {
	f(from, to)
}

// ItemIterator allows callers of Iterate and Ascend to visit the tree.  When
// this function returns false, iteration stops immediately.
type ItemIterator[K, V any] func(slot int, key K, value V) bool

// node is a single slot of the tree.  height is the height of the subtree
// rooted at the slot and travels with the node when it is relocated.
type node[K, V any] struct {
	key    K
	value  V
	height int32
	used   bool
}

// Tree is an AVL tree stored in a slice.
type Tree[K, V any] struct {
	nodes       []node[K, V]
	count       int
	cmp         func(a, b K) int
	observer    Observer
	maxCapacity int
	busy        int
}

// New creates a new tree with room for capacity slots.  cmp must define a
// strict total order: negative when a sorts before b, zero when they are
// equal and positive otherwise.
func New[K, V any](capacity int, cmp func(a, b K) int, opts ...Option) *Tree[K, V] {
	if capacity < 1 {
		panic("avltree: bad capacity")
	}
	if cmp == nil {
		panic("avltree: nil comparator")
	}
	o := options{maxCapacity: DefaultMaxCapacity}
	for _, fn := range opts {
		fn(&o)
	}
	if o.maxCapacity < capacity {
		o.maxCapacity = capacity
	}
	return &Tree[K, V]{
		nodes:       make([]node[K, V], capacity),
		cmp:         cmp,
		observer:    o.observer,
		maxCapacity: o.maxCapacity,
	}
}

func left(i int) int {
	return 2*i + 1
}

func right(i int) int {
	return 2*i + 2
}

func parent(i int) int {
	return (i - 1) / 2
}

// lastOfLevel returns the last slot of the level holding slot i.
func lastOfLevel(i int) int {
	n := 2
	for n-1 <= i {
		n *= 2
	}
	return n - 2
}

// Left returns the slot of the left child of slot i.
func Left(i int) int {
	return left(i)
}

// Right returns the slot of the right child of slot i.
func Right(i int) int {
	return right(i)
}

// Parent returns the slot of the parent of slot i.  Slot 0 has no parent.
func Parent(i int) int {
	if i <= 0 {
		panic(fmt.Sprintf("avltree: slot %d has no parent", i))
	}
	return parent(i)
}

// Len returns the number of keys currently in the tree.
func (t *Tree[K, V]) Len() int {
	return t.count
}

// Cap returns the number of slots currently allocated.
func (t *Tree[K, V]) Cap() int {
	return len(t.nodes)
}

// Height returns the height of the tree; an empty tree has height 0.
func (t *Tree[K, V]) Height() int {
	return t.height(0)
}

// Occupied reports whether slot i holds a key.
func (t *Tree[K, V]) Occupied(i int) bool {
	return t.occupied(i)
}

// KeyAt returns the key stored at slot i.
func (t *Tree[K, V]) KeyAt(i int) (_ K, _ bool) {
	if i < 0 {
		panic(fmt.Sprintf("avltree: slot %d out of range", i))
	}
	if !t.occupied(i) {
		return
	}
	return t.nodes[i].key, true
}

// Get looks for the key in the tree, returning its value.
func (t *Tree[K, V]) Get(key K) (_ V, _ bool) {
	if i := t.find(key); 0 <= i {
		return t.nodes[i].value, true
	}
	return
}

// Has returns true if the given key is in the tree.
func (t *Tree[K, V]) Has(key K) bool {
	return 0 <= t.find(key)
}

func (t *Tree[K, V]) occupied(i int) bool {
	return i < len(t.nodes) && t.nodes[i].used
}

func (t *Tree[K, V]) height(i int) int {
	if !t.occupied(i) {
		return 0
	}
	return int(t.nodes[i].height)
}

// updateHeight recomputes the height of slot i from its children.
func (t *Tree[K, V]) updateHeight(i int) {
	t.nodes[i].height = int32(max(t.height(left(i)), t.height(right(i))) + 1)
}

// balance returns the height of the left subtree of slot i minus that of its
// right subtree.
func (t *Tree[K, V]) balance(i int) int {
	return t.height(left(i)) - t.height(right(i))
}

// find returns the slot holding key or -1.
func (t *Tree[K, V]) find(key K) int {
	for i := 0; t.occupied(i); {
		switch r := t.cmp(key, t.nodes[i].key); {
		case r < 0:
			i = left(i)
		case 0 < r:
			i = right(i)
		default:
			return i
		}
	}
	return -1
}

// grow doubles the slice until slot i fits, but never past the maximum
// capacity.  Slot numbers are kept, so the shape of the tree is unchanged and
// no rebalancing is needed.
func (t *Tree[K, V]) grow(i int) {
	if t.maxCapacity <= i {
		panic(fmt.Sprintf("avltree: slot %d beyond %d slots", i, t.maxCapacity))
	}
	n := len(t.nodes)
	for n <= i {
		n *= 2
	}
	if t.maxCapacity < n {
		n = t.maxCapacity
	}
	nodes := make([]node[K, V], n)
	copy(nodes, t.nodes)
	t.nodes = nodes
}

// enter guards against mutation from inside a callback.
func (t *Tree[K, V]) enter() {
	if t.busy != 0 {
		panic("avltree: tree mutated from inside a callback")
	}
}

// Insert adds the given key to the tree.  If an equal key already exists, its
// value is replaced in place and replaced is true; the shape of the tree does
// not change in that case.  Otherwise the key is placed in a new leaf.
//
// Insert does not rotate.  Unless the returned slot is 0 or replaced is true,
// the caller must call Rebalance with the returned slot before the next
// mutation.
func (t *Tree[K, V]) Insert(key K, value V) (slot int, replaced bool, err error) {
	t.enter()
	if t.cmp(key, key) != 0 {
		panic("avltree: comparator is not reflexive")
	}

	i := 0
	for t.occupied(i) {
		switch r := t.cmp(key, t.nodes[i].key); {
		case r < 0:
			i = left(i)
		case 0 < r:
			i = right(i)
		default:
			t.nodes[i].value = value
			return i, true, nil
		}
	}

	// the whole level of slot i must fit, since rotations may move nodes
	// anywhere within the levels already in use
	if last := lastOfLevel(i); t.maxCapacity <= last {
		return 0, false, fmt.Errorf("%w: slot %d needs %d slots, limit is %d", ErrCapacity, i, last+1, t.maxCapacity)
	}
	if len(t.nodes) <= i {
		t.grow(i)
	}

	t.nodes[i] = node[K, V]{key: key, value: value, height: 1, used: true}
	t.count++

	// keep the stored heights on the descent path current
	for j := i; j != 0; {
		j = parent(j)
		t.updateHeight(j)
	}
	return i, false, nil
}

// Rebalance restores the balance of the tree after a key was placed at slot
// i, walking from the parent of slot i up to the root and rotating wherever
// the heights of two sibling subtrees differ by two.
func (t *Tree[K, V]) Rebalance(i int) {
	t.enter()
	if i < 0 || len(t.nodes) <= i {
		panic(fmt.Sprintf("avltree: slot %d out of range", i))
	}
	if i == 0 {
		return
	}
	t.rebalance(parent(i))
}

// rebalance walks from slot i up to the root inclusive.
func (t *Tree[K, V]) rebalance(i int) {
	for {
		if t.occupied(i) {
			switch b := t.balance(i); {
			case 2 <= b:
				if t.balance(left(i)) < 0 {
					t.rotateLeft(left(i))
				}
				t.rotateRight(i)
			case b <= -2:
				if 0 < t.balance(right(i)) {
					t.rotateRight(right(i))
				}
				t.rotateLeft(i)
			default:
				t.updateHeight(i)
			}
		}
		if i == 0 {
			return
		}
		i = parent(i)
	}
}

// Remove removes the given key from the tree, returning its value.
//
// If the removed slot has a left subtree, its in-order predecessor is moved
// into the slot and the predecessor's own left subtree is lifted into the
// slot the predecessor left behind.  Otherwise the right subtree, if any, is
// lifted into the removed slot.
func (t *Tree[K, V]) Remove(key K) (_ V, _ bool) {
	t.enter()
	i := t.find(key)
	if i < 0 {
		return
	}
	value := t.nodes[i].value
	t.nodes[i] = node[K, V]{}
	t.count--

	from := i
	if t.occupied(left(i)) {
		rep := left(i)
		for t.occupied(right(rep)) {
			rep = right(rep)
		}
		t.move(rep, i)
		t.shiftUp(left(rep), rep)
		from = rep
	} else {
		t.shiftUp(right(i), i)
	}
	t.rebalance(from)

	return value, true
}

// Clear removes all keys from the tree, keeping its capacity.
func (t *Tree[K, V]) Clear() {
	t.enter()
	clear(t.nodes)
	t.count = 0
}

// Iterate calls fn for every occupied slot in increasing slot order.  This
// is not key order.
func (t *Tree[K, V]) Iterate(fn ItemIterator[K, V]) {
	t.busy++
	defer func() { t.busy-- }()

	for i := range t.nodes {
		if n := &t.nodes[i]; n.used && !fn(i, n.key, n.value) {
			return
		}
	}
}

// Ascend calls fn for every key in ascending key order.
func (t *Tree[K, V]) Ascend(fn ItemIterator[K, V]) {
	t.busy++
	defer func() { t.busy-- }()

	t.ascend(0, fn)
}

func (t *Tree[K, V]) ascend(i int, fn ItemIterator[K, V]) bool {
	if !t.occupied(i) {
		return true
	}
	if !t.ascend(left(i), fn) {
		return false
	}
	if n := &t.nodes[i]; !fn(i, n.key, n.value) {
		return false
	}
	return t.ascend(right(i), fn)
}
