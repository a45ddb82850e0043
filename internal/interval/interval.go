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

// Package interval implements an augmented interval index on top of an
// array-encoded AVL tree.
//
// Ranges and their values are appended to a record slice and never move.
// The tree orders the record indices by range and is used purely as an
// ordering and balancing engine; a permutation table maps every tree slot to
// the record it holds.  Every record carries the maximum upper bound and the
// minimum lower bound found in the subtree rooted at its slot, and these
// aggregates are kept exact through rotations by observing the relocations
// the tree performs.  Ranges cannot be removed.
package interval

import (
	"errors"
	"fmt"

	"github.com/9rum/rangeindex/internal/avltree"
	"github.com/golang/glog"
	"golang.org/x/exp/constraints"
)

var (
	// ErrCapacity is returned when an insertion would grow the index beyond
	// its maximum capacity.
	ErrCapacity = avltree.ErrCapacity

	// ErrInvalidRange is returned when inserting a range whose lower bound
	// exceeds its upper bound.
	ErrInvalidRange = errors.New("interval: invalid range")
)

// none marks a slot that holds no record.
const none = -1

// record is a single range stored in the index.  max and min aggregate the
// subtree rooted at the slot that holds the record.
type record[T constraints.Ordered, V any] struct {
	r     Range[T]
	value V
	max   T
	min   T
}

// Index is an interval index.  It is not safe for concurrent use.
type Index[T constraints.Ordered, V any] struct {
	tree        *avltree.Tree[int, struct{}]
	records     []record[T, V]
	perm        []int
	maxCapacity int
}

// New creates a new index with room for capacity ranges before it grows.
func New[T constraints.Ordered, V any](capacity int, opts ...Option) *Index[T, V] {
	if capacity < 1 {
		panic("interval: bad capacity")
	}
	o := options{maxCapacity: avltree.DefaultMaxCapacity}
	for _, fn := range opts {
		fn(&o)
	}

	x := &Index[T, V]{
		records:     make([]record[T, V], 0, capacity),
		perm:        make([]int, capacity+1),
		maxCapacity: max(o.maxCapacity, capacity),
	}
	for i := range x.perm {
		x.perm[i] = none
	}
	x.tree = avltree.New[int, struct{}](capacity, x.compare,
		avltree.WithObserver(avltree.ObserverFunc(x.relocated)),
		avltree.WithMaxCapacity(x.maxCapacity))
	return x
}

// compare orders two records by their ranges.
func (x *Index[T, V]) compare(a, b int) int {
	return x.records[a].r.Compare(x.records[b].r)
}

// Len returns the number of ranges in the index.
func (x *Index[T, V]) Len() int {
	return x.tree.Len()
}

// Cap returns the number of ranges the index holds before it grows.
func (x *Index[T, V]) Cap() int {
	return cap(x.records)
}

// Height returns the height of the underlying tree.
func (x *Index[T, V]) Height() int {
	return x.tree.Height()
}

// payload returns the record held by slot s, or none.
func (x *Index[T, V]) payload(s int) int {
	if s < len(x.perm) {
		return x.perm[s]
	}
	return none
}

// setPayload records that slot s holds record p, growing the permutation
// table along with the tree.
func (x *Index[T, V]) setPayload(s, p int) {
	if len(x.perm) <= s {
		n := max(len(x.perm), x.tree.Cap()+1)
		for n <= s {
			n *= 2
		}
		perm := make([]int, n)
		copy(perm, x.perm)
		for i := len(x.perm); i < n; i++ {
			perm[i] = none
		}
		x.perm = perm
	}
	x.perm[s] = p
}

// grow doubles the record slice.  The tree refers to records by index, so
// nothing it holds needs to be rewritten.
func (x *Index[T, V]) grow() error {
	n := 2 * cap(x.records)
	if x.maxCapacity < n {
		if x.maxCapacity <= cap(x.records) {
			return fmt.Errorf("%w: %d ranges", ErrCapacity, cap(x.records))
		}
		n = x.maxCapacity
	}
	records := make([]record[T, V], len(x.records), n)
	copy(records, x.records)
	x.records = records
	glog.V(1).Infof("interval index grown to %d ranges", n)
	return nil
}

// refresh recomputes the aggregates of the record at slot s from its own
// range and whichever of its children are currently present.
func (x *Index[T, V]) refresh(s int) {
	rec := &x.records[x.perm[s]]
	rec.max, rec.min = rec.r.Sup, rec.r.Inf
	for _, c := range [2]int{avltree.Left(s), avltree.Right(s)} {
		if q := x.payload(c); q != none {
			rec.max = max(rec.max, x.records[q].max)
			rec.min = min(rec.min, x.records[q].min)
		}
	}
}

// propagate folds the aggregates of the record at slot s into every
// occupied ancestor of s.
func (x *Index[T, V]) propagate(s int) {
	moved := x.records[x.perm[s]]
	for a := s; a != 0; {
		a = avltree.Parent(a)
		if q := x.payload(a); q != none {
			rec := &x.records[q]
			rec.max = max(rec.max, moved.max)
			rec.min = min(rec.min, moved.min)
		}
	}
}

// relocated follows the tree as it moves the record at slot from to slot to.
//
// Within a rotation the children of the new slot may not have arrived yet.
// Relocations that move children before their parents see every child in
// place; those that move parents first see the children arrive later, and
// each arrival folds its aggregates back into the parent through propagate.
// Either way the aggregates are exact once the rotation completes.
func (x *Index[T, V]) relocated(from, to int) {
	p := x.payload(from)
	x.setPayload(from, none)
	x.setPayload(to, p)
	x.refresh(to)
	x.propagate(to)
}

// find returns the slot holding a range equal to r or -1.
func (x *Index[T, V]) find(r Range[T]) int {
	for s := 0; ; {
		p := x.payload(s)
		if p == none {
			return -1
		}
		switch c := r.Compare(x.records[p].r); {
		case c < 0:
			s = avltree.Left(s)
		case 0 < c:
			s = avltree.Right(s)
		default:
			return s
		}
	}
}

// Insert adds the range with the given value to the index.  If an equal range
// is already in the index, its value is replaced and no record is added.
func (x *Index[T, V]) Insert(r Range[T], value V) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidRange, r)
	}
	if s := x.find(r); 0 <= s {
		x.records[x.perm[s]].value = value
		return nil
	}

	if len(x.records) == cap(x.records) {
		if err := x.grow(); err != nil {
			return err
		}
	}
	p := len(x.records)
	x.records = append(x.records, record[T, V]{r: r, value: value, max: r.Sup, min: r.Inf})

	slot, _, err := x.tree.Insert(p, struct{}{})
	if err != nil {
		x.records[p] = record[T, V]{}
		x.records = x.records[:p]
		return err
	}
	x.setPayload(slot, p)

	if slot != 0 {
		// the new record is a leaf, so every other aggregate below the
		// ancestors is already exact
		for a := slot; a != 0; {
			a = avltree.Parent(a)
			x.refresh(a)
		}
		x.tree.Rebalance(slot)
	}
	return nil
}

// Get returns the value stored with a range equal to r.
func (x *Index[T, V]) Get(r Range[T]) (_ V, _ bool) {
	if s := x.find(r); 0 <= s {
		return x.records[x.perm[s]].value, true
	}
	return
}

// Ascend calls fn for every range in the index in ascending order.  When fn
// returns false, iteration stops.
func (x *Index[T, V]) Ascend(fn func(Range[T], V) bool) {
	x.tree.Ascend(func(_ int, p int, _ struct{}) bool {
		rec := &x.records[p]
		return fn(rec.r, rec.value)
	})
}
