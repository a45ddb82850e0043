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

import "fmt"

// move relocates the node at slot from to slot to, empties slot from and
// notifies the observer.  Slot to must not hold a node that is still to be
// read.
func (t *Tree[K, V]) move(from, to int) {
	if len(t.nodes) <= to {
		t.grow(to)
	}
	t.nodes[to] = t.nodes[from]
	t.nodes[from] = node[K, V]{}

	if t.observer != nil {
		t.busy++
		defer func() { t.busy-- }()
		t.observer.Relocated(from, to)
	}
}

// shiftDown relocates the subtree rooted at slot from into the region rooted
// at slot to, children before their parent.  When to is a child of from, the
// child on that side is relocated first: every slot is then read before the
// relocation of one of its ancestors writes over it.
func (t *Tree[K, V]) shiftDown(from, to int) {
	if !t.occupied(from) {
		return
	}
	if to == right(from) {
		t.shiftDown(right(from), right(to))
		t.shiftDown(left(from), left(to))
	} else {
		t.shiftDown(left(from), left(to))
		t.shiftDown(right(from), right(to))
	}
	t.move(from, to)
}

// shiftUp relocates the subtree rooted at slot from into the region rooted at
// slot to, parents before their children.  When from is a child of to, the
// child on the other side is relocated first: every slot is then read before
// the relocation of one of its descendants writes over it.
func (t *Tree[K, V]) shiftUp(from, to int) {
	if !t.occupied(from) {
		return
	}
	t.move(from, to)
	if from == left(to) {
		t.shiftUp(right(from), right(to))
		t.shiftUp(left(from), left(to))
	} else {
		t.shiftUp(left(from), left(to))
		t.shiftUp(right(from), right(to))
	}
}

// rotateRight rotates the subtree rooted at slot i to the right:
//
//	      X              Y
//	     / \            / \
//	    Y   C   ==>    A   X
//	   / \                / \
//	  A   B              B   C
func (t *Tree[K, V]) rotateRight(i int) {
	l, r := left(i), right(i)
	if !t.occupied(l) {
		panic(fmt.Sprintf("avltree: right rotation at slot %d without a left child", i))
	}

	// make room for X by pushing C one level down
	t.shiftDown(r, right(r))
	t.move(i, r)
	// B becomes the left child of X
	t.shiftDown(right(l), left(r))
	t.updateHeight(r)
	// Y and A take the place of X
	t.shiftUp(l, i)
	t.updateHeight(i)
}

// rotateLeft rotates the subtree rooted at slot i to the left:
//
//	    X                  Y
//	   / \                / \
//	  A   Y     ==>      X   C
//	     / \            / \
//	    B   C          A   B
func (t *Tree[K, V]) rotateLeft(i int) {
	l, r := left(i), right(i)
	if !t.occupied(r) {
		panic(fmt.Sprintf("avltree: left rotation at slot %d without a right child", i))
	}

	// make room for X by pushing A one level down
	t.shiftDown(l, left(l))
	t.move(i, l)
	// B becomes the right child of X
	t.shiftDown(left(r), right(l))
	t.updateHeight(l)
	// Y and C take the place of X
	t.shiftUp(r, i)
	t.updateHeight(i)
}
