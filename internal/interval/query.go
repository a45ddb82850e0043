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

package interval

import "github.com/9rum/rangeindex/internal/avltree"

// QueryPoint returns the value of a range containing k.  When several ranges
// contain k, the first one met on the descent from the root wins; this is not
// necessarily the one with the lowest bound.
func (x *Index[T, V]) QueryPoint(k T) (_ V, _ bool) {
	for s := 0; ; {
		p := x.payload(s)
		if p == none {
			return
		}
		rec := &x.records[p]
		if rec.r.Contains(k) {
			return rec.value, true
		}

		// Ranges are ordered by lower bound, so if the left subtree reaches
		// k but holds no match, nothing to the right can start early enough.
		l := avltree.Left(s)
		if q := x.payload(l); q != none && k <= x.records[q].max && x.records[q].min <= k {
			s = l
		} else {
			s = avltree.Right(s)
		}
	}
}

// VisitAll calls fn for every range containing k, skipping the subtrees
// whose aggregates rule k out.  The order of the calls is not significant.
// When fn returns false, the visit stops.
func (x *Index[T, V]) VisitAll(k T, fn func(Range[T], V) bool) {
	x.visit(0, k, fn)
}

func (x *Index[T, V]) visit(s int, k T, fn func(Range[T], V) bool) bool {
	p := x.payload(s)
	if p == none {
		return true
	}
	rec := &x.records[p]
	if k < rec.min || rec.max < k {
		return true
	}
	if rec.r.Contains(k) && !fn(rec.r, rec.value) {
		return false
	}
	return x.visit(avltree.Left(s), k, fn) && x.visit(avltree.Right(s), k, fn)
}

// QueryAll returns the values of all ranges containing k.
func (x *Index[T, V]) QueryAll(k T) (out []V) {
	x.VisitAll(k, func(_ Range[T], value V) bool {
		out = append(out, value)
		return true
	})
	return
}
