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

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Range represents the closed range [Inf, Sup].
type Range[T constraints.Ordered] struct {
	Inf T
	Sup T
}

// NewRange creates a new range with the given bounds.
func NewRange[T constraints.Ordered](inf, sup T) Range[T] {
	return Range[T]{Inf: inf, Sup: sup}
}

// Contains tests whether k lies within the range.
func (r Range[T]) Contains(k T) bool {
	return r.Inf <= k && k <= r.Sup
}

// Valid reports whether the lower bound does not exceed the upper bound.
func (r Range[T]) Valid() bool {
	return r.Inf <= r.Sup
}

// Compare orders ranges by lower bound, breaking ties by upper bound.
func (r Range[T]) Compare(than Range[T]) int {
	switch {
	case r.Inf < than.Inf:
		return -1
	case than.Inf < r.Inf:
		return 1
	case r.Sup < than.Sup:
		return -1
	case than.Sup < r.Sup:
		return 1
	}
	return 0
}

func (r Range[T]) String() string {
	return fmt.Sprintf("[%v,%v]", r.Inf, r.Sup)
}
