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

type options struct {
	observer    Observer
	maxCapacity int
}

// Option represents the options that can be passed to New.
type Option func(*options)

// WithObserver registers the observer to be notified of every relocation.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// WithMaxCapacity bounds the tree to n slots.  Insert fails with ErrCapacity
// when the level that would hold the new key does not fit in n slots as a
// whole.  Rotations never move a node below the deepest level in use, so no
// node is ever stored at slot n or beyond and the slice never grows past n.
func WithMaxCapacity(n int) Option {
	return func(opts *options) {
		opts.maxCapacity = n
	}
}
