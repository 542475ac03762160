// Copyright 2025 The Rivaas Authors
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

package filter

// Either holds exactly one of two alternatives. [Or] produces it to
// record which branch matched, and [Recover] uses it to separate the
// original extraction from a recovery reply. The zero value is a left
// holding A's zero value.
type Either[A, B any] struct {
	left    A
	right   B
	isRight bool
}

// Left makes an Either holding the first alternative.
func Left[A, B any](a A) Either[A, B] {
	return Either[A, B]{left: a}
}

// Right makes an Either holding the second alternative.
func Right[A, B any](b B) Either[A, B] {
	return Either[A, B]{right: b, isRight: true}
}

// IsRight reports whether the second alternative is held.
func (e Either[A, B]) IsRight() bool { return e.isRight }

// Left returns the first alternative and whether it is the one held.
func (e Either[A, B]) Left() (A, bool) { return e.left, !e.isRight }

// Right returns the second alternative and whether it is the one held.
func (e Either[A, B]) Right() (B, bool) { return e.right, e.isRight }
