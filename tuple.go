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

import "context"

// The tuple family carries multiple extractions through a chain as one
// value. Tuples stay flat: Join builds one from scalar filters and
// Append grows one by a scalar, so composing extractions never nests a
// tuple inside another. Five values is the ceiling; a chain that needs
// more should bundle related values into a struct with [Map].

// Tuple2 holds two extractions.
type Tuple2[A, B any] struct {
	A A
	B B
}

// Values unpacks the tuple.
func (t Tuple2[A, B]) Values() (A, B) { return t.A, t.B }

// Tuple3 holds three extractions.
type Tuple3[A, B, C any] struct {
	A A
	B B
	C C
}

// Values unpacks the tuple.
func (t Tuple3[A, B, C]) Values() (A, B, C) { return t.A, t.B, t.C }

// Tuple4 holds four extractions.
type Tuple4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

// Values unpacks the tuple.
func (t Tuple4[A, B, C, D]) Values() (A, B, C, D) { return t.A, t.B, t.C, t.D }

// Tuple5 holds five extractions.
type Tuple5[A, B, C, D, E any] struct {
	A A
	B B
	C C
	D D
	E E
}

// Values unpacks the tuple.
func (t Tuple5[A, B, C, D, E]) Values() (A, B, C, D, E) { return t.A, t.B, t.C, t.D, t.E }

// Join2 evaluates two filters in order and pairs their extractions.
// The first rejection wins and the second filter is not evaluated.
func Join2[A, B any](fa Filter[A], fb Filter[B]) Filter[Tuple2[A, B]] {
	return func(ctx context.Context, rt *Route) (Tuple2[A, B], error) {
		a, err := fa(ctx, rt)
		if err != nil {
			return Tuple2[A, B]{}, err
		}
		b, err := fb(ctx, rt)
		if err != nil {
			return Tuple2[A, B]{}, err
		}

		return Tuple2[A, B]{A: a, B: b}, nil
	}
}

// Join3 evaluates three filters in order and collects their extractions.
func Join3[A, B, C any](fa Filter[A], fb Filter[B], fc Filter[C]) Filter[Tuple3[A, B, C]] {
	return Append2(Join2(fa, fb), fc)
}

// Join4 evaluates four filters in order and collects their extractions.
func Join4[A, B, C, D any](fa Filter[A], fb Filter[B], fc Filter[C], fd Filter[D]) Filter[Tuple4[A, B, C, D]] {
	return Append3(Join3(fa, fb, fc), fd)
}

// Join5 evaluates five filters in order and collects their extractions.
func Join5[A, B, C, D, E any](fa Filter[A], fb Filter[B], fc Filter[C], fd Filter[D], fe Filter[E]) Filter[Tuple5[A, B, C, D, E]] {
	return Append4(Join4(fa, fb, fc, fd), fe)
}

// Append2 extends a two-tuple filter with one more extraction, keeping
// the result flat.
func Append2[A, B, C any](f Filter[Tuple2[A, B]], g Filter[C]) Filter[Tuple3[A, B, C]] {
	return func(ctx context.Context, rt *Route) (Tuple3[A, B, C], error) {
		t, err := f(ctx, rt)
		if err != nil {
			return Tuple3[A, B, C]{}, err
		}
		c, err := g(ctx, rt)
		if err != nil {
			return Tuple3[A, B, C]{}, err
		}

		return Tuple3[A, B, C]{A: t.A, B: t.B, C: c}, nil
	}
}

// Append3 extends a three-tuple filter with one more extraction.
func Append3[A, B, C, D any](f Filter[Tuple3[A, B, C]], g Filter[D]) Filter[Tuple4[A, B, C, D]] {
	return func(ctx context.Context, rt *Route) (Tuple4[A, B, C, D], error) {
		t, err := f(ctx, rt)
		if err != nil {
			return Tuple4[A, B, C, D]{}, err
		}
		d, err := g(ctx, rt)
		if err != nil {
			return Tuple4[A, B, C, D]{}, err
		}

		return Tuple4[A, B, C, D]{A: t.A, B: t.B, C: t.C, D: d}, nil
	}
}

// Append4 extends a four-tuple filter with one more extraction.
func Append4[A, B, C, D, E any](f Filter[Tuple4[A, B, C, D]], g Filter[E]) Filter[Tuple5[A, B, C, D, E]] {
	return func(ctx context.Context, rt *Route) (Tuple5[A, B, C, D, E], error) {
		t, err := f(ctx, rt)
		if err != nil {
			return Tuple5[A, B, C, D, E]{}, err
		}
		e, err := g(ctx, rt)
		if err != nil {
			return Tuple5[A, B, C, D, E]{}, err
		}

		return Tuple5[A, B, C, D, E]{A: t.A, B: t.B, C: t.C, D: t.D, E: e}, nil
	}
}
