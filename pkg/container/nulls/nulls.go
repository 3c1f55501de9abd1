// Copyright 2022 ColForge Data
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package nulls wraps the roaring bitmap library for the manipulation of
// null positions.  Every vector stores its NULL values as a Nulls; a nil
// or empty bitmap means no position is null.
package nulls

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/roaring64"
)

type Nulls struct {
	Np *roaring64.Bitmap
}

// New returns an empty Nulls.
func New() *Nulls {
	return &Nulls{}
}

// Build returns a Nulls with the given rows set.
func Build(rows ...uint64) *Nulls {
	nsp := New()
	Add(nsp, rows...)
	return nsp
}

func (nsp *Nulls) Clone() *Nulls {
	if nsp == nil || nsp.Np == nil {
		return New()
	}
	return &Nulls{Np: nsp.Np.Clone()}
}

// Any returns true if any position is null.
func Any(nsp *Nulls) bool {
	if nsp == nil || nsp.Np == nil {
		return false
	}
	return !nsp.Np.IsEmpty()
}

// Length returns the number of null positions.
func Length(nsp *Nulls) int {
	if nsp == nil || nsp.Np == nil {
		return 0
	}
	return int(nsp.Np.GetCardinality())
}

// Contains returns true if row is null.
func Contains(nsp *Nulls, row uint64) bool {
	return nsp != nil && nsp.Np != nil && nsp.Np.Contains(row)
}

func Add(nsp *Nulls, rows ...uint64) {
	if len(rows) == 0 {
		return
	}
	if nsp.Np == nil {
		nsp.Np = &roaring64.Bitmap{}
	}
	nsp.Np.AddMany(rows)
}

func AddRange(nsp *Nulls, start, end uint64) {
	if nsp.Np == nil {
		nsp.Np = &roaring64.Bitmap{}
	}
	nsp.Np.AddRange(start, end)
}

func Del(nsp *Nulls, rows ...uint64) {
	if nsp == nil || nsp.Np == nil {
		return
	}
	for _, row := range rows {
		nsp.Np.Remove(row)
	}
}

// Set performs a union of nsp and m, storing the result in nsp.
func Set(nsp, m *Nulls) {
	if m != nil && m.Np != nil {
		if nsp.Np == nil {
			nsp.Np = &roaring64.Bitmap{}
		}
		nsp.Np.Or(m.Np)
	}
}

// Or performs a union of nsp and m, storing the result in r.
func Or(nsp, m, r *Nulls) {
	r.Np = &roaring64.Bitmap{}
	if nsp != nil && nsp.Np != nil {
		r.Np.Or(nsp.Np)
	}
	if m != nil && m.Np != nil {
		r.Np.Or(m.Np)
	}
}

// Min returns the lowest null position.  It must not be called on an
// empty Nulls.
func Min(nsp *Nulls) uint64 {
	return nsp.Np.Minimum()
}

// Rows returns the null positions in ascending order.
func Rows(nsp *Nulls) []uint64 {
	if nsp == nil || nsp.Np == nil {
		return nil
	}
	return nsp.Np.ToArray()
}

// Range copies the nulls of nsp in [start, end) to m, shifted down by bias.
func Range(nsp *Nulls, start, end, bias uint64, m *Nulls) *Nulls {
	if nsp == nil || nsp.Np == nil {
		return m
	}
	for ; start < end; start++ {
		if nsp.Np.Contains(start) {
			Add(m, start-bias)
		}
	}
	return m
}

func Reset(nsp *Nulls) {
	if nsp.Np != nil {
		nsp.Np.Clear()
	}
}

func String(nsp *Nulls) string {
	if nsp == nil || nsp.Np == nil {
		return "[]"
	}
	return fmt.Sprintf("%v", nsp.Np.ToArray())
}
