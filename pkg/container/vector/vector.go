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

package vector

import (
	"strings"

	"github.com/colforge/datecast/pkg/container/nulls"
	"github.com/colforge/datecast/pkg/container/types"
)

const (
	// FLAT vectors store one value slot per position.
	FLAT = iota
	// DIST vectors store a dictionary of distinct values plus an index
	// array referencing them.
	DIST
)

// Vector represents one physical chunk of a column.
type Vector struct {
	class int
	typ   types.Type
	Nsp   *nulls.Nulls // null positions

	// value slots of a FLAT vector: []string for T_varchar,
	// []types.Date for T_date
	col any

	// dictionary representation, class DIST only
	dict    *Vector
	indices []int32

	length int
}

// NewWithStrings returns a FLAT varchar vector.  Values at null positions
// are ignored but must be present as slots.
func NewWithStrings(typ types.Type, vals []string, nsp *nulls.Nulls) *Vector {
	if nsp == nil {
		nsp = nulls.New()
	}
	return &Vector{class: FLAT, typ: typ, Nsp: nsp, col: vals, length: len(vals)}
}

// NewWithDates returns a FLAT date vector.
func NewWithDates(typ types.Type, vals []types.Date, nsp *nulls.Nulls) *Vector {
	if nsp == nil {
		nsp = nulls.New()
	}
	return &Vector{class: FLAT, typ: typ, Nsp: nsp, col: vals, length: len(vals)}
}

// NewDict returns a DIST vector over a FLAT dictionary of distinct values.
// nsp marks null positions of the index array; indices at null positions
// are ignored.
func NewDict(typ types.Type, dict *Vector, indices []int32, nsp *nulls.Nulls) *Vector {
	if nsp == nil {
		nsp = nulls.New()
	}
	return &Vector{
		class:   DIST,
		typ:     typ,
		Nsp:     nsp,
		dict:    dict,
		indices: indices,
		length:  len(indices),
	}
}

func (v *Vector) Class() int {
	return v.class
}

func (v *Vector) IsDict() bool {
	return v.class == DIST
}

func (v *Vector) GetType() *types.Type {
	return &v.typ
}

func (v *Vector) Length() int {
	return v.length
}

// Dict returns the distinct-value dictionary of a DIST vector.
func (v *Vector) Dict() *Vector {
	return v.dict
}

// Indices returns the index array of a DIST vector.
func (v *Vector) Indices() []int32 {
	return v.indices
}

func (v *Vector) IsNull(i uint64) bool {
	return nulls.Contains(v.Nsp, i)
}

// MustStrCols extracts the value slots of a FLAT varchar vector.
func MustStrCols(v *Vector) []string {
	return v.col.([]string)
}

// MustDateCols extracts the value slots of a FLAT date vector.
func MustDateCols(v *Vector) []types.Date {
	return v.col.([]types.Date)
}

// GetStr returns the string at position i, resolving dictionary indirection.
func (v *Vector) GetStr(i uint64) string {
	if v.class == DIST {
		return MustStrCols(v.dict)[v.indices[i]]
	}
	return MustStrCols(v)[i]
}

// GetDate returns the date at position i, resolving dictionary indirection.
func (v *Vector) GetDate(i uint64) types.Date {
	if v.class == DIST {
		return MustDateCols(v.dict)[v.indices[i]]
	}
	return MustDateCols(v)[i]
}

func (v *Vector) String() string {
	var sb strings.Builder
	sb.WriteString(v.typ.String())
	sb.WriteString("[")
	for i := 0; i < v.length; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		if v.IsNull(uint64(i)) {
			sb.WriteString("null")
			continue
		}
		switch v.typ.Oid {
		case types.T_date:
			sb.WriteString(v.GetDate(uint64(i)).String())
		default:
			sb.WriteString(v.GetStr(uint64(i)))
		}
	}
	sb.WriteString("]")
	return sb.String()
}
