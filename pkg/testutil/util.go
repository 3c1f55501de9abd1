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

// Package testutil builds vectors, columns and tables for tests.
// Constructors panic on malformed input instead of returning errors.
package testutil

import (
	"context"

	"github.com/colforge/datecast/pkg/container/nulls"
	"github.com/colforge/datecast/pkg/container/table"
	"github.com/colforge/datecast/pkg/container/types"
	"github.com/colforge/datecast/pkg/container/vector"
)

// StrVector returns a FLAT varchar vector with the given null rows.
func StrVector(vals []string, nullRows ...uint64) *vector.Vector {
	return vector.NewWithStrings(types.New(types.T_varchar), vals, nulls.Build(nullRows...))
}

// DateVector returns a FLAT date vector tagged with unit.
func DateVector(unit types.Unit, vals []types.Date, nullRows ...uint64) *vector.Vector {
	return vector.NewWithDates(types.NewDate(unit), vals, nulls.Build(nullRows...))
}

// DictVector returns a dictionary-encoded varchar vector.  nullRows are
// positions of the index array, not of the dictionary.
func DictVector(dict []string, indices []int32, nullRows ...uint64) *vector.Vector {
	typ := types.New(types.T_varchar)
	return vector.NewDict(typ, vector.NewWithStrings(typ, dict, nil), indices, nulls.Build(nullRows...))
}

// Column assembles chunks into a named column.  At least one chunk is
// required; the column type is taken from the first.
func Column(name string, chunks ...*vector.Vector) *table.Column {
	col, err := table.NewColumnWithChunks(context.Background(), name, *chunks[0].GetType(), chunks...)
	if err != nil {
		panic(err)
	}
	return col
}

// Table assembles columns into a table.
func Table(cols ...*table.Column) *table.Table {
	tbl, err := table.New(context.Background(), cols...)
	if err != nil {
		panic(err)
	}
	return tbl
}

// Dates converts (y, m, d) triples to a date slice; handy for expected
// values in tests.
func Dates(triples ...[3]int) []types.Date {
	out := make([]types.Date, len(triples))
	for i, t := range triples {
		out[i] = types.FromCalendar(int32(t[0]), uint8(t[1]), uint8(t[2]))
	}
	return out
}
