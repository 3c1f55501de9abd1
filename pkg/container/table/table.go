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

// Package table provides the in-memory table container: an ordered set
// of uniquely named, equal-length columns.  A column's values are split
// across one or more vector chunks; chunk boundaries are a storage
// detail and never affect conversion results.
package table

import (
	"context"

	"github.com/colforge/datecast/pkg/common/dcerr"
	"github.com/colforge/datecast/pkg/container/types"
	"github.com/colforge/datecast/pkg/container/vector"
)

type Column struct {
	Name   string
	Chunks []*vector.Vector

	typ types.Type
}

// NewColumn returns an empty column of the given element type.
func NewColumn(name string, typ types.Type) *Column {
	return &Column{Name: name, typ: typ}
}

// NewColumnWithChunks returns a column over pre-built chunks.  All chunks
// must share the column's element type.
func NewColumnWithChunks(ctx context.Context, name string, typ types.Type, chunks ...*vector.Vector) (*Column, error) {
	c := NewColumn(name, typ)
	for _, vec := range chunks {
		if err := c.AppendChunk(ctx, vec); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Column) AppendChunk(ctx context.Context, vec *vector.Vector) error {
	if vec.GetType().Oid != c.typ.Oid {
		return dcerr.NewTypeMismatch(ctx, c.Name, vec.GetType().String(), c.typ.String())
	}
	c.Chunks = append(c.Chunks, vec)
	return nil
}

func (c *Column) Type() types.Type {
	return c.typ
}

func (c *Column) Length() int {
	var n int
	for _, vec := range c.Chunks {
		n += vec.Length()
	}
	return n
}

type Table struct {
	Cols []*Column
}

// New builds a table from columns, enforcing unique names and equal lengths.
func New(ctx context.Context, cols ...*Column) (*Table, error) {
	seen := make(map[string]bool, len(cols))
	for _, col := range cols {
		if seen[col.Name] {
			return nil, dcerr.NewDupColumnName(ctx, col.Name)
		}
		seen[col.Name] = true
	}
	if len(cols) > 1 {
		want := cols[0].Length()
		for _, col := range cols[1:] {
			if got := col.Length(); got != want {
				return nil, dcerr.NewColumnLengthMismatch(ctx, col.Name, got, want)
			}
		}
	}
	return &Table{Cols: cols}, nil
}

// NewEmpty returns a table with no columns, the failure payload of a render.
func NewEmpty() *Table {
	return &Table{}
}

func (t *Table) NumCols() int {
	return len(t.Cols)
}

func (t *Table) NumRows() int {
	if len(t.Cols) == 0 {
		return 0
	}
	return t.Cols[0].Length()
}

// Attrs returns the column names in table order.
func (t *Table) Attrs() []string {
	attrs := make([]string, len(t.Cols))
	for i, col := range t.Cols {
		attrs[i] = col.Name
	}
	return attrs
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(ctx context.Context, name string) (int, error) {
	for i, col := range t.Cols {
		if col.Name == name {
			return i, nil
		}
	}
	return -1, dcerr.NewNoSuchColumn(ctx, name)
}

// SetColumn replaces the column at position i, keeping table order.
// The replacement must preserve the original name and length.
func (t *Table) SetColumn(ctx context.Context, i int, col *Column) error {
	old := t.Cols[i]
	if col.Name != old.Name {
		return dcerr.NewInternalError(ctx, "cannot rename column %s to %s", old.Name, col.Name)
	}
	if col.Length() != old.Length() {
		return dcerr.NewColumnLengthMismatch(ctx, col.Name, col.Length(), old.Length())
	}
	t.Cols[i] = col
	return nil
}
