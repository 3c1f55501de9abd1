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

// Package render is the host-facing boundary of the conversion engine.
// A render takes a table and a stored request, converts the named
// columns, and reports failures as data instead of propagating them.
package render

import (
	"context"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/colforge/datecast/pkg/colexec/textdate"
	"github.com/colforge/datecast/pkg/common/dcerr"
	"github.com/colforge/datecast/pkg/config"
	"github.com/colforge/datecast/pkg/container/table"
	"github.com/colforge/datecast/pkg/logutil"
)

// Result is what the host sees.  Conversion failures do not make a
// render fail: the table is replaced by an empty one and the error is
// carried here.  A render is all or nothing, so Errors holds at most
// one entry.
type Result struct {
	Table  *table.Table
	Errors []*dcerr.Error
}

// Renderer executes render requests, optionally spreading chunk work
// over a shared worker pool.
type Renderer struct {
	pool *ants.Pool
}

// NewRenderer builds a renderer from engine parameters.  Parallelism 0
// means one worker per CPU; 1 keeps everything on the calling
// goroutine.
func NewRenderer(ep *config.EngineParameters) (*Renderer, error) {
	n := int(ep.Parallelism)
	if n == 0 {
		n = runtime.NumCPU()
	}
	if n <= 1 {
		return &Renderer{}, nil
	}
	pool, err := ants.NewPool(n)
	if err != nil {
		return nil, err
	}
	return &Renderer{pool: pool}, nil
}

// Close releases the worker pool.  A closed renderer must not render.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Render converts every column named in p and returns a table with
// those columns replaced.  The input table is not modified.  Columns
// that already hold dates pass through untouched, so rendering is
// idempotent.
func (r *Renderer) Render(ctx context.Context, tbl *table.Table, p Params) *Result {
	if len(p.Colnames) == 0 {
		return &Result{Table: tbl}
	}

	out := &table.Table{Cols: make([]*table.Column, len(tbl.Cols))}
	copy(out.Cols, tbl.Cols)

	for _, name := range p.Colnames {
		i, err := tbl.ColumnIndex(ctx, name)
		if err != nil {
			return failed(ctx, err)
		}
		opts, err := p.options(ctx, name)
		if err != nil {
			return failed(ctx, err)
		}
		col, err := textdate.ConvertColumn(ctx, out.Cols[i], opts, r.pool)
		if err != nil {
			return failed(ctx, err)
		}
		if err := out.SetColumn(ctx, i, col); err != nil {
			return failed(ctx, err)
		}
		logutil.Debug("rendered column",
			zap.String("column", name),
			zap.String("unit", p.Unit),
			zap.Int("rows", col.Length()))
	}
	return &Result{Table: out}
}

func failed(ctx context.Context, err error) *Result {
	me, ok := err.(*dcerr.Error)
	if !ok {
		me = dcerr.NewInternalError(ctx, "%s", err)
	}
	logutil.Warn("render failed",
		zap.Uint16("code", me.ErrorCode()),
		zap.String("column", me.Column()),
		zap.Error(me))
	return &Result{Table: table.NewEmpty(), Errors: []*dcerr.Error{me}}
}
