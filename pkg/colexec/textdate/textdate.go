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

// Package textdate converts text vectors to date vectors: pattern
// extraction, round-trip validation, unit truncation and null/error
// policy, over flat, dictionary-encoded and chunked columns.
package textdate

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/colforge/datecast/pkg/common/dcerr"
	"github.com/colforge/datecast/pkg/container/nulls"
	"github.com/colforge/datecast/pkg/container/table"
	"github.com/colforge/datecast/pkg/container/types"
	"github.com/colforge/datecast/pkg/container/vector"
	"github.com/colforge/datecast/pkg/vectorize/datefmt"
	"github.com/colforge/datecast/pkg/vectorize/datetrunc"
)

// Options are fixed per column conversion.
type Options struct {
	// Column is the column name, carried into errors.
	Column string
	Format datefmt.Format
	Unit   types.Unit
	// ErrorMeansNull absorbs format mismatches and invalid dates into
	// null output positions instead of aborting the column.  Year
	// overflow is fatal regardless.
	ErrorMeansNull bool
	// SearchInText lets the pattern match a substring instead of the
	// whole value.
	SearchInText bool
}

// Convert converts one physical chunk.  Chunks that are already
// date-typed are returned unchanged.
func Convert(ctx context.Context, vec *vector.Vector, opts Options) (*vector.Vector, error) {
	if vec.GetType().Oid == types.T_date {
		return vec, nil
	}
	if vec.IsDict() {
		return convertDict(ctx, vec, opts)
	}
	return convertFlat(ctx, vec, opts)
}

// convertDict converts the distinct-value dictionary exactly once, then
// re-expands through the index array.  Positions whose dictionary entry
// was nulled out under the error policy become null themselves.
func convertDict(ctx context.Context, vec *vector.Vector, opts Options) (*vector.Vector, error) {
	dictOut, err := convertFlat(ctx, vec.Dict(), opts)
	if err != nil {
		return nil, err
	}
	n := vec.Length()
	indices := vec.Indices()
	dictDates := vector.MustDateCols(dictOut)
	dates := make([]types.Date, n)
	outNsp := vec.Nsp.Clone()
	for i := 0; i < n; i++ {
		if nulls.Contains(vec.Nsp, uint64(i)) {
			continue
		}
		j := indices[i]
		if nulls.Contains(dictOut.Nsp, uint64(j)) {
			nulls.Add(outNsp, uint64(i))
			continue
		}
		dates[i] = dictDates[j]
	}
	return vector.NewWithDates(types.NewDate(opts.Unit), dates, outNsp), nil
}

func convertFlat(ctx context.Context, vec *vector.Vector, opts Options) (*vector.Vector, error) {
	strs := vector.MustStrCols(vec)
	n := len(strs)
	years := make([]int32, n)
	months := make([]uint8, n)
	days := make([]uint8, n)

	// pass 1: pattern extraction
	misses := nulls.New()
	datefmt.Extract(opts.Format, opts.SearchInText, strs, vec.Nsp, years, months, days, misses)

	outNsp := vec.Nsp.Clone()
	if nulls.Any(misses) {
		if !opts.ErrorMeansNull {
			i := nulls.Min(misses)
			return nil, dcerr.NewFormatMismatch(ctx, opts.Column, strs[i], opts.Format.Describe())
		}
		nulls.Set(outNsp, misses)
	}

	// pass 2: round-trip validation and encoding
	legacy := opts.Format == datefmt.FormatISO8601
	dates := make([]types.Date, n)
	for i := 0; i < n; i++ {
		if nulls.Contains(outNsp, uint64(i)) {
			continue
		}
		y, m, d := years[i], months[i], days[i]
		if !types.ValidYear(y) {
			return nil, dcerr.NewDateOverflow(ctx, opts.Column, strs[i], types.MinYear, types.MaxYear)
		}
		if legacy && (m < 1 || m > 12) {
			if !opts.ErrorMeansNull {
				return nil, dcerr.NewInvalidMonth(ctx, opts.Column, strs[i])
			}
			nulls.Add(outNsp, uint64(i))
			continue
		}
		if !types.ValidDate(y, m, d) {
			if !opts.ErrorMeansNull {
				return nil, dcerr.NewInvalidDate(ctx, opts.Column, strs[i])
			}
			nulls.Add(outNsp, uint64(i))
			continue
		}
		dates[i] = types.FromCalendar(y, m, d)
	}

	// pass 3: unit truncation
	datetrunc.Trunc(opts.Unit)(dates, dates)

	return vector.NewWithDates(types.NewDate(opts.Unit), dates, outNsp), nil
}

// ConvertColumn converts every chunk of a column.  Already-date columns
// are returned unchanged.  When pool is non-nil, chunks are converted
// concurrently; results are assembled in chunk order and the error of
// the lowest-index failing chunk wins, so the outcome is identical to
// the sequential pass.
func ConvertColumn(ctx context.Context, col *table.Column, opts Options, pool *ants.Pool) (*table.Column, error) {
	if col.Type().Oid == types.T_date {
		return col, nil
	}
	out := make([]*vector.Vector, len(col.Chunks))
	if pool == nil || len(col.Chunks) < 2 {
		for i, vec := range col.Chunks {
			v, err := Convert(ctx, vec, opts)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
	} else {
		errs := make([]error, len(col.Chunks))
		var wg sync.WaitGroup
		for i, vec := range col.Chunks {
			i, vec := i, vec
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				out[i], errs[i] = Convert(ctx, vec, opts)
			}); err != nil {
				errs[i] = dcerr.NewInternalError(ctx, "submit chunk %d: %v", i, err)
				wg.Done()
			}
		}
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}
	newCol := table.NewColumn(col.Name, types.NewDate(opts.Unit))
	for _, vec := range out {
		if err := newCol.AppendChunk(ctx, vec); err != nil {
			return nil, err
		}
	}
	return newCol, nil
}
