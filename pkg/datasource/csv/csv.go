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

// Package csv loads delimited text files into tables.  The first row
// names the columns; every loaded column is text.  Low-cardinality
// columns come back dictionary encoded so the conversion kernels touch
// each distinct value once.
package csv

import (
	"compress/bzip2"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"io"
	"os"
	"strings"

	hll "github.com/axiomhq/hyperloglog"
	"github.com/matrixorigin/simdcsv"
	"github.com/pierrec/lz4"
	"go.uber.org/zap"

	"github.com/colforge/datecast/pkg/common/dcerr"
	"github.com/colforge/datecast/pkg/config"
	"github.com/colforge/datecast/pkg/container/nulls"
	"github.com/colforge/datecast/pkg/container/table"
	"github.com/colforge/datecast/pkg/container/types"
	"github.com/colforge/datecast/pkg/container/vector"
	"github.com/colforge/datecast/pkg/logutil"
)

const (
	FieldTerminator = ','
	CommentChar     = '#'
)

// Compression identifiers accepted by LoadFile.  AUTO sniffs from the
// file extension.
const (
	AUTO       = "auto"
	NOCOMPRESS = "none"
	GZIP       = "gzip"
	GZ         = "gz"
	BZIP2      = "bzip2"
	BZ2        = "bz2"
	FLATE      = "flate"
	ZLIB       = "zlib"
	LZ4        = "lz4"
)

// GetCompressType resolves AUTO against the file extension.
func GetCompressType(compressType string, filepath string) string {
	if compressType != "" && compressType != AUTO {
		return compressType
	}

	filepath = strings.ToLower(filepath)

	switch {
	case strings.HasSuffix(filepath, ".gz") || strings.HasSuffix(filepath, ".gzip"):
		return GZIP
	case strings.HasSuffix(filepath, ".bz2") || strings.HasSuffix(filepath, ".bzip2"):
		return BZIP2
	case strings.HasSuffix(filepath, ".lz4"):
		return LZ4
	default:
		return NOCOMPRESS
	}
}

func getUnCompressReader(ctx context.Context, compType string, filepath string, r io.ReadCloser) (io.ReadCloser, error) {
	switch strings.ToLower(GetCompressType(compType, filepath)) {
	case NOCOMPRESS:
		return r, nil
	case GZIP, GZ:
		return gzip.NewReader(r)
	case BZIP2, BZ2:
		return io.NopCloser(bzip2.NewReader(r)), nil
	case FLATE:
		return flate.NewReader(r), nil
	case ZLIB:
		return zlib.NewReader(r)
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, dcerr.NewInvalidInput(ctx, "the compress type '%s' is not support now", compType)
	}
}

// Load reads the whole stream into a table of text columns, one chunk
// per BatchSizeInLoadData rows.  Empty fields load as null.
func Load(ctx context.Context, raw io.Reader, ep *config.EngineParameters) (*table.Table, error) {
	batchRows := int(ep.BatchSizeInLoadData)
	reader := simdcsv.NewReaderWithOptions(raw, FieldTerminator, CommentChar, true, true)

	var attrs []string
	var chunks [][]*vector.Vector
	sketches := []*hll.Sketch{}
	content := make([][]string, batchRows)

	rows := 0
	for {
		records, cnt, err := reader.Read(batchRows, ctx, content)
		if err != nil {
			return nil, dcerr.NewInvalidInput(ctx, "malformed csv: %s", err)
		}
		content = records
		if cnt == 0 {
			break
		}
		batch := records[:cnt]
		if attrs == nil {
			attrs = append(attrs, batch[0]...)
			chunks = make([][]*vector.Vector, len(attrs))
			for range attrs {
				sketches = append(sketches, hll.New())
			}
			batch = batch[1:]
		}
		if len(batch) > 0 {
			if err := appendBatch(ctx, attrs, chunks, sketches, batch, rows); err != nil {
				return nil, err
			}
			rows += len(batch)
		}
		if cnt < batchRows {
			break
		}
	}
	if attrs == nil {
		return table.NewEmpty(), nil
	}

	cols := make([]*table.Column, len(attrs))
	for j, name := range attrs {
		vecs := chunks[j]
		if shouldDictEncode(ep, rows, sketches[j]) {
			vecs = dictEncode(vecs)
			logutil.Debug("dictionary encoded column",
				zap.String("column", name),
				zap.Uint64("distinct", sketches[j].Estimate()),
				zap.Int("rows", rows))
		}
		col, err := table.NewColumnWithChunks(ctx, name, types.New(types.T_varchar), vecs...)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	return table.New(ctx, cols...)
}

// LoadFile opens, optionally decompresses, and loads path.
// compressType AUTO resolves from the extension.
func LoadFile(ctx context.Context, path string, compressType string, ep *config.EngineParameters) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dcerr.NewInvalidInput(ctx, "open %s: %s", path, err)
	}
	defer f.Close()

	r, err := getUnCompressReader(ctx, compressType, path, f)
	if err != nil {
		return nil, err
	}
	if r != f {
		defer r.Close()
	}
	return Load(ctx, r, ep)
}

func appendBatch(ctx context.Context, attrs []string, chunks [][]*vector.Vector,
	sketches []*hll.Sketch, batch [][]string, startRow int) error {
	n := len(batch)
	for j := range attrs {
		vals := make([]string, n)
		nsp := nulls.New()
		for i, record := range batch {
			if len(record) != len(attrs) {
				return dcerr.NewInvalidInput(ctx,
					"row %d has %d fields, expected %d", startRow+i+1, len(record), len(attrs))
			}
			if record[j] == "" {
				nulls.Add(nsp, uint64(i))
				continue
			}
			vals[i] = record[j]
			sketches[j].Insert([]byte(record[j]))
		}
		chunks[j] = append(chunks[j], vector.NewWithStrings(types.New(types.T_varchar), vals, nsp))
	}
	return nil
}

func shouldDictEncode(ep *config.EngineParameters, rows int, sk *hll.Sketch) bool {
	if rows < int(ep.DictEncodeMinRows) {
		return false
	}
	return float64(sk.Estimate()) <= ep.DictEncodeRatio*float64(rows)
}

// dictEncode rewrites the chunks of one column around a shared
// dictionary of its distinct values, in first-appearance order.
func dictEncode(vecs []*vector.Vector) []*vector.Vector {
	var dictVals []string
	codes := make(map[string]int32)

	allIndices := make([][]int32, len(vecs))
	for ci, vec := range vecs {
		n := vec.Length()
		indices := make([]int32, n)
		for i := 0; i < n; i++ {
			if vec.IsNull(uint64(i)) {
				continue
			}
			s := vec.GetStr(uint64(i))
			code, has := codes[s]
			if !has {
				code = int32(len(dictVals))
				codes[s] = code
				dictVals = append(dictVals, s)
			}
			indices[i] = code
		}
		allIndices[ci] = indices
	}

	dict := vector.NewWithStrings(types.New(types.T_varchar), dictVals, nulls.New())
	out := make([]*vector.Vector, len(vecs))
	for ci, vec := range vecs {
		out[ci] = vector.NewDict(types.New(types.T_varchar), dict, allIndices[ci], vec.Nsp.Clone())
	}
	return out
}
