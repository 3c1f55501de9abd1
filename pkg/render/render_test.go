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

package render

import (
	"context"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"github.com/colforge/datecast/pkg/common/dcerr"
	"github.com/colforge/datecast/pkg/config"
	"github.com/colforge/datecast/pkg/container/table"
	"github.com/colforge/datecast/pkg/container/types"
	"github.com/colforge/datecast/pkg/container/vector"
	"github.com/colforge/datecast/pkg/testutil"
)

func newTestRenderer(t *testing.T, parallelism int64) *Renderer {
	r, err := NewRenderer(&config.EngineParameters{Parallelism: parallelism})
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func dayParams(colnames ...string) Params {
	return Params{Colnames: colnames, Format: "YYYY-MM-DD", Unit: "day"}
}

// rows flattens a rendered column into printable date strings, "null"
// for nulls.
func rows(col *table.Column) []string {
	out := make([]string, 0, col.Length())
	for _, vec := range col.Chunks {
		for i := 0; i < vec.Length(); i++ {
			if vec.IsNull(uint64(i)) {
				out = append(out, "null")
			} else {
				out = append(out, vec.GetDate(uint64(i)).String())
			}
		}
	}
	return out
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	r := newTestRenderer(t, 1)

	convey.Convey("Test01 render with no columns is a no-op", t, func() {
		tbl := testutil.Table(testutil.Column("A", testutil.StrVector([]string{"whatever"})))
		res := r.Render(ctx, tbl, dayParams())
		convey.So(res.Errors, convey.ShouldBeEmpty)
		convey.So(res.Table, convey.ShouldEqual, tbl)
	})

	convey.Convey("Test02 render date column keeps its unit", t, func() {
		col := testutil.Column("A", testutil.DateVector(types.UnitWeek, testutil.Dates([3]int{2021, 4, 26})))
		res := r.Render(ctx, testutil.Table(col), dayParams("A"))
		convey.So(res.Errors, convey.ShouldBeEmpty)
		convey.So(res.Table.Cols[0], convey.ShouldEqual, col)
		convey.So(res.Table.Cols[0].Type().Unit, convey.ShouldEqual, types.UnitWeek)
	})

	convey.Convey("Test03 render each format", t, func() {
		cases := []struct {
			format string
			vals   []string
			expect []string
		}{
			{"YYYY-MM-DD", []string{"2021-04-28"}, []string{"2021-04-28"}},
			{"YYYYMMDD", []string{"20210428"}, []string{"2021-04-28"}},
			{"M/D/YYYY", []string{"4/28/2021"}, []string{"2021-04-28"}},
			{"D/M/YYYY", []string{"28/4/2021"}, []string{"2021-04-28"}},
			{"M/D/YY", []string{"1/2/3", "1/2/80"}, []string{"2003-01-02", "1980-01-02"}},
			{"D/M/YY", []string{"1/2/3", "1/2/70"}, []string{"2003-02-01", "1970-02-01"}},
		}
		for _, c := range cases {
			tbl := testutil.Table(testutil.Column("A", testutil.StrVector(c.vals)))
			res := r.Render(ctx, tbl, Params{Colnames: []string{"A"}, Format: c.format, Unit: "day"})
			convey.So(res.Errors, convey.ShouldBeEmpty)
			convey.So(rows(res.Table.Cols[0]), convey.ShouldResemble, c.expect)
			convey.So(res.Table.Cols[0].Type().Oid, convey.ShouldEqual, types.T_date)
		}
	})

	convey.Convey("Test04 render each unit", t, func() {
		cases := []struct {
			unit   string
			expect string
		}{
			{"day", "2021-04-28"},
			{"week", "2021-04-26"},
			{"month", "2021-04-01"},
			{"quarter", "2021-04-01"},
			{"year", "2021-01-01"},
		}
		for _, c := range cases {
			tbl := testutil.Table(testutil.Column("A", testutil.StrVector([]string{"2021-04-28"})))
			res := r.Render(ctx, tbl, Params{Colnames: []string{"A"}, Format: "YYYY-MM-DD", Unit: c.unit})
			convey.So(res.Errors, convey.ShouldBeEmpty)
			convey.So(rows(res.Table.Cols[0]), convey.ShouldResemble, []string{c.expect})
		}
	})

	convey.Convey("Test05 render failure empties the table", t, func() {
		tbl := testutil.Table(
			testutil.Column("A", testutil.StrVector([]string{"2021-04-28 "})),
			testutil.Column("B", testutil.StrVector([]string{"2021-04-28"})),
		)
		res := r.Render(ctx, tbl, dayParams("B", "A"))
		convey.So(res.Table.NumCols(), convey.ShouldEqual, 0)
		convey.So(len(res.Errors), convey.ShouldEqual, 1)
		convey.So(res.Errors[0].ErrorCode(), convey.ShouldEqual, dcerr.ErrFormatMismatch)
		convey.So(res.Errors[0].Column(), convey.ShouldEqual, "A")
		convey.So(res.Errors[0].Value(), convey.ShouldEqual, "2021-04-28 ")
		// the input table is untouched
		convey.So(tbl.Cols[1].Type().Oid, convey.ShouldEqual, types.T_varchar)
	})

	convey.Convey("Test06 invalid date reports the value", t, func() {
		for _, bad := range []string{"2021-14-28", "2021-02-29"} {
			tbl := testutil.Table(testutil.Column("A", testutil.StrVector([]string{bad})))
			res := r.Render(ctx, tbl, dayParams("A"))
			convey.So(res.Table.NumCols(), convey.ShouldEqual, 0)
			convey.So(res.Errors[0].ErrorCode(), convey.ShouldEqual, dcerr.ErrInvalidDate)
			convey.So(res.Errors[0].Value(), convey.ShouldEqual, bad)
		}
	})

	convey.Convey("Test07 error means null absorbs failures", t, func() {
		tbl := testutil.Table(testutil.Column("A", testutil.StrVector([]string{"2021-02-29", "", "2021-02-28"}, 1)))
		p := dayParams("A")
		p.ErrorMeansNull = true
		res := r.Render(ctx, tbl, p)
		convey.So(res.Errors, convey.ShouldBeEmpty)
		convey.So(rows(res.Table.Cols[0]), convey.ShouldResemble, []string{"null", "null", "2021-02-28"})
	})

	convey.Convey("Test08 all-null text column converts", t, func() {
		tbl := testutil.Table(testutil.Column("A", testutil.StrVector([]string{""}, 0)))
		res := r.Render(ctx, tbl, dayParams("A"))
		convey.So(res.Errors, convey.ShouldBeEmpty)
		convey.So(res.Table.Cols[0].Type().Oid, convey.ShouldEqual, types.T_date)
		convey.So(rows(res.Table.Cols[0]), convey.ShouldResemble, []string{"null"})
	})

	convey.Convey("Test09 dictionary column converts to flat dates", t, func() {
		tbl := testutil.Table(testutil.Column("A", testutil.DictVector(
			[]string{"2021-04-26", "2021-05-02", "2021-05-03", "1966-03-07", "1966-03-13"},
			[]int32{0, 1, 2, 3, 4, 0}, 5)))
		p := dayParams("A")
		p.Unit = "week"
		res := r.Render(ctx, tbl, p)
		convey.So(res.Errors, convey.ShouldBeEmpty)
		convey.So(res.Table.Cols[0].Chunks[0].Class(), convey.ShouldEqual, vector.FLAT)
		convey.So(rows(res.Table.Cols[0]), convey.ShouldResemble, []string{
			"2021-04-26", "2021-04-26", "2021-05-03", "1966-03-07", "1966-03-07", "null",
		})
	})

	convey.Convey("Test10 unknown column name fails the render", t, func() {
		tbl := testutil.Table(testutil.Column("A", testutil.StrVector([]string{"2021-04-28"})))
		res := r.Render(ctx, tbl, dayParams("Missing"))
		convey.So(res.Table.NumCols(), convey.ShouldEqual, 0)
		convey.So(res.Errors[0].ErrorCode(), convey.ShouldEqual, dcerr.ErrNoSuchColumn)
	})

	convey.Convey("Test11 unknown format fails the render", t, func() {
		tbl := testutil.Table(testutil.Column("A", testutil.StrVector([]string{"2021-04-28"})))
		res := r.Render(ctx, tbl, Params{Colnames: []string{"A"}, Format: "MM.DD.YYYY", Unit: "day"})
		convey.So(res.Table.NumCols(), convey.ShouldEqual, 0)
		convey.So(res.Errors[0].ErrorCode(), convey.ShouldEqual, dcerr.ErrInvalidArg)
	})
}

func TestRenderParallel(t *testing.T) {
	ctx := context.Background()
	r := newTestRenderer(t, 4)

	vals := make([]string, 0, 300)
	expect := make([]string, 0, 300)
	for i := 0; i < 300; i++ {
		vals = append(vals, "2021-04-28")
		expect = append(expect, "2021-04-01")
	}
	col := testutil.Column("A",
		testutil.StrVector(vals[:100]),
		testutil.StrVector(vals[100:200]),
		testutil.StrVector(vals[200:]),
	)
	p := dayParams("A")
	p.Unit = "month"
	res := r.Render(ctx, testutil.Table(col), p)
	require.Empty(t, res.Errors)
	require.Equal(t, expect, rows(res.Table.Cols[0]))
}
