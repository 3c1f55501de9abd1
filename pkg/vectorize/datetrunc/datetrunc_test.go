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

package datetrunc

import (
	"testing"

	"github.com/colforge/datecast/pkg/container/types"
	"github.com/stretchr/testify/require"
)

func d(year int32, month, day uint8) types.Date {
	return types.FromCalendar(year, month, day)
}

func runOne(unit types.Unit, x types.Date) types.Date {
	rs := make([]types.Date, 1)
	Trunc(unit)([]types.Date{x}, rs)
	return rs[0]
}

func TestTruncDay(t *testing.T) {
	require.Equal(t, d(2021, 4, 28), runOne(types.UnitDay, d(2021, 4, 28)))
}

func TestTruncWeek(t *testing.T) {
	cases := []struct{ in, want types.Date }{
		{d(2021, 4, 26), d(2021, 4, 26)}, // Monday stays
		{d(2021, 4, 28), d(2021, 4, 26)}, // Wednesday
		{d(2021, 5, 2), d(2021, 4, 26)},  // Sunday backs up six days
		{d(2021, 5, 3), d(2021, 5, 3)},   // next Monday
		{d(1966, 3, 7), d(1966, 3, 7)},   // pre-epoch Monday
		{d(1966, 3, 13), d(1966, 3, 7)},  // pre-epoch Sunday
		{d(1970, 1, 1), d(1969, 12, 29)}, // epoch Thursday crosses year
	}
	for _, c := range cases {
		require.Equal(t, c.want, runOne(types.UnitWeek, c.in), "%s", c.in)
	}
}

func TestTruncMonth(t *testing.T) {
	require.Equal(t, d(2021, 4, 1), runOne(types.UnitMonth, d(2021, 4, 28)))
	require.Equal(t, d(2020, 2, 1), runOne(types.UnitMonth, d(2020, 2, 29)))
	require.Equal(t, d(1966, 3, 1), runOne(types.UnitMonth, d(1966, 3, 13)))
}

func TestTruncQuarter(t *testing.T) {
	cases := []struct {
		month uint8
		want  uint8
	}{
		{1, 1}, {2, 1}, {3, 1},
		{4, 4}, {5, 4}, {6, 4},
		{7, 7}, {8, 7}, {9, 7},
		{10, 10}, {11, 10}, {12, 10},
	}
	for _, c := range cases {
		require.Equal(t, d(2021, c.want, 1), runOne(types.UnitQuarter, d(2021, c.month, 15)), "month %d", c.month)
	}
}

func TestTruncYear(t *testing.T) {
	require.Equal(t, d(2021, 1, 1), runOne(types.UnitYear, d(2021, 12, 31)))
	require.Equal(t, d(1969, 1, 1), runOne(types.UnitYear, d(1969, 7, 20)))
}

func TestTruncBatch(t *testing.T) {
	xs := []types.Date{d(2021, 8, 15), d(2021, 2, 1), d(1966, 3, 13)}
	rs := make([]types.Date, len(xs))
	TruncQuarter(xs, rs)
	require.Equal(t, []types.Date{d(2021, 7, 1), d(2021, 1, 1), d(1966, 1, 1)}, rs)
}
