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

package datefmt

import (
	"context"
	"testing"

	"github.com/colforge/datecast/pkg/container/nulls"
	"github.com/stretchr/testify/require"
)

type triple struct {
	y int32
	m uint8
	d uint8
}

func extractOne(t *testing.T, f Format, search bool, s string) (triple, bool) {
	t.Helper()
	years := make([]int32, 1)
	months := make([]uint8, 1)
	days := make([]uint8, 1)
	misses := nulls.New()
	Extract(f, search, []string{s}, nulls.New(), years, months, days, misses)
	if nulls.Any(misses) {
		return triple{}, false
	}
	return triple{years[0], months[0], days[0]}, true
}

func TestFormats(t *testing.T) {
	cases := []struct {
		f    Format
		in   string
		want triple
	}{
		{FormatYMDDash, "2021-04-28", triple{2021, 4, 28}},
		{FormatYMDCompact, "20210428", triple{2021, 4, 28}},
		{FormatMDYSlash, "4/28/2021", triple{2021, 4, 28}},
		{FormatMDYSlash, "04/28/2021", triple{2021, 4, 28}},
		{FormatDMYSlash, "28/4/2021", triple{2021, 4, 28}},
		{FormatMDYSlash2, "1/2/3", triple{2003, 1, 2}},
		{FormatMDYSlash2, "1/2/80", triple{1980, 1, 2}},
		{FormatDMYSlash2, "1/2/3", triple{2003, 2, 1}},
		{FormatDMYSlash2, "1/2/69", triple{2069, 2, 1}},
		{FormatDMYSlash2, "1/2/70", triple{1970, 2, 1}},
		{FormatISO8601, "2021-04-28", triple{2021, 4, 28}},
		{FormatISO8601, "20210428", triple{2021, 4, 28}},
		// raw components are extracted unvalidated
		{FormatYMDDash, "2021-14-28", triple{2021, 14, 28}},
		{FormatYMDDash, "2021-02-29", triple{2021, 2, 29}},
	}
	for _, c := range cases {
		got, ok := extractOne(t, c.f, false, c.in)
		require.True(t, ok, "%s %q", c.f, c.in)
		require.Equal(t, c.want, got, "%s %q", c.f, c.in)
	}
}

func TestMismatches(t *testing.T) {
	cases := []struct {
		f  Format
		in string
	}{
		{FormatYMDDash, "2021-04-28 "},
		{FormatYMDDash, " 2021-04-28"},
		{FormatYMDDash, "20210428"},
		{FormatYMDCompact, "2021-04-28"},
		{FormatYMDCompact, "202104280"},
		{FormatMDYSlash, "4/28/21"},
		{FormatMDYSlash2, "4/28/2021"},
		{FormatISO8601, "2021-4-28"},
		{FormatISO8601, "April 28, 2021"},
		{FormatYMDDash, ""},
	}
	for _, c := range cases {
		_, ok := extractOne(t, c.f, false, c.in)
		require.False(t, ok, "%s %q", c.f, c.in)
	}
}

func TestSearchInText(t *testing.T) {
	got, ok := extractOne(t, FormatYMDDash, true, "updated 2021-04-28 by admin")
	require.True(t, ok)
	require.Equal(t, triple{2021, 4, 28}, got)

	// anchored mode rejects the same value
	_, ok = extractOne(t, FormatYMDDash, false, "updated 2021-04-28 by admin")
	require.False(t, ok)

	// first occurrence wins
	got, ok = extractOne(t, FormatISO8601, true, "2001-01-01 then 2002-02-02")
	require.True(t, ok)
	require.Equal(t, triple{2001, 1, 1}, got)
}

func TestExtractSkipsNulls(t *testing.T) {
	years := make([]int32, 3)
	months := make([]uint8, 3)
	days := make([]uint8, 3)
	misses := nulls.New()
	xs := []string{"2021-04-28", "garbage", "nonsense"}
	Extract(FormatYMDDash, false, xs, nulls.Build(2), years, months, days, misses)
	// position 1 failed to match; position 2 was null and is never a miss
	require.Equal(t, []uint64{1}, nulls.Rows(misses))
	require.Equal(t, int32(2021), years[0])
}

func TestFormatFromString(t *testing.T) {
	ctx := context.Background()
	for _, name := range []string{"YYYY-MM-DD", "YYYYMMDD", "M/D/YYYY", "D/M/YYYY", "M/D/YY", "D/M/YY"} {
		f, err := FormatFromString(ctx, name)
		require.NoError(t, err)
		require.Equal(t, name, f.String())
	}
	_, err := FormatFromString(ctx, "MM-DD-YYYY")
	require.Error(t, err)
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "YYYY-MM-DD", FormatISO8601.Describe())
	require.Equal(t, "M/D/YY", FormatMDYSlash2.Describe())
}
