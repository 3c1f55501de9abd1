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

// Package datefmt maps format identifiers to text-extraction patterns and
// provides the batch kernel extracting raw (year, month, day) components
// from string vectors.  The pattern table is built once at startup and
// never mutated.
package datefmt

import (
	"context"
	"regexp"

	"github.com/colforge/datecast/pkg/common/dcerr"
	"github.com/colforge/datecast/pkg/container/nulls"
)

type Format uint8

const (
	// FormatISO8601 is the legacy fixed mode: YYYY-MM-DD or YYYYMMDD,
	// decided per value by a single alternation pattern.
	FormatISO8601 Format = iota
	FormatYMDDash
	FormatYMDCompact
	FormatMDYSlash
	FormatDMYSlash
	FormatMDYSlash2
	FormatDMYSlash2
)

// Extract runs the pattern of f over every non-null position of xs,
// writing raw components into years/months/days and recording every
// position that was non-null but failed to match in misses.  In search
// mode the pattern may match a substring; otherwise it must consume the
// whole string.
var Extract func(f Format, search bool, xs []string, ns *nulls.Nulls,
	years []int32, months, days []uint8, misses *nulls.Nulls)

type pattern struct {
	name     string
	anchored *regexp.Regexp
	search   *regexp.Regexp

	// submatch indices, -1 when the group is absent from the pattern
	yyyy, yy, mm, dd int

	// legacy ISO-8601 alternation groups
	dashY, dashM, dashD          int
	compactY, compactM, compactD int
}

var patterns [7]pattern

var formatExprs = [7]struct {
	name string
	expr string
}{
	FormatISO8601: {"ISO-8601",
		`(?:(?P<dash_year>\d{4})-(?P<dash_month>\d\d)-(?P<dash_day>\d\d))` +
			`|` +
			`(?:(?P<compact_year>\d{4})(?P<compact_month>\d\d)(?P<compact_day>\d\d))`},
	FormatYMDDash:    {"YYYY-MM-DD", `(?P<yyyy>\d{4})-(?P<mm>\d\d)-(?P<dd>\d\d)`},
	FormatYMDCompact: {"YYYYMMDD", `(?P<yyyy>\d{4})(?P<mm>\d\d)(?P<dd>\d\d)`},
	FormatMDYSlash:   {"M/D/YYYY", `(?P<mm>\d\d?)/(?P<dd>\d\d?)/(?P<yyyy>\d{4})`},
	FormatDMYSlash:   {"D/M/YYYY", `(?P<dd>\d\d?)/(?P<mm>\d\d?)/(?P<yyyy>\d{4})`},
	FormatMDYSlash2:  {"M/D/YY", `(?P<mm>\d\d?)/(?P<dd>\d\d?)/(?P<yy>\d\d?)`},
	FormatDMYSlash2:  {"D/M/YY", `(?P<dd>\d\d?)/(?P<mm>\d\d?)/(?P<yy>\d\d?)`},
}

func init() {
	Extract = extract
	for f, spec := range formatExprs {
		p := pattern{
			name:     spec.name,
			anchored: regexp.MustCompile(`\A(?:` + spec.expr + `)\z`),
			search:   regexp.MustCompile(spec.expr),
		}
		p.yyyy = p.anchored.SubexpIndex("yyyy")
		p.yy = p.anchored.SubexpIndex("yy")
		p.mm = p.anchored.SubexpIndex("mm")
		p.dd = p.anchored.SubexpIndex("dd")
		p.dashY = p.anchored.SubexpIndex("dash_year")
		p.dashM = p.anchored.SubexpIndex("dash_month")
		p.dashD = p.anchored.SubexpIndex("dash_day")
		p.compactY = p.anchored.SubexpIndex("compact_year")
		p.compactM = p.anchored.SubexpIndex("compact_month")
		p.compactD = p.anchored.SubexpIndex("compact_day")
		patterns[f] = p
	}
}

// FormatFromString parses the wire form of a Format, e.g. "M/D/YY".
// The legacy "ISO-8601" identifier is accepted for completeness, though
// hosts normally reach it only through params migration.
func FormatFromString(ctx context.Context, s string) (Format, error) {
	for f, spec := range formatExprs {
		if s == spec.name {
			return Format(f), nil
		}
	}
	return FormatISO8601, dcerr.NewInvalidArg(ctx, "format", s)
}

func (f Format) String() string {
	if int(f) < len(formatExprs) {
		return formatExprs[f].name
	}
	return "format(?)"
}

// Describe returns the pattern name used in error messages.  The legacy
// ISO mode reports "YYYY-MM-DD", matching the message of the original
// fixed-pattern implementation.
func (f Format) Describe() string {
	if f == FormatISO8601 {
		return "YYYY-MM-DD"
	}
	return f.String()
}

func extract(f Format, search bool, xs []string, ns *nulls.Nulls,
	years []int32, months, days []uint8, misses *nulls.Nulls) {
	p := &patterns[f]
	re := p.anchored
	if search {
		re = p.search
	}
	for i, s := range xs {
		if nulls.Contains(ns, uint64(i)) {
			continue
		}
		m := re.FindStringSubmatch(s)
		if m == nil {
			nulls.Add(misses, uint64(i))
			continue
		}
		years[i], months[i], days[i] = p.components(m)
	}
}

func (p *pattern) components(m []string) (int32, uint8, uint8) {
	if p.dashY >= 0 {
		// legacy alternation: exactly one arm matched
		if m[p.dashY] != "" {
			return int32(atoi(m[p.dashY])), uint8(atoi(m[p.dashM])), uint8(atoi(m[p.dashD]))
		}
		return int32(atoi(m[p.compactY])), uint8(atoi(m[p.compactM])), uint8(atoi(m[p.compactD]))
	}
	var year int
	if p.yyyy >= 0 {
		year = atoi(m[p.yyyy])
	} else {
		// two-digit year, pivot at 69/70
		year = atoi(m[p.yy])
		if year <= 69 {
			year += 2000
		} else {
			year += 1900
		}
	}
	return int32(year), uint8(atoi(m[p.mm])), uint8(atoi(m[p.dd]))
}

// atoi converts a digits-only submatch; patterns guarantee 1-4 digits.
func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
