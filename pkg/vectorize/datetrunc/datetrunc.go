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

// Package datetrunc truncates dates to the first day of their enclosing
// day/week/month/quarter/year bucket.  Kernels are total over the Date
// domain, so they may safely run over value slots at null positions.
package datetrunc

import (
	"github.com/colforge/datecast/pkg/container/types"
)

var (
	TruncDay     func([]types.Date, []types.Date) []types.Date
	TruncWeek    func([]types.Date, []types.Date) []types.Date
	TruncMonth   func([]types.Date, []types.Date) []types.Date
	TruncQuarter func([]types.Date, []types.Date) []types.Date
	TruncYear    func([]types.Date, []types.Date) []types.Date
)

func init() {
	TruncDay = truncDay
	TruncWeek = truncWeek
	TruncMonth = truncMonth
	TruncQuarter = truncQuarter
	TruncYear = truncYear
}

// Trunc resolves the kernel for a unit once, outside the per-element loop.
func Trunc(unit types.Unit) func([]types.Date, []types.Date) []types.Date {
	switch unit {
	case types.UnitWeek:
		return TruncWeek
	case types.UnitMonth:
		return TruncMonth
	case types.UnitQuarter:
		return TruncQuarter
	case types.UnitYear:
		return TruncYear
	default:
		return TruncDay
	}
}

// quarterStart maps a month to the first month of its quarter.
var quarterStart = [13]uint8{0, 1, 1, 1, 4, 4, 4, 7, 7, 7, 10, 10, 10}

func truncDay(xs []types.Date, rs []types.Date) []types.Date {
	copy(rs, xs)
	return rs
}

func truncWeek(xs []types.Date, rs []types.Date) []types.Date {
	for i, x := range xs {
		// back up to the most recent Monday; WeekdayMonday is floored,
		// so pre-epoch dates land on the correct Monday too
		rs[i] = x - types.Date(x.WeekdayMonday())
	}
	return rs
}

func truncMonth(xs []types.Date, rs []types.Date) []types.Date {
	for i, x := range xs {
		y, m, _ := x.Calendar()
		rs[i] = types.FromCalendar(y, m, 1)
	}
	return rs
}

func truncQuarter(xs []types.Date, rs []types.Date) []types.Date {
	for i, x := range xs {
		y, m, _ := x.Calendar()
		rs[i] = types.FromCalendar(y, quarterStart[m], 1)
	}
	return rs
}

func truncYear(xs []types.Date, rs []types.Date) []types.Date {
	for i, x := range xs {
		y, _, _ := x.Calendar()
		rs[i] = types.FromCalendar(y, 1, 1)
	}
	return rs
}
