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

package types

import "fmt"

// Date is a day count in the proleptic Gregorian calendar.
// Day 0 is 1970-01-01; negative values are days before the epoch.
type Date int32

const (
	// MinYear and MaxYear bound the years FromCalendar accepts without
	// overflowing the int32 day count.
	MinYear int32 = -99999
	MaxYear int32 = 99999

	// unixEpochDays is the day count of 1970-01-01 relative to
	// 0000-03-01, the start of the computational calendar.
	unixEpochDays = 719468

	daysPerEra = 146097 // days in a 400-year cycle
)

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// ValidYear reports whether year is within the supported range.
func ValidYear(year int32) bool {
	return year >= MinYear && year <= MaxYear
}

// FromCalendar converts a (year, month, day) triple into a Date.  It is
// total over its domain: out-of-calendar triples such as month 14 or
// February 30 still encode to some Date, whose Calendar() decodes to the
// normalized components.  Callers must check ValidYear first; no month
// or day range check is performed here.
func FromCalendar(year int32, month, day uint8) Date {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := floorMod(int64(month)+9, 12)
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return Date(era*daysPerEra + doe - unixEpochDays)
}

// Calendar is the inverse of FromCalendar.  The returned components are
// always a real calendar date: a valid month in [1,12] and a valid day
// for that month and year.
func (d Date) Calendar() (year int32, month, day uint8) {
	z := int64(d) + unixEpochDays
	era := floorDiv(z, daysPerEra)
	doe := z - era*daysPerEra
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day = uint8(doy - (153*mp+2)/5 + 1)
	if mp < 10 {
		month = uint8(mp + 3)
	} else {
		month = uint8(mp - 9)
	}
	if month <= 2 {
		y++
	}
	return int32(y), month, day
}

// ValidDate reports whether the triple is a real calendar date, by the
// round-trip law: encode, decode, compare component-wise.
func ValidDate(year int32, month, day uint8) bool {
	if !ValidYear(year) {
		return false
	}
	y, m, dd := FromCalendar(year, month, day).Calendar()
	return y == year && m == month && dd == day
}

func (d Date) Year() int32 {
	y, _, _ := d.Calendar()
	return y
}

func (d Date) Month() uint8 {
	_, m, _ := d.Calendar()
	return m
}

func (d Date) Day() uint8 {
	_, _, dd := d.Calendar()
	return dd
}

// WeekdayMonday returns the weekday of d with Monday = 0 ... Sunday = 6.
// Day 0 (1970-01-01) is a Thursday; floored arithmetic keeps the result
// in [0,6] for negative day counts.
func (d Date) WeekdayMonday() uint8 {
	return uint8(floorMod(int64(d)+3, 7))
}

func (d Date) String() string {
	y, m, dd := d.Calendar()
	if y < 0 {
		return fmt.Sprintf("-%04d-%02d-%02d", -y, m, dd)
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, dd)
}
