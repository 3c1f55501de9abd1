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

import (
	"context"
	"fmt"

	"github.com/colforge/datecast/pkg/common/dcerr"
)

type T uint8

const (
	T_any T = iota
	T_varchar
	T_date
)

// Type describes the element type of a vector.  Date vectors additionally
// carry the truncation Unit they were produced with, so that a consumer can
// distinguish a month-truncated date column from a day-precise one.
type Type struct {
	Oid  T
	Unit Unit
}

func New(oid T) Type {
	return Type{Oid: oid}
}

func NewDate(unit Unit) Type {
	return Type{Oid: T_date, Unit: unit}
}

func (t Type) String() string {
	if t.Oid == T_date {
		return fmt.Sprintf("DATE(%s)", t.Unit)
	}
	return t.Oid.String()
}

// TypeSize returns the byte width of a fixed-size element, 0 for varlen.
func (t Type) TypeSize() int {
	if t.Oid == T_date {
		return 4
	}
	return 0
}

func (t T) String() string {
	switch t {
	case T_varchar:
		return "VARCHAR"
	case T_date:
		return "DATE"
	}
	return "ANY"
}

// Unit is the truncation granularity of a date column.
type Unit uint8

const (
	UnitDay Unit = iota
	UnitWeek
	UnitMonth
	UnitQuarter
	UnitYear
)

var unitNames = [...]string{"day", "week", "month", "quarter", "year"}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("unit(%d)", uint8(u))
}

// UnitFromString parses the wire form of a Unit, e.g. "quarter".
func UnitFromString(ctx context.Context, s string) (Unit, error) {
	for i, name := range unitNames {
		if s == name {
			return Unit(i), nil
		}
	}
	return UnitDay, dcerr.NewInvalidArg(ctx, "unit", s)
}
