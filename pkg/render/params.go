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
	"encoding/json"
	"strings"

	"github.com/colforge/datecast/pkg/colexec/textdate"
	"github.com/colforge/datecast/pkg/common/dcerr"
	"github.com/colforge/datecast/pkg/container/types"
	"github.com/colforge/datecast/pkg/vectorize/datefmt"
)

// Params is the wire form of a render request.  Format and Unit are kept
// as strings here so stored requests stay readable; they are resolved to
// enums only when the request runs.
type Params struct {
	Colnames       []string `json:"colnames"`
	Format         string   `json:"format"`
	Unit           string   `json:"unit"`
	ErrorMeansNull bool     `json:"error_means_null"`
	SearchInText   bool     `json:"search_in_text"`
}

// MigrateParams upgrades a stored request to the current shape.  Two
// older generations exist: the first knew neither format nor
// search_in_text and always matched the whole value against ISO-8601;
// the second added search_in_text but still had no format field.
func MigrateParams(ctx context.Context, raw []byte) (Params, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Params{}, dcerr.NewInvalidInput(ctx, "malformed params: %s", err)
	}

	// the very first shape stored colnames as one comma-joined string
	if cn, has := fields["colnames"]; has {
		var joined string
		if err := json.Unmarshal(cn, &joined); err == nil {
			names, _ := json.Marshal(splitColnames(joined))
			fields["colnames"] = names
			raw, _ = json.Marshal(fields)
		}
	}

	var p Params
	if err := json.Unmarshal(raw, &p); err != nil {
		return Params{}, dcerr.NewInvalidInput(ctx, "malformed params: %s", err)
	}
	if _, has := fields["format"]; !has {
		p.Format = datefmt.FormatISO8601.String()
	}
	if _, has := fields["unit"]; !has {
		p.Unit = types.UnitDay.String()
	}
	return p, nil
}

func splitColnames(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, ",")
}

// options resolves the string fields against the format and unit tables.
func (p Params) options(ctx context.Context, column string) (textdate.Options, error) {
	format, err := datefmt.FormatFromString(ctx, p.Format)
	if err != nil {
		return textdate.Options{}, err
	}
	unit, err := types.UnitFromString(ctx, p.Unit)
	if err != nil {
		return textdate.Options{}, err
	}
	return textdate.Options{
		Column:         column,
		Format:         format,
		Unit:           unit,
		ErrorMeansNull: p.ErrorMeansNull,
		SearchInText:   p.SearchInText,
	}, nil
}
