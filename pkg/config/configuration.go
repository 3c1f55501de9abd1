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

package config

import (
	"context"

	"github.com/BurntSushi/toml"

	"github.com/colforge/datecast/pkg/common/dcerr"
	"github.com/colforge/datecast/pkg/logutil"
)

// EngineParameters of the conversion engine
type EngineParameters struct {
	//default is the number of CPUs. 0 or 1 disables the worker pool.
	Parallelism int64 `toml:"parallelism"`

	//the count of rows per chunk when loading csv data
	BatchSizeInLoadData int64 `toml:"batchSizeInLoadData"`

	//distinct/total ratio below which a loaded column is dictionary encoded
	DictEncodeRatio float64 `toml:"dictEncodeRatio"`

	//columns shorter than this are never dictionary encoded
	DictEncodeMinRows int64 `toml:"dictEncodeMinRows"`

	//default is 'info'. the level of log.
	LogLevel string `toml:"logLevel"`

	//default is 'console'. the format of log.
	LogFormat string `toml:"logFormat"`

	//default is ''. the file
	LogFilename string `toml:"logFilename"`

	//default is 512MB. the maximum of log file size
	LogMaxSize int64 `toml:"logMaxSize"`

	//default is 0. the maximum days of log file to be kept
	LogMaxDays int64 `toml:"logMaxDays"`

	//default is 0. the maximum numbers of log file to be retained
	LogMaxBackups int64 `toml:"logMaxBackups"`
}

// SetDefaultValues fills the zero fields.
func (ep *EngineParameters) SetDefaultValues() {
	if ep.BatchSizeInLoadData == 0 {
		ep.BatchSizeInLoadData = 40000
	}
	if ep.DictEncodeRatio == 0 {
		ep.DictEncodeRatio = 0.5
	}
	if ep.DictEncodeMinRows == 0 {
		ep.DictEncodeMinRows = 64
	}
	if ep.LogLevel == "" {
		ep.LogLevel = "info"
	}
	if ep.LogFormat == "" {
		ep.LogFormat = "console"
	}
	if ep.LogMaxSize == 0 {
		ep.LogMaxSize = 512
	}
}

// MakeLogConfig exports the log fields in the shape logutil.Setup wants.
func (ep *EngineParameters) MakeLogConfig() *logutil.LogConfig {
	return &logutil.LogConfig{
		Level:      ep.LogLevel,
		Format:     ep.LogFormat,
		Filename:   ep.LogFilename,
		MaxSize:    int(ep.LogMaxSize),
		MaxDays:    int(ep.LogMaxDays),
		MaxBackups: int(ep.LogMaxBackups),
	}
}

// LoadEngineParameters reads configFile, applies defaults, and rejects
// values no component can run with.
func LoadEngineParameters(ctx context.Context, configFile string) (*EngineParameters, error) {
	ep := &EngineParameters{}
	if configFile != "" {
		if _, err := toml.DecodeFile(configFile, ep); err != nil {
			return nil, dcerr.NewBadConfig(ctx, "%s", err)
		}
	}
	ep.SetDefaultValues()
	if ep.Parallelism < 0 {
		return nil, dcerr.NewBadConfig(ctx, "parallelism must not be negative")
	}
	if ep.BatchSizeInLoadData < 1 {
		return nil, dcerr.NewBadConfig(ctx, "batchSizeInLoadData must be positive")
	}
	if ep.DictEncodeRatio < 0 || ep.DictEncodeRatio > 1 {
		return nil, dcerr.NewBadConfig(ctx, "dictEncodeRatio must be within [0, 1]")
	}
	return ep, nil
}
