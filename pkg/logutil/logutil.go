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

package logutil

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig drives Setup.  An empty Filename logs to stderr; otherwise
// output goes through a size-rotated file.
type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Filename   string `toml:"filename"`
	MaxSize    int    `toml:"max-size"`
	MaxDays    int    `toml:"max-days"`
	MaxBackups int    `toml:"max-backups"`
}

var globalLogger atomic.Value

// Setup builds the global logger from cfg.  It panics on a malformed
// config since nothing downstream can run without logging.
func Setup(cfg *LogConfig) *zap.Logger {
	core := zapcore.NewCore(cfg.getEncoder(), cfg.getSyncer(), cfg.getLevel())
	logger := zap.New(core, cfg.getOptions()...)
	globalLogger.Store(logger)
	return logger
}

// GetGlobalLogger returns the logger installed by Setup, falling back
// to a console logger at info level.
func GetGlobalLogger() *zap.Logger {
	if l, ok := globalLogger.Load().(*zap.Logger); ok {
		return l
	}
	return Setup(&LogConfig{Level: "info", Format: "console"})
}

func (cfg *LogConfig) getLevel() zap.AtomicLevel {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		panic(fmt.Sprintf("unsupported log level: %s", cfg.Level))
	}
	return level
}

func (cfg *LogConfig) getOptions() []zap.Option {
	return []zap.Option{zap.AddStacktrace(zapcore.FatalLevel), zap.AddCaller()}
}

func (cfg *LogConfig) getSyncer() zapcore.WriteSyncer {
	if cfg.Filename == "" {
		return getConsoleSyncer()
	}
	if stat, err := os.Stat(cfg.Filename); err == nil && stat.IsDir() {
		panic("log file can't be a directory")
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxDays,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	})
}

func (cfg *LogConfig) getEncoder() zapcore.Encoder {
	return getLoggerEncoder(cfg.Format)
}

func getConsoleSyncer() zapcore.WriteSyncer {
	return zapcore.AddSync(os.Stderr)
}

func getLoggerEncoder(format string) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "name",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000 -0700"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	switch format {
	case "json":
		return zapcore.NewJSONEncoder(encoderConfig)
	case "console", "":
		return zapcore.NewConsoleEncoder(encoderConfig)
	default:
		panic(fmt.Sprintf("unsupported log format: %s", format))
	}
}
