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

// Package dcerr defines the structured errors surfaced by the conversion
// engine.  Every error carries a stable numeric code plus enough context
// (column name, offending literal) for a host to render a precise message.
package dcerr

import (
	"context"
	"fmt"
)

const (
	// Ok is not an error.
	Ok uint16 = 0

	// Group 1: internal errors
	ErrStart    uint16 = 20100
	ErrInternal uint16 = 20101
	ErrNYI      uint16 = 20102

	// Group 2: conversion errors
	ErrFormatMismatch uint16 = 20200
	ErrInvalidMonth   uint16 = 20201
	ErrInvalidDate    uint16 = 20202
	ErrDateOverflow   uint16 = 20203

	// Group 3: invalid input
	ErrBadConfig    uint16 = 20300
	ErrInvalidInput uint16 = 20301
	ErrInvalidArg   uint16 = 20302

	// Group 4: table errors
	ErrNoSuchColumn         uint16 = 20400
	ErrDupColumnName        uint16 = 20401
	ErrColumnLengthMismatch uint16 = 20402
	ErrTypeMismatch         uint16 = 20403

	// Group End: max value of error code
	ErrEnd uint16 = 65535
)

var errorMsgRefer = map[uint16]string{
	ErrInternal: "internal error: %s",
	ErrNYI:      "%s is not yet implemented",

	ErrFormatMismatch: "invalid date value in column %s: got %s, expected %s",
	ErrInvalidMonth:   "invalid month in column %s, value %s: month must be between 1 and 12",
	ErrInvalidDate:    "invalid date in column %s, value %s: not a valid calendar date",
	ErrDateOverflow:   "year out of range in column %s, value %s: supported years are %d to %d",

	ErrBadConfig:    "invalid configuration: %s",
	ErrInvalidInput: "invalid input: %s",
	ErrInvalidArg:   "invalid argument %s, bad value %v",

	ErrNoSuchColumn:         "no such column %s",
	ErrDupColumnName:        "duplicate column name %s",
	ErrColumnLengthMismatch: "column %s has length %d, expected %d",
	ErrTypeMismatch:         "column %s is of type %s, expected %s",

	ErrEnd: "internal error: end of error code",
}

// Error is the only error type produced by this module.  The column and
// value fields are set for conversion errors so the boundary can build a
// localized message without parsing the English text.
type Error struct {
	code    uint16
	message string
	column  string
	value   string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

// Column returns the name of the column the error occurred in, or "".
func (e *Error) Column() string {
	return e.column
}

// Value returns the offending literal value verbatim, or "".
func (e *Error) Value() string {
	return e.value
}

func (e *Error) Succeeded() bool {
	return e.code < ErrStart
}

// IsErrCode returns true if err is an *Error with the given code.
func IsErrCode(err error, code uint16) bool {
	if me, ok := err.(*Error); ok {
		return me.code == code
	}
	return false
}

func newError(_ context.Context, code uint16, args ...any) *Error {
	format, has := errorMsgRefer[code]
	if !has {
		panic(fmt.Sprintf("not exist error code: %d", code))
	}
	if len(args) == 0 {
		return &Error{code: code, message: format}
	}
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrInternal, fmt.Sprintf(msg, args...))
}

func NewNYI(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrNYI, fmt.Sprintf(msg, args...))
}

// NewFormatMismatch reports a text value that does not match the expected
// pattern at all.  expected is a human-readable pattern name, e.g. "YYYY-MM-DD".
func NewFormatMismatch(ctx context.Context, column, value, expected string) *Error {
	e := newError(ctx, ErrFormatMismatch, column, quote(value), expected)
	e.column, e.value = column, value
	return e
}

// NewInvalidMonth reports a month outside [1,12].  Only the fixed ISO-8601
// matching mode distinguishes this from ErrInvalidDate.
func NewInvalidMonth(ctx context.Context, column, value string) *Error {
	e := newError(ctx, ErrInvalidMonth, column, quote(value))
	e.column, e.value = column, value
	return e
}

// NewInvalidDate reports components that fail the round-trip validity law.
func NewInvalidDate(ctx context.Context, column, value string) *Error {
	e := newError(ctx, ErrInvalidDate, column, quote(value))
	e.column, e.value = column, value
	return e
}

// NewDateOverflow reports a year outside the supported range.  This error is
// always fatal, regardless of the error-means-null policy.
func NewDateOverflow(ctx context.Context, column, value string, minYear, maxYear int32) *Error {
	e := newError(ctx, ErrDateOverflow, column, quote(value), minYear, maxYear)
	e.column, e.value = column, value
	return e
}

func NewBadConfig(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrBadConfig, fmt.Sprintf(msg, args...))
}

func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	return newError(ctx, ErrInvalidInput, fmt.Sprintf(msg, args...))
}

func NewInvalidArg(ctx context.Context, arg string, val any) *Error {
	return newError(ctx, ErrInvalidArg, arg, val)
}

func NewNoSuchColumn(ctx context.Context, name string) *Error {
	e := newError(ctx, ErrNoSuchColumn, name)
	e.column = name
	return e
}

func NewDupColumnName(ctx context.Context, name string) *Error {
	e := newError(ctx, ErrDupColumnName, name)
	e.column = name
	return e
}

func NewColumnLengthMismatch(ctx context.Context, name string, got, want int) *Error {
	e := newError(ctx, ErrColumnLengthMismatch, name, got, want)
	e.column = name
	return e
}

func NewTypeMismatch(ctx context.Context, name, got, want string) *Error {
	e := newError(ctx, ErrTypeMismatch, name, got, want)
	e.column = name
	return e
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
