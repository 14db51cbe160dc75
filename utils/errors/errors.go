// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package errors is the standard library errors package plus wrapping which keeps the message of every
// layer. A wrapped error matches both its own message and its cause with [Is].
package errors

import (
	stderrors "errors" //nolint:depguard
	"fmt"
)

var (
	New  = stderrors.New
	Is   = stderrors.Is
	As   = stderrors.As
	Join = stderrors.Join
)

// Errorf is [fmt.Errorf], %w verbs wrap as usual.
func Errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Wrap annotates [err] with [context], nil stays nil so it can wrap a call's result directly:
//
//	return errors.Wrap(f.Close(), "while closing the profile")
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return &layered{context: New(context), cause: err}
}

// Wrapf is [Wrap] with a printf style context.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &layered{context: fmt.Errorf(format, args...), cause: err}
}

type layered struct {
	context error
	cause   error
}

const causedBy = " caused by: "

func (l *layered) Error() string {
	return l.context.Error() + causedBy + l.cause.Error()
}

// Format prints one layer per line for %+v.
func (l *layered) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%v\n\t%+v", l.context, l.cause)
		return
	}
	fmt.Fprint(s, l.Error())
}

func (l *layered) Unwrap() []error {
	return []error{l.context, l.cause}
}
