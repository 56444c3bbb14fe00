// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package errs classifies the failures of a deflection run
package errs

import (
	"errors"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Kind is a coarse category of failure
type Kind int

// kinds of failure
const (
	InvalidParameter Kind = iota + 1 // non-physical material constants
	Geometry                         // boundary not closed or malformed labels
	MeshGeneration                   // mesh generator could not triangulate
	SingularSystem                   // reduced stiffness not positive definite
	EmptySelection                   // post-processing selection matched nothing
	Config                           // problem file cannot be read or decoded
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "invalid parameter"
	case Geometry:
		return "geometry error"
	case MeshGeneration:
		return "mesh generation error"
	case SingularSystem:
		return "singular system"
	case EmptySelection:
		return "empty selection"
	case Config:
		return "invalid config"
	}
	return io.Sf("kind(%d)", int(k))
}

// Error wraps an underlying error with the operation and the kind of failure
type Error struct {
	Kind Kind   // category
	Op   string // operation; e.g. "msolid.Init"
	Err  error  // cause
}

// Error returns the message
func (o *Error) Error() string {
	if o == nil {
		return "<nil>"
	}
	l := io.Sf("%s: %v", o.Op, o.Kind)
	if o.Err != nil {
		l += io.Sf(": %v", o.Err)
	}
	return l
}

// Unwrap returns the cause
func (o *Error) Unwrap() error {
	if o == nil {
		return nil
	}
	return o.Err
}

// New returns a classified error with a formatted message
func New(kind Kind, op, msg string, prm ...interface{}) error {
	return &Error{Kind: kind, Op: op, Err: chk.Err(msg, prm...)}
}

// Wrap classifies err. Errors that already carry a kind are returned unchanged
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is tells whether err (or any error it wraps) has the given kind
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of err or zero if err is not classified
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
