// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

package gpgkey

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is matched (via errors.Is) by every ParseError of kind
// KindMalformedInput.
var ErrMalformedInput = errors.New("malformed key listing")

// ErrorKind discriminates parse failures.
type ErrorKind int

const (
	// KindMalformedInput means there were no usable lines or the fingerprint
	// token is missing.
	KindMalformedInput ErrorKind = iota + 1
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedInput:
		return "MalformedInput"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError reports which parsing stage rejected the input.
type ParseError struct {
	Kind  ErrorKind
	Stage string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrMalformedInput.Error(), e.Stage, e.Msg)
}

// Is lets errors.Is(err, ErrMalformedInput) succeed for malformed input.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedInput && e.Kind == KindMalformedInput
}

func malformed(stage, format string, v ...any) error {
	return &ParseError{Kind: KindMalformedInput, Stage: stage, Msg: fmt.Sprintf(format, v...)}
}
