// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the gpgkeys command line using Cobra. Commands stay
// thin: they load configuration, obtain listing text and hand it to the
// gpgkey parser and the render package.
package cli
