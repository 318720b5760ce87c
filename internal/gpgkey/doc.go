// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

// Package gpgkey turns the console listing GnuPG prints for a key
// (`gpg --list-keys`) into an immutable KeyRecord.
//
// Parsing is best effort: only a missing fingerprint fails a parse. Dates or
// identity fields that cannot be read are reported as absent.
package gpgkey
