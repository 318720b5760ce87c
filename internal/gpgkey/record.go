// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

package gpgkey

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout used when records are rendered for humans.
const DateLayout = "2006-01-02"

// SubKey describes the subordinate key listed under a primary key.
type SubKey struct {
	ID string
	// Expiration is nil when the listing had no readable date.
	Expiration *time.Time
}

// KeyRecord is the read-only view of one key listing block. The zero value is
// not useful; records are produced by Parse.
type KeyRecord struct {
	fingerprint   string
	keyCreation   *time.Time
	keyExpiration *time.Time
	userID        string
	hasUserID     bool
	userName      string
	hasUserName   bool
	subKey        *SubKey
	raw           string
}

// Fingerprint returns the key identifier reported by GnuPG.
func (r KeyRecord) Fingerprint() string { return r.fingerprint }

// KeyCreation returns the creation date and whether it was present.
func (r KeyRecord) KeyCreation() (time.Time, bool) { return deref(r.keyCreation) }

// KeyExpiration returns the expiration date. ok is false for keys that do not
// expire or whose date could not be read.
func (r KeyRecord) KeyExpiration() (time.Time, bool) { return deref(r.keyExpiration) }

// UserID returns the e-mail style identifier from the uid line.
func (r KeyRecord) UserID() (string, bool) { return r.userID, r.hasUserID }

// UserName returns the display name from the uid line.
func (r KeyRecord) UserName() (string, bool) { return r.userName, r.hasUserName }

// SubKey returns the sub-key, if the listing contained one.
func (r KeyRecord) SubKey() (SubKey, bool) {
	if r.subKey == nil {
		return SubKey{}, false
	}
	sk := *r.subKey
	if sk.Expiration != nil {
		t := *sk.Expiration
		sk.Expiration = &t
	}
	return sk, true
}

// Raw returns the listing text exactly as it was handed to Parse.
func (r KeyRecord) Raw() string { return r.raw }

// Expired reports whether the primary key expiration lies before now.
func (r KeyRecord) Expired(now time.Time) bool {
	exp, ok := r.KeyExpiration()
	return ok && exp.Before(now)
}

func deref(t *time.Time) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}

// String renders every field for diagnostics. The layout is not meant to be
// parsed back.
func (r KeyRecord) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Key: %s\n", r.fingerprint)
	fmt.Fprintf(&b, "KeyCreation: %s\n", formatDate(r.keyCreation))
	fmt.Fprintf(&b, "KeyExpiration: %s\n", formatDate(r.keyExpiration))
	fmt.Fprintf(&b, "UserName: %s\n", formatOpt(r.userName, r.hasUserName))
	fmt.Fprintf(&b, "UserId: %s\n", formatOpt(r.userID, r.hasUserID))
	if r.subKey != nil {
		fmt.Fprintf(&b, "SubKey: %s\n", r.subKey.ID)
		fmt.Fprintf(&b, "SubKeyExpiration: %s\n", formatDate(r.subKey.Expiration))
	} else {
		b.WriteString("SubKey: -\nSubKeyExpiration: -\n")
	}
	fmt.Fprintf(&b, "Raw: %s\n", r.raw)
	return b.String()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(DateLayout)
}

func formatOpt(s string, ok bool) string {
	if !ok {
		return "-"
	}
	return s
}

// RecordView is the serializable form of a KeyRecord. Absent fields are nil.
type RecordView struct {
	Fingerprint      string  `json:"fingerprint" yaml:"fingerprint"`
	KeyCreation      *string `json:"key_creation,omitempty" yaml:"key_creation,omitempty"`
	KeyExpiration    *string `json:"key_expiration,omitempty" yaml:"key_expiration,omitempty"`
	UserName         *string `json:"user_name,omitempty" yaml:"user_name,omitempty"`
	UserID           *string `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	SubKey           *string `json:"sub_key,omitempty" yaml:"sub_key,omitempty"`
	SubKeyExpiration *string `json:"sub_key_expiration,omitempty" yaml:"sub_key_expiration,omitempty"`
	Raw              string  `json:"raw" yaml:"raw"`
}

// View copies the record into a RecordView.
func (r KeyRecord) View() RecordView {
	v := RecordView{
		Fingerprint:   r.fingerprint,
		KeyCreation:   viewDate(r.keyCreation),
		KeyExpiration: viewDate(r.keyExpiration),
		Raw:           r.raw,
	}
	if r.hasUserName {
		v.UserName = ptr(r.userName)
	}
	if r.hasUserID {
		v.UserID = ptr(r.userID)
	}
	if r.subKey != nil {
		v.SubKey = ptr(r.subKey.ID)
		v.SubKeyExpiration = viewDate(r.subKey.Expiration)
	}
	return v
}

func viewDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return ptr(t.Format(DateLayout))
}

func ptr[T any](v T) *T { return &v }
