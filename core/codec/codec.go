// Package codec encodes chart documents under one of two fixed profiles.
//
// Both profiles share every encoding rule (enum names, three-digit floats,
// sentinel suppression); they differ only in whitespace. Field-level rules
// live on the model types themselves, so any value from package model can be
// passed to Encode and Decode.
package codec

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Profile is an immutable encoding configuration. The zero value is not
// usable; use Indented or Condensed.
type Profile struct {
	name   string
	indent string
}

var (
	// Indented is the pretty-printed profile used for hand editing.
	Indented = Profile{name: "indented", indent: "  "}
	// Condensed has no extraneous whitespace and is used for distribution.
	Condensed = Profile{name: "condensed"}
)

// Name returns "indented" or "condensed".
func (p Profile) Name() string {
	return p.name
}

func (p Profile) String() string {
	return p.name
}

// ProfileByName looks a profile up by its name, case-insensitively.
func ProfileByName(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Indented.name:
		return Indented, nil
	case Condensed.name:
		return Condensed, nil
	default:
		return Profile{}, fmt.Errorf("unknown codec profile %q", name)
	}
}

// Encode serializes v.
func (p Profile) Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	if p.indent == "" {
		return raw, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", p.indent); err != nil {
		return nil, fmt.Errorf("indent %T: %w", v, err)
	}
	return buf.Bytes(), nil
}

// Decode parses data into v. Unknown fields are ignored; unknown enum names
// fail. Model documents are left untouched when decoding fails.
func (p Profile) Decode(data []byte, v any) error {
	return decode(data, v)
}

// Encode serializes v with the Condensed profile.
func Encode(v any) ([]byte, error) {
	return Condensed.Encode(v)
}

// Decode parses a document written under either profile.
func Decode(data []byte, v any) error {
	return decode(data, v)
}

// DecodeAs parses data into a new T.
func DecodeAs[T any](data []byte) (*T, error) {
	out := new(T)
	if err := decode(data, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reencode decodes data as T and writes it back under p.
func Reencode[T any](data []byte, p Profile) ([]byte, error) {
	v, err := DecodeAs[T](data)
	if err != nil {
		return nil, err
	}
	return p.Encode(v)
}

func decode(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("decode %T: empty document", v)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}
