package model

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Unset is the sentinel for integer fields that carry no value.
// 0 is a real value for most of them (open string, first chord).
const Unset = -1

// ErrUnknownEnum is wrapped by every failure to decode an enum name.
var ErrUnknownEnum = errors.New("unknown enum name")

// FieldPolicy decides whether a field is written to a chart document.
type FieldPolicy int

const (
	// OmitIfSentinel drops an integer equal to Unset. Decoders restore Unset
	// when the field is missing.
	OmitIfSentinel FieldPolicy = iota
	// AlwaysEmit writes the field whatever its value, zero included.
	AlwaysEmit
	// OmitIfZero drops the zero value of the field's type.
	OmitIfZero
)

func (p FieldPolicy) String() string {
	switch p {
	case OmitIfSentinel:
		return "OmitIfSentinel"
	case AlwaysEmit:
		return "AlwaysEmit"
	case OmitIfZero:
		return "OmitIfZero"
	default:
		return "FieldPolicy(" + strconv.Itoa(int(p)) + ")"
	}
}

// FormatFloat renders v with at most three fractional digits, trailing zeros
// trimmed and '.' as the decimal separator.
func FormatFloat(v float32) (string, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("unsupported float value %v", v)
	}
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s, nil
}

// objectWriter builds one JSON object with fields in declaration order.
// The first error sticks and is reported by bytes.
type objectWriter struct {
	buf   bytes.Buffer
	count int
	err   error
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteByte('{')
	return w
}

func (w *objectWriter) key(name string) {
	if w.count > 0 {
		w.buf.WriteByte(',')
	}
	w.count++
	w.buf.WriteByte('"')
	w.buf.WriteString(name)
	w.buf.WriteString(`":`)
}

func (w *objectWriter) intField(name string, v int, policy FieldPolicy) {
	switch policy {
	case OmitIfSentinel:
		if v == Unset {
			return
		}
	case OmitIfZero:
		if v == 0 {
			return
		}
	}
	w.key(name)
	w.buf.WriteString(strconv.Itoa(v))
}

func (w *objectWriter) floatField(name string, v float32, policy FieldPolicy) {
	if w.err != nil {
		return
	}
	if policy == OmitIfZero && v == 0 {
		return
	}
	s, err := FormatFloat(v)
	if err != nil {
		w.err = fmt.Errorf("%s: %w", name, err)
		return
	}
	w.key(name)
	w.buf.WriteString(s)
}

func (w *objectWriter) stringField(name, v string) {
	if v == "" {
		return
	}
	w.valueField(name, v)
}

func (w *objectWriter) boolField(name string, v bool) {
	if !v {
		return
	}
	w.key(name)
	w.buf.WriteString("true")
}

// valueField writes v through the JSON encoder, so enums and nested documents use
// their own MarshalJSON/MarshalText.
func (w *objectWriter) valueField(name string, v any) {
	if w.err != nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("%s: %w", name, err)
		return
	}
	w.key(name)
	w.buf.Write(b)
}

func (w *objectWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

func isNull(data []byte) bool {
	return string(bytes.TrimSpace(data)) == "null"
}

func intOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
