package model

import (
	"fmt"
	"strconv"
)

// enumText maps an enum ordinal to its document name and back.
// Names are the only accepted encoding; ordinals never appear in documents.
func enumText(kind string, names []string, v int) ([]byte, error) {
	if v < 0 || v >= len(names) {
		return nil, fmt.Errorf("%s(%d): %w", kind, v, ErrUnknownEnum)
	}
	return []byte(names[v]), nil
}

func parseEnum(kind string, names []string, text []byte) (int, error) {
	s := string(text)
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s %q: %w", kind, s, ErrUnknownEnum)
}

func enumString(kind string, names []string, v int) string {
	if v < 0 || v >= len(names) {
		return kind + "(" + strconv.Itoa(v) + ")"
	}
	return names[v]
}

// InstrumentType is the kind of instrument a part is written for.
type InstrumentType int

const (
	LeadGuitar InstrumentType = iota
	RhythmGuitar
	BassGuitar
	Keys
	Drums
	Vocals
)

var instrumentTypeNames = []string{"LeadGuitar", "RhythmGuitar", "BassGuitar", "Keys", "Drums", "Vocals"}

// InstrumentTypes lists every instrument type in declaration order.
func InstrumentTypes() []InstrumentType {
	out := make([]InstrumentType, len(instrumentTypeNames))
	for i := range out {
		out[i] = InstrumentType(i)
	}
	return out
}

func (t InstrumentType) String() string {
	return enumString("InstrumentType", instrumentTypeNames, int(t))
}

// IsStringed reports whether parts of this type carry a StringTuning.
func (t InstrumentType) IsStringed() bool {
	return t == LeadGuitar || t == RhythmGuitar || t == BassGuitar
}

func (t InstrumentType) MarshalText() ([]byte, error) {
	return enumText("InstrumentType", instrumentTypeNames, int(t))
}

func (t *InstrumentType) UnmarshalText(text []byte) error {
	v, err := parseEnum("InstrumentType", instrumentTypeNames, text)
	if err != nil {
		return err
	}
	*t = InstrumentType(v)
	return nil
}
