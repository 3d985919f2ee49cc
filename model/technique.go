package model

import (
	"fmt"
	"math/bits"
	"strings"
)

// NoteTechnique is a set of playing techniques. Bit positions are part of the
// document contract and never change; bit 0 is unused.
type NoteTechnique uint32

const (
	HammerOn NoteTechnique = 1 << (iota + 1)
	PullOff
	Accent
	PalmMute
	FretHandMute
	Slide
	Bend
	Tremolo
	Vibrato
	Harmonic
	PinchHarmonic
	Tap
	Slap
	Pop
	Chord
	ChordNote
	Continued
	Arpeggio
)

var techniqueNames = []struct {
	flag NoteTechnique
	name string
}{
	{HammerOn, "HammerOn"},
	{PullOff, "PullOff"},
	{Accent, "Accent"},
	{PalmMute, "PalmMute"},
	{FretHandMute, "FretHandMute"},
	{Slide, "Slide"},
	{Bend, "Bend"},
	{Tremolo, "Tremolo"},
	{Vibrato, "Vibrato"},
	{Harmonic, "Harmonic"},
	{PinchHarmonic, "PinchHarmonic"},
	{Tap, "Tap"},
	{Slap, "Slap"},
	{Pop, "Pop"},
	{Chord, "Chord"},
	{ChordNote, "ChordNote"},
	{Continued, "Continued"},
	{Arpeggio, "Arpeggio"},
}

var allTechniques = func() NoteTechnique {
	var all NoteTechnique
	for _, t := range techniqueNames {
		all |= t.flag
	}
	return all
}()

// Has reports whether every flag in f is set.
func (t NoteTechnique) Has(f NoteTechnique) bool {
	return t&f == f
}

// With returns t with f set.
func (t NoteTechnique) With(f NoteTechnique) NoteTechnique {
	return t | f
}

// Without returns t with f cleared.
func (t NoteTechnique) Without(f NoteTechnique) NoteTechnique {
	return t &^ f
}

// Count is the number of flags set.
func (t NoteTechnique) Count() int {
	return bits.OnesCount32(uint32(t))
}

func (t NoteTechnique) names() []string {
	var out []string
	for _, n := range techniqueNames {
		if t&n.flag != 0 {
			out = append(out, n.name)
		}
	}
	return out
}

func (t NoteTechnique) String() string {
	if t == 0 {
		return "None"
	}
	s := strings.Join(t.names(), ", ")
	if extra := t &^ allTechniques; extra != 0 {
		if s != "" {
			s += ", "
		}
		s += fmt.Sprintf("0x%x", uint32(extra))
	}
	return s
}

// MarshalText joins flag names with ", ". Undefined bits are an error.
func (t NoteTechnique) MarshalText() ([]byte, error) {
	if extra := t &^ allTechniques; extra != 0 {
		return nil, fmt.Errorf("NoteTechnique bits 0x%x: %w", uint32(extra), ErrUnknownEnum)
	}
	return []byte(strings.Join(t.names(), ", ")), nil
}

func (t *NoteTechnique) UnmarshalText(text []byte) error {
	var v NoteTechnique
	s := strings.TrimSpace(string(text))
	if s != "" {
		for _, part := range strings.Split(s, ",") {
			flag, err := parseTechnique(strings.TrimSpace(part))
			if err != nil {
				return err
			}
			v |= flag
		}
	}
	*t = v
	return nil
}

func parseTechnique(name string) (NoteTechnique, error) {
	for _, n := range techniqueNames {
		if n.name == name {
			return n.flag, nil
		}
	}
	return 0, fmt.Errorf("NoteTechnique %q: %w", name, ErrUnknownEnum)
}
