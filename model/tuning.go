package model

import (
	"strings"

	"github.com/goccy/go-json"
)

// StringTuning holds per-string semitone offsets from standard tuning,
// lowest string first. A nil or short list means E standard.
type StringTuning struct {
	StringSemitoneOffsets []int
}

// NewStringTuning copies offsets into a new tuning.
func NewStringTuning(offsets ...int) *StringTuning {
	return &StringTuning{StringSemitoneOffsets: append([]int(nil), offsets...)}
}

const standardTuningName = "E Std"

// semitones of each open string above low E in standard tuning (E A D G B E)
var stringOffsetsFromE = [...]int{0, 5, 10, 3, 7, 0}

var sharpNoteNames = [12]string{"E", "F", "F#", "G", "G#", "A", "A#", "B", "C", "C#", "D", "D#"}
var flatNoteNames = [12]string{"E", "F", "Gb", "G", "Ab", "A", "Bb", "B", "C", "Db", "D", "Eb"}

var openTunings = map[string]string{
	"DGDGBD":  "Open G",
	"DADF#AD": "Open D",
	"EBEG#BE": "Open E",
	"EAEAC#E": "Open A",
	"CGCGCE":  "Open C",
}

func noteName(table *[12]string, offset int) (string, bool) {
	if offset < 0 {
		offset += 12
	}
	if offset < 0 {
		return "", false
	}
	return table[offset%12], true
}

// NoteNameSharp names the note offset semitones above E, spelled with sharps.
// Offsets below -12 have no name.
func NoteNameSharp(offset int) (string, bool) {
	return noteName(&sharpNoteNames, offset)
}

// NoteNameFlat names the note offset semitones above E, spelled with flats.
func NoteNameFlat(offset int) (string, bool) {
	return noteName(&flatNoteNames, offset)
}

// IsOffsetFromStandard reports whether every string above the lowest shares
// the second string's offset. Drop tunings qualify.
func (t *StringTuning) IsOffsetFromStandard() bool {
	offsets := t.StringSemitoneOffsets
	for i := 2; i < len(offsets); i++ {
		if offsets[i] != offsets[1] {
			return false
		}
	}
	return true
}

// Name returns a display label such as "E Std", "Drop D", "C# Drop B" or
// "Open G". It is never part of an encoded document.
func (t *StringTuning) Name() string {
	if t == nil || len(t.StringSemitoneOffsets) < 4 {
		return standardTuningName
	}
	if !t.IsOffsetFromStandard() {
		return t.TuningAsNotes()
	}

	offsets := t.StringSemitoneOffsets
	var key string
	var ok bool
	if offsets[1] < 0 {
		key, ok = NoteNameFlat(offsets[1])
	} else {
		key, ok = NoteNameSharp(offsets[1])
	}
	if !ok {
		return t.TuningAsNotes()
	}
	if offsets[0] == offsets[1] {
		return key + " Std"
	}

	drop, ok := NoteNameFlat(offsets[0])
	if !ok {
		return t.TuningAsNotes()
	}
	if key == "E" {
		return "Drop " + drop
	}
	return key + " Drop " + drop
}

// TuningAsNotes spells every open string with sharps, lowest first, and
// recognizes the common open tunings. Strings past the sixth have no
// standard baseline and are spelled from their raw offset; unnameable
// offsets are skipped.
func (t *StringTuning) TuningAsNotes() string {
	var sb strings.Builder
	for i, offset := range t.StringSemitoneOffsets {
		if i < len(stringOffsetsFromE) {
			offset += stringOffsetsFromE[i]
		}
		if name, ok := NoteNameSharp(offset); ok {
			sb.WriteString(name)
		}
	}
	spelled := sb.String()
	if open, ok := openTunings[spelled]; ok {
		return open
	}
	return spelled
}

func (t *StringTuning) String() string {
	return t.Name()
}

func (t StringTuning) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	if t.StringSemitoneOffsets != nil {
		w.valueField("StringSemitoneOffsets", t.StringSemitoneOffsets)
	}
	return w.bytes()
}

func (t *StringTuning) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		StringSemitoneOffsets []int
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*t = StringTuning(doc)
	return nil
}
