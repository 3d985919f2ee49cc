package model

import (
	"github.com/goccy/go-json"
)

// SongInstrumentNotes is the timeline document of a stringed part.
type SongInstrumentNotes struct {
	Sections []SongSection
	Chords   []SongChord
	Notes    []SongNote
}

// Chord returns the chord a note refers to through id, or nil when id is Unset
// or out of range.
func (n *SongInstrumentNotes) Chord(id int) *SongChord {
	if id < 0 || id >= len(n.Chords) {
		return nil
	}
	return &n.Chords[id]
}

func (n SongInstrumentNotes) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	if n.Sections != nil {
		w.valueField("Sections", n.Sections)
	}
	if n.Chords != nil {
		w.valueField("Chords", n.Chords)
	}
	if n.Notes != nil {
		w.valueField("Notes", n.Notes)
	}
	return w.bytes()
}

func (n *SongInstrumentNotes) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		Sections []SongSection
		Chords   []SongChord
		Notes    []SongNote
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*n = SongInstrumentNotes(doc)
	return nil
}

// SongChord is a chord shape: one finger and one fret per string, indexed by
// string. Notes reference chords by position in the chord table.
type SongChord struct {
	Name    string
	Fingers []int
	Frets   []int
}

func (c SongChord) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.stringField("Name", c.Name)
	if c.Fingers != nil {
		w.valueField("Fingers", c.Fingers)
	}
	if c.Frets != nil {
		w.valueField("Frets", c.Frets)
	}
	return w.bytes()
}

func (c *SongChord) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		Name    string
		Fingers []int
		Frets   []int
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*c = SongChord(doc)
	return nil
}

// SongNote is a single note or chord event. Times are in seconds.
type SongNote struct {
	TimeOffset float32
	// TimeLength is the sustain length.
	TimeLength float32
	// Fret is 0 for an open string and Unset when not fretted.
	Fret int
	// StringIndex is zero-based, Unset when not applicable.
	StringIndex  int
	CentsOffsets []CentsOffset
	Techniques   NoteTechnique
	// HandFret is the lowest fret of the hand position.
	HandFret int
	// SlideFret is the fret the note slides to over its sustain.
	SlideFret int
	ChordID   int
	FingerID  int
}

// NewSongNote returns a note at timeOffset with every index field Unset.
func NewSongNote(timeOffset float32) SongNote {
	return SongNote{
		TimeOffset:  timeOffset,
		Fret:        Unset,
		StringIndex: Unset,
		HandFret:    Unset,
		SlideFret:   Unset,
		ChordID:     Unset,
		FingerID:    Unset,
	}
}

// IsChord reports whether the note points into the chord table.
func (n SongNote) IsChord() bool {
	return n.ChordID != Unset
}

func (n SongNote) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.floatField("TimeOffset", n.TimeOffset, AlwaysEmit)
	w.floatField("TimeLength", n.TimeLength, OmitIfZero)
	w.intField("Fret", n.Fret, OmitIfSentinel)
	w.intField("String", n.StringIndex, OmitIfSentinel)
	if n.CentsOffsets != nil {
		w.valueField("CentsOffsets", n.CentsOffsets)
	}
	if n.Techniques != 0 {
		w.valueField("Techniques", n.Techniques)
	}
	w.intField("HandFret", n.HandFret, OmitIfSentinel)
	w.intField("SlideFret", n.SlideFret, OmitIfSentinel)
	w.intField("ChordID", n.ChordID, OmitIfSentinel)
	w.intField("FingerID", n.FingerID, OmitIfSentinel)
	return w.bytes()
}

func (n *SongNote) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		TimeOffset   float32
		TimeLength   float32
		Fret         *int
		String       *int
		CentsOffsets []CentsOffset
		Techniques   NoteTechnique
		HandFret     *int
		SlideFret    *int
		ChordID      *int
		FingerID     *int
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*n = SongNote{
		TimeOffset:   doc.TimeOffset,
		TimeLength:   doc.TimeLength,
		Fret:         intOr(doc.Fret, Unset),
		StringIndex:  intOr(doc.String, Unset),
		CentsOffsets: doc.CentsOffsets,
		Techniques:   doc.Techniques,
		HandFret:     intOr(doc.HandFret, Unset),
		SlideFret:    intOr(doc.SlideFret, Unset),
		ChordID:      intOr(doc.ChordID, Unset),
		FingerID:     intOr(doc.FingerID, Unset),
	}
	return nil
}

// CentsOffset is one point of a bend curve.
type CentsOffset struct {
	TimeOffset float32
	// Cents is the bend amount in hundredths of a semitone.
	Cents int
}

func (c CentsOffset) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.floatField("TimeOffset", c.TimeOffset, AlwaysEmit)
	w.intField("Cents", c.Cents, OmitIfSentinel)
	return w.bytes()
}

func (c *CentsOffset) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		TimeOffset float32
		Cents      *int
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*c = CentsOffset{TimeOffset: doc.TimeOffset, Cents: intOr(doc.Cents, Unset)}
	return nil
}
