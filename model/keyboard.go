package model

import (
	"github.com/goccy/go-json"
)

// SongKeyboardNotes is the timeline document of a keys part.
type SongKeyboardNotes struct {
	Sections []SongSection
	Notes    []SongKeyboardNote
}

func (k SongKeyboardNotes) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	if k.Sections != nil {
		w.valueField("Sections", k.Sections)
	}
	if k.Notes != nil {
		w.valueField("Notes", k.Notes)
	}
	return w.bytes()
}

func (k *SongKeyboardNotes) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		Sections []SongSection
		Notes    []SongKeyboardNote
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*k = SongKeyboardNotes(doc)
	return nil
}

// SongKeyboardNote is a key press. Note is a MIDI note number and Velocity
// follows MIDI 0-127.
type SongKeyboardNote struct {
	TimeOffset float32
	TimeLength float32
	Note       int
	Velocity   int
}

func (n SongKeyboardNote) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.floatField("TimeOffset", n.TimeOffset, AlwaysEmit)
	w.floatField("TimeLength", n.TimeLength, OmitIfZero)
	w.intField("Note", n.Note, OmitIfSentinel)
	w.intField("Velocity", n.Velocity, OmitIfSentinel)
	return w.bytes()
}

func (n *SongKeyboardNote) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		TimeOffset float32
		TimeLength float32
		Note       *int
		Velocity   *int
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*n = SongKeyboardNote{
		TimeOffset: doc.TimeOffset,
		TimeLength: doc.TimeLength,
		Note:       intOr(doc.Note, Unset),
		Velocity:   intOr(doc.Velocity, Unset),
	}
	return nil
}
