package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSongNoteOmitsSentinels(t *testing.T) {
	data, err := json.Marshal(NewSongNote(0))
	require.NoError(t, err)
	assert.Equal(t, `{"TimeOffset":0}`, string(data))

	var got SongNote
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, NewSongNote(0), got)
}

func TestSongNoteKeepsZeroIndexes(t *testing.T) {
	n := NewSongNote(1.25)
	n.Fret = 0
	n.StringIndex = 0
	n.ChordID = 0
	n.TimeLength = 0.5

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, `{"TimeOffset":1.25,"TimeLength":0.5,"Fret":0,"String":0,"ChordID":0}`, string(data))

	var got SongNote
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, n, got)
	assert.True(t, got.IsChord())
}

func TestSongNoteMissingFieldsDecodeAsUnset(t *testing.T) {
	var got SongNote
	require.NoError(t, json.Unmarshal([]byte(`{"TimeOffset":2,"Fret":5}`), &got))
	assert.Equal(t, 5, got.Fret)
	assert.Equal(t, Unset, got.StringIndex)
	assert.Equal(t, Unset, got.HandFret)
	assert.Equal(t, Unset, got.SlideFret)
	assert.Equal(t, Unset, got.ChordID)
	assert.Equal(t, Unset, got.FingerID)
	assert.False(t, got.IsChord())
}

func TestSongNoteFull(t *testing.T) {
	n := SongNote{
		TimeOffset:   12.345,
		TimeLength:   0.75,
		Fret:         7,
		StringIndex:  2,
		CentsOffsets: []CentsOffset{{TimeOffset: 12.5, Cents: 100}, {TimeOffset: 12.75, Cents: Unset}},
		Techniques:   Bend.With(Vibrato),
		HandFret:     5,
		SlideFret:    Unset,
		ChordID:      Unset,
		FingerID:     3,
	}
	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, `{"TimeOffset":12.345,"TimeLength":0.75,"Fret":7,"String":2,`+
		`"CentsOffsets":[{"TimeOffset":12.5,"Cents":100},{"TimeOffset":12.75}],`+
		`"Techniques":"Bend, Vibrato","HandFret":5,"FingerID":3}`, string(data))

	var got SongNote
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, n, got)
}

func TestSongNoteUnknownTechniqueFails(t *testing.T) {
	var got SongNote
	err := json.Unmarshal([]byte(`{"TimeOffset":1,"Techniques":"Bend, Shred"}`), &got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown enum name")
}

func TestInstrumentNotesRoundTrip(t *testing.T) {
	notes := SongInstrumentNotes{
		Sections: []SongSection{{Name: "intro", StartTime: 0, EndTime: 8}},
		Chords:   []SongChord{{Name: "A5", Fingers: []int{-1, 1, 3, 4, -1, -1}, Frets: []int{-1, 0, 2, 2, -1, -1}}},
		Notes: []SongNote{
			{TimeOffset: 0, Fret: Unset, StringIndex: Unset, HandFret: Unset, SlideFret: Unset, ChordID: 0, FingerID: Unset, Techniques: Chord},
			NewSongNote(0.5),
		},
	}
	data, err := json.Marshal(notes)
	require.NoError(t, err)

	var got SongInstrumentNotes
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, notes, got)

	require.NotNil(t, got.Chord(got.Notes[0].ChordID))
	assert.Equal(t, "A5", got.Chord(0).Name)
	assert.Nil(t, got.Chord(Unset))
	assert.Nil(t, got.Chord(1))
}

func TestEmptyListsSurvive(t *testing.T) {
	data, err := json.Marshal(SongInstrumentNotes{Notes: []SongNote{}})
	require.NoError(t, err)
	assert.Equal(t, `{"Notes":[]}`, string(data))

	var got SongInstrumentNotes
	require.NoError(t, json.Unmarshal(data, &got))
	assert.NotNil(t, got.Notes)
	assert.Empty(t, got.Notes)
	assert.Nil(t, got.Chords)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{0, "0"},
		{1, "1"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{12.345, "12.345"},
		{0.1234, "0.123"},
		{2.0006, "2.001"},
		{-0.0001, "0"},
		{-3.25, "-3.25"},
		{100, "100"},
	}
	for _, tt := range tests {
		got, err := FormatFloat(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "FormatFloat(%v)", tt.in)
	}
}

func TestNonFiniteFloatFails(t *testing.T) {
	var zero float32
	n := NewSongNote(1 / zero)
	_, err := json.Marshal(n)
	assert.Error(t, err)
}

func TestCentsOffsetAlwaysWritesTime(t *testing.T) {
	data, err := json.Marshal(CentsOffset{Cents: 0})
	require.NoError(t, err)
	assert.Equal(t, `{"TimeOffset":0,"Cents":0}`, string(data))
}

func TestKeyboardNote(t *testing.T) {
	data, err := json.Marshal(SongKeyboardNote{TimeOffset: 0, Note: 60, Velocity: Unset})
	require.NoError(t, err)
	assert.Equal(t, `{"TimeOffset":0,"Note":60}`, string(data))

	var got SongKeyboardNote
	require.NoError(t, json.Unmarshal([]byte(`{"TimeOffset":1.5,"TimeLength":0.25}`), &got))
	assert.Equal(t, SongKeyboardNote{TimeOffset: 1.5, TimeLength: 0.25, Note: Unset, Velocity: Unset}, got)

	notes := SongKeyboardNotes{Notes: []SongKeyboardNote{{TimeOffset: 0.5, TimeLength: 1, Note: 64, Velocity: 0}}}
	data, err = json.Marshal(notes)
	require.NoError(t, err)
	assert.Equal(t, `{"Notes":[{"TimeOffset":0.5,"TimeLength":1,"Note":64,"Velocity":0}]}`, string(data))
}
