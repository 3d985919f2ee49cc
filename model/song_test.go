package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSong() SongData {
	return SongData{
		SongName:        "Kickstart My Heart",
		ArtistName:      "Mötley Crüe",
		AlbumName:       "Dr. Feelgood",
		A440CentsOffset: -12.5,
		InstrumentParts: []SongInstrumentPart{
			{InstrumentName: "Lead", InstrumentType: LeadGuitar, Tuning: NewStringTuning(-1, -1, -1, -1, -1, -1)},
			{InstrumentName: "Bass", InstrumentType: BassGuitar, Tuning: NewStringTuning(-1, -1, -1, -1)},
			{InstrumentName: "Drums", InstrumentType: Drums},
		},
	}
}

func TestAddOrReplacePart(t *testing.T) {
	assert := assert.New(t)
	song := testSong()

	song.AddOrReplacePart(SongInstrumentPart{InstrumentName: "Lead", InstrumentType: RhythmGuitar, CapoFret: 2})
	require.Len(t, song.InstrumentParts, 3)
	assert.Equal("Bass", song.InstrumentParts[0].InstrumentName)
	assert.Equal("Drums", song.InstrumentParts[1].InstrumentName)
	assert.Equal("Lead", song.InstrumentParts[2].InstrumentName)
	assert.Equal(RhythmGuitar, song.InstrumentParts[2].InstrumentType)

	song.AddOrReplacePart(SongInstrumentPart{InstrumentName: "Keys", InstrumentType: Keys})
	assert.Len(song.InstrumentParts, 4)
	assert.Equal("Keys", song.InstrumentParts[3].InstrumentName)
}

func TestAddOrReplacePartRemovesDuplicates(t *testing.T) {
	song := SongData{InstrumentParts: []SongInstrumentPart{
		{InstrumentName: "Lead"},
		{InstrumentName: "Lead", CapoFret: 1},
		{InstrumentName: "Bass"},
	}}
	song.AddOrReplacePart(SongInstrumentPart{InstrumentName: "Lead", CapoFret: 3})
	require.Len(t, song.InstrumentParts, 2)
	assert.Equal(t, "Bass", song.InstrumentParts[0].InstrumentName)
	assert.Equal(t, 3, song.InstrumentParts[1].CapoFret)
}

func TestAddOrReplacePartOnEmptySong(t *testing.T) {
	var song SongData
	song.AddOrReplacePart(SongInstrumentPart{InstrumentName: "Vox", InstrumentType: Vocals})
	require.Len(t, song.InstrumentParts, 1)
	assert.Equal(t, Vocals, song.InstrumentParts[0].InstrumentType)
}

func TestGetPart(t *testing.T) {
	song := testSong()
	part := song.GetPart("Bass")
	require.NotNil(t, part)
	assert.Equal(t, BassGuitar, part.InstrumentType)

	part.CapoFret = 4
	assert.Equal(t, 4, song.InstrumentParts[1].CapoFret)

	assert.Nil(t, song.GetPart("bass"))
}

func TestSongStrings(t *testing.T) {
	song := testSong()
	assert.Equal(t, "Mötley Crüe - Kickstart My Heart", song.String())
	assert.Equal(t, "Lead (Eb Std)", song.InstrumentParts[0].String())
	assert.Equal(t, "Drums", song.InstrumentParts[2].String())

	capo := SongInstrumentPart{InstrumentName: "Rhythm", Tuning: NewStringTuning(0, 0, 0, 0, 0, 0), CapoFret: 2}
	assert.Equal(t, "Rhythm (E Std C2)", capo.String())
}

func TestSongJSON(t *testing.T) {
	data, err := json.Marshal(testSong())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"SongName": "Kickstart My Heart",
		"ArtistName": "Mötley Crüe",
		"AlbumName": "Dr. Feelgood",
		"A440CentsOffset": -12.5,
		"InstrumentParts": [
			{"InstrumentName": "Lead", "InstrumentType": "LeadGuitar", "Tuning": {"StringSemitoneOffsets": [-1,-1,-1,-1,-1,-1]}},
			{"InstrumentName": "Bass", "InstrumentType": "BassGuitar", "Tuning": {"StringSemitoneOffsets": [-1,-1,-1,-1]}},
			{"InstrumentName": "Drums", "InstrumentType": "Drums"}
		]
	}`, string(data))

	var got SongData
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, testSong(), got)
}

func TestSongJSONOmitsDefaults(t *testing.T) {
	data, err := json.Marshal(SongData{SongName: "Untitled"})
	require.NoError(t, err)
	assert.Equal(t, `{"SongName":"Untitled"}`, string(data))
}

func TestInstrumentTypeAlwaysWritten(t *testing.T) {
	data, err := json.Marshal(SongInstrumentPart{InstrumentName: "Lead"})
	require.NoError(t, err)
	assert.Equal(t, `{"InstrumentName":"Lead","InstrumentType":"LeadGuitar"}`, string(data))

	data, err = json.Marshal(SongInstrumentPart{InstrumentName: "Lead", CapoFret: 5})
	require.NoError(t, err)
	assert.Equal(t, `{"InstrumentName":"Lead","InstrumentType":"LeadGuitar","CapoFret":5}`, string(data))
}

func TestSongUnknownEnumFails(t *testing.T) {
	song := SongData{SongName: "keep"}
	err := json.Unmarshal([]byte(`{"SongName":"x","InstrumentParts":[{"InstrumentName":"Lead","InstrumentType":"Banjo"}]}`), &song)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown enum name")
	assert.Equal(t, "keep", song.SongName)
}

func TestSongUnknownFieldsIgnored(t *testing.T) {
	var got SongData
	require.NoError(t, json.Unmarshal([]byte(`{"SongName":"x","Genre":"Rock","Extra":{"a":[1,2]}}`), &got))
	assert.Equal(t, SongData{SongName: "x"}, got)
}

func TestInstrumentTypeText(t *testing.T) {
	for _, it := range InstrumentTypes() {
		text, err := it.MarshalText()
		require.NoError(t, err)
		var back InstrumentType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, it, back)
	}

	var it InstrumentType
	assert.ErrorIs(t, it.UnmarshalText([]byte("leadguitar")), ErrUnknownEnum)
	_, err := InstrumentType(42).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownEnum)
	assert.Equal(t, "InstrumentType(42)", InstrumentType(42).String())

	assert.True(t, BassGuitar.IsStringed())
	assert.False(t, Keys.IsStringed())
}

func TestSongDecodeCollapsesDuplicateParts(t *testing.T) {
	var got SongData
	require.NoError(t, json.Unmarshal([]byte(`{"InstrumentParts":[
		{"InstrumentName":"Lead","InstrumentType":"LeadGuitar"},
		{"InstrumentName":"Bass","InstrumentType":"BassGuitar"},
		{"InstrumentName":"Lead","InstrumentType":"RhythmGuitar","CapoFret":3}
	]}`), &got))

	require.Len(t, got.InstrumentParts, 2)
	assert.Equal(t, "Bass", got.InstrumentParts[0].InstrumentName)
	assert.Equal(t, SongInstrumentPart{InstrumentName: "Lead", InstrumentType: RhythmGuitar, CapoFret: 3}, got.InstrumentParts[1])

	var empty SongData
	require.NoError(t, json.Unmarshal([]byte(`{"InstrumentParts":[]}`), &empty))
	assert.NotNil(t, empty.InstrumentParts)
	assert.Empty(t, empty.InstrumentParts)
}
