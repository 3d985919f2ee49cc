package codec_test

import (
	"strings"
	"sync"
	"testing"

	"SongFormat/core/codec"
	"SongFormat/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSong() *model.SongData {
	return &model.SongData{
		SongName:   "Song",
		ArtistName: "Artist",
		InstrumentParts: []model.SongInstrumentPart{
			{InstrumentName: "Lead", InstrumentType: model.LeadGuitar, Tuning: model.NewStringTuning(-2, 0, 0, 0, 0, 0)},
			{InstrumentName: "Keys", InstrumentType: model.Keys},
		},
	}
}

func sampleNotes() *model.SongInstrumentNotes {
	n := model.NewSongNote(0)
	n.Fret = 0
	n.StringIndex = 5
	n.Techniques = model.PalmMute
	return &model.SongInstrumentNotes{
		Sections: []model.SongSection{{Name: "intro", EndTime: 4}},
		Notes:    []model.SongNote{n, model.NewSongNote(0.25)},
	}
}

func TestRoundTripBothProfiles(t *testing.T) {
	for _, p := range []codec.Profile{codec.Indented, codec.Condensed} {
		t.Run(p.Name(), func(t *testing.T) {
			data, err := p.Encode(sampleSong())
			require.NoError(t, err)
			song, err := codec.DecodeAs[model.SongData](data)
			require.NoError(t, err)
			assert.Equal(t, sampleSong(), song)

			data, err = p.Encode(sampleNotes())
			require.NoError(t, err)
			notes, err := codec.DecodeAs[model.SongInstrumentNotes](data)
			require.NoError(t, err)
			assert.Equal(t, sampleNotes(), notes)
		})
	}
}

func TestProfilesDifferOnlyInWhitespace(t *testing.T) {
	indented, err := codec.Indented.Encode(sampleSong())
	require.NoError(t, err)
	condensed, err := codec.Condensed.Encode(sampleSong())
	require.NoError(t, err)

	assert.Contains(t, string(indented), "\n  \"SongName\": \"Song\"")
	assert.NotContains(t, string(condensed), "\n")
	assert.NotContains(t, string(condensed), ": ")
	assert.JSONEq(t, string(indented), string(condensed))
}

func TestCondensedDocument(t *testing.T) {
	data, err := codec.Encode(sampleNotes())
	require.NoError(t, err)
	assert.Equal(t, `{"Sections":[{"Name":"intro","EndTime":4}],"Notes":[`+
		`{"TimeOffset":0,"Fret":0,"String":5,"Techniques":"PalmMute"},{"TimeOffset":0.25}]}`, string(data))
}

func TestReencode(t *testing.T) {
	in := `{
		"SongName": "Song",
		"ArtistName": "Artist",
		"Unknown": true,
		"InstrumentParts": [{"InstrumentName": "Bass", "InstrumentType": "BassGuitar", "CapoFret": 0}]
	}`
	out, err := codec.Reencode[model.SongData]([]byte(in), codec.Condensed)
	require.NoError(t, err)
	assert.Equal(t, `{"SongName":"Song","ArtistName":"Artist","InstrumentParts":[{"InstrumentName":"Bass","InstrumentType":"BassGuitar"}]}`, string(out))
}

func TestDecodeErrors(t *testing.T) {
	var song model.SongData
	assert.Error(t, codec.Decode(nil, &song))
	assert.Error(t, codec.Decode([]byte("  "), &song))
	assert.Error(t, codec.Decode([]byte(`{"SongName":`), &song))

	err := codec.Decode([]byte(`{"InstrumentParts":[{"InstrumentType":"Theremin"}]}`), &song)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown enum name")
	assert.Equal(t, model.SongData{}, song)
}

func TestProfileByName(t *testing.T) {
	p, err := codec.ProfileByName("Condensed")
	require.NoError(t, err)
	assert.Equal(t, codec.Condensed, p)

	p, err = codec.ProfileByName(" indented ")
	require.NoError(t, err)
	assert.Equal(t, codec.Indented, p)
	assert.Equal(t, "indented", p.String())

	_, err = codec.ProfileByName("pretty")
	assert.Error(t, err)
}

func TestProfilesAreSafeForConcurrentUse(t *testing.T) {
	want, err := codec.Indented.Encode(sampleSong())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := codec.Indented.Encode(sampleSong())
			if err != nil || string(got) != string(want) {
				errs <- strings.TrimSpace(string(got))
			}
		}()
	}
	wg.Wait()
	close(errs)
	assert.Empty(t, errs)
}
