package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructureJSON(t *testing.T) {
	st := SongStructure{
		Sections: []SongSection{
			{Name: "intro", StartTime: 0, EndTime: 7.5},
			{Name: "verse", StartTime: 7.5, EndTime: 30.25},
		},
		Beats: []SongBeat{
			{TimeOffset: 0, IsMeasure: true},
			{TimeOffset: 0.5},
		},
	}
	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.Equal(t, `{"Sections":[{"Name":"intro","EndTime":7.5},{"Name":"verse","StartTime":7.5,"EndTime":30.25}],`+
		`"Beats":[{"TimeOffset":0,"IsMeasure":true},{"TimeOffset":0.5}]}`, string(data))

	var got SongStructure
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, st, got)
}

func TestSectionEndingBeforeStartFails(t *testing.T) {
	_, err := json.Marshal(SongSection{Name: "bad", StartTime: 5, EndTime: 4})
	assert.Error(t, err)
}

func TestSectionHelpers(t *testing.T) {
	s := SongSection{Name: "chorus", StartTime: 10, EndTime: 20}
	assert.Equal(t, float32(10), s.Duration())
	assert.True(t, s.Contains(10))
	assert.True(t, s.Contains(19.99))
	assert.False(t, s.Contains(20))
	assert.Equal(t, "chorus[10-20]", s.String())
}
