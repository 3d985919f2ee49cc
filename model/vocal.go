package model

import (
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// SongVocal is one lyric event.
type SongVocal struct {
	Vocal      string
	TimeOffset float32
}

func (v SongVocal) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.stringField("Vocal", v.Vocal)
	w.floatField("TimeOffset", v.TimeOffset, AlwaysEmit)
	return w.bytes()
}

func (v *SongVocal) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		Vocal      string
		TimeOffset float32
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*v = SongVocal(doc)
	return nil
}

// SongVocals is the lyric document of a vocals part.
type SongVocals struct {
	Vocals []SongVocal
}

// Lyrics joins the vocal events in time order. A trailing "-" on an event marks
// a syllable that continues into the next one.
func (s SongVocals) Lyrics() string {
	vocals := append([]SongVocal(nil), s.Vocals...)
	sort.SliceStable(vocals, func(i, j int) bool {
		return vocals[i].TimeOffset < vocals[j].TimeOffset
	})

	var sb strings.Builder
	joinNext := true
	for _, v := range vocals {
		text := v.Vocal
		if !joinNext {
			sb.WriteByte(' ')
		}
		joinNext = strings.HasSuffix(text, "-")
		sb.WriteString(strings.TrimSuffix(text, "-"))
	}
	return sb.String()
}

func (s SongVocals) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	if s.Vocals != nil {
		w.valueField("Vocals", s.Vocals)
	}
	return w.bytes()
}

func (s *SongVocals) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		Vocals []SongVocal
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*s = SongVocals(doc)
	return nil
}
