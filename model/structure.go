package model

import (
	"fmt"

	"github.com/goccy/go-json"
)

// SongStructure is the arrangement of a song: named sections and the beat grid.
type SongStructure struct {
	Sections []SongSection
	Beats    []SongBeat
}

func (s SongStructure) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	if s.Sections != nil {
		w.valueField("Sections", s.Sections)
	}
	if s.Beats != nil {
		w.valueField("Beats", s.Beats)
	}
	return w.bytes()
}

func (s *SongStructure) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		Sections []SongSection
		Beats    []SongBeat
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*s = SongStructure(doc)
	return nil
}

// SongSection is a named time span such as "verse" or "chorus". Times are seconds.
type SongSection struct {
	Name      string
	StartTime float32
	EndTime   float32
}

// Duration is EndTime - StartTime.
func (s SongSection) Duration() float32 {
	return s.EndTime - s.StartTime
}

// Contains reports whether t falls in [StartTime, EndTime).
func (s SongSection) Contains(t float32) bool {
	return t >= s.StartTime && t < s.EndTime
}

func (s SongSection) String() string {
	return fmt.Sprintf("%s[%v-%v]", s.Name, s.StartTime, s.EndTime)
}

func (s SongSection) MarshalJSON() ([]byte, error) {
	if s.EndTime < s.StartTime {
		return nil, fmt.Errorf("section %q ends at %v before it starts at %v", s.Name, s.EndTime, s.StartTime)
	}
	w := newObjectWriter()
	w.stringField("Name", s.Name)
	w.floatField("StartTime", s.StartTime, OmitIfZero)
	w.floatField("EndTime", s.EndTime, OmitIfZero)
	return w.bytes()
}

func (s *SongSection) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		Name      string
		StartTime float32
		EndTime   float32
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*s = SongSection(doc)
	return nil
}

// SongBeat is one tick of the beat grid.
type SongBeat struct {
	TimeOffset float32
	IsMeasure  bool
}

func (b SongBeat) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.floatField("TimeOffset", b.TimeOffset, AlwaysEmit)
	w.boolField("IsMeasure", b.IsMeasure)
	return w.bytes()
}

func (b *SongBeat) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var doc struct {
		TimeOffset float32
		IsMeasure  bool
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*b = SongBeat(doc)
	return nil
}
