package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// OffsetList stores a tuning's semitone offsets in a single JSON column.
type OffsetList []int

// Scan implements sql.Scanner.
func (o *OffsetList) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into OffsetList", value)
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		*o = nil
		return nil
	}
	return json.Unmarshal(bytes, (*[]int)(o))
}

// Value implements driver.Valuer.
func (o OffsetList) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	b, err := json.Marshal([]int(o))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// SongRecord is the catalog row of a stored song document.
type SongRecord struct {
	ID              string       `json:"id" gorm:"primaryKey;size:36"`
	Slug            string       `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	SongName        string       `json:"songName" gorm:"size:255;index"`
	ArtistName      string       `json:"artistName" gorm:"size:255;index"`
	AlbumName       string       `json:"albumName" gorm:"size:255"`
	A440CentsOffset float32      `json:"a440CentsOffset"`
	DocumentPath    string       `json:"documentPath" gorm:"size:512"`
	Parts           []PartRecord `json:"parts" gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// TableName 指定表名
func (SongRecord) TableName() string {
	return "songs"
}

// PartRecord is the catalog row of one instrument part.
type PartRecord struct {
	ID             uint       `json:"-" gorm:"primaryKey;autoIncrement"`
	SongID         string     `json:"-" gorm:"size:36;index;not null"`
	Position       int        `json:"position"`
	InstrumentName string     `json:"instrumentName" gorm:"size:100;not null"`
	InstrumentType string     `json:"instrumentType" gorm:"size:20"`
	TuningOffsets  OffsetList `json:"tuningOffsets,omitempty" gorm:"type:text"`
	// TuningName is the display label, kept only for listing and search.
	TuningName   string `json:"tuningName,omitempty" gorm:"size:64"`
	CapoFret     int    `json:"capoFret"`
	DocumentPath string `json:"documentPath" gorm:"size:512"`
}

// TableName 指定表名
func (PartRecord) TableName() string {
	return "song_parts"
}

// NewSongRecord flattens song into catalog rows. id and paths are supplied by
// the caller; partPath maps an instrument name to its notes document.
func NewSongRecord(id, slug, documentPath string, song *SongData, partPath func(instrumentName string) string) *SongRecord {
	rec := &SongRecord{
		ID:              id,
		Slug:            slug,
		SongName:        song.SongName,
		ArtistName:      song.ArtistName,
		AlbumName:       song.AlbumName,
		A440CentsOffset: song.A440CentsOffset,
		DocumentPath:    documentPath,
	}
	for i, part := range song.InstrumentParts {
		pr := PartRecord{
			SongID:         id,
			Position:       i,
			InstrumentName: part.InstrumentName,
			InstrumentType: part.InstrumentType.String(),
			CapoFret:       part.CapoFret,
		}
		if part.Tuning != nil {
			pr.TuningOffsets = OffsetList(append([]int(nil), part.Tuning.StringSemitoneOffsets...))
			pr.TuningName = part.Tuning.Name()
		}
		if partPath != nil {
			pr.DocumentPath = partPath(part.InstrumentName)
		}
		rec.Parts = append(rec.Parts, pr)
	}
	return rec
}
