package repository

import (
	"context"
	"strings"

	"SongFormat/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SongRepository 歌曲目录数据访问接口
type SongRepository interface {
	// Upsert inserts rec or replaces the row with the same slug. rec.ID and
	// its parts' SongID are filled in.
	Upsert(ctx context.Context, rec *model.SongRecord) error
	GetBySlug(ctx context.Context, slug string) (*model.SongRecord, error)
	List(ctx context.Context, limit, offset int) ([]*model.SongRecord, error)
	Search(ctx context.Context, query string, limit int) ([]*model.SongRecord, error)
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
}

// gormSongRepository GORM 实现
type gormSongRepository struct {
	db *gorm.DB
}

// NewGormSongRepository 创建 GORM 歌曲仓库
func NewGormSongRepository(db *gorm.DB) SongRepository {
	return &gormSongRepository{db: db}
}

func orderedParts(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *gormSongRepository) Upsert(ctx context.Context, rec *model.SongRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.SongRecord
		res := tx.Where("slug = ?", rec.Slug).Limit(1).Find(&existing)
		switch {
		case res.Error != nil:
			return res.Error
		case res.RowsAffected == 0:
			if rec.ID == "" {
				rec.ID = uuid.New().String()
			}
			if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
				return err
			}
		default:
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
			if err := tx.Model(&model.SongRecord{}).Where("id = ?", rec.ID).Updates(map[string]interface{}{
				"song_name":         rec.SongName,
				"artist_name":       rec.ArtistName,
				"album_name":        rec.AlbumName,
				"a440_cents_offset": rec.A440CentsOffset,
				"document_path":     rec.DocumentPath,
			}).Error; err != nil {
				return err
			}
			if err := tx.Where("song_id = ?", rec.ID).Delete(&model.PartRecord{}).Error; err != nil {
				return err
			}
		}

		for i := range rec.Parts {
			rec.Parts[i].ID = 0
			rec.Parts[i].SongID = rec.ID
		}
		if len(rec.Parts) > 0 {
			if err := tx.Create(&rec.Parts).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetBySlug returns nil, nil when no song has slug.
func (r *gormSongRepository) GetBySlug(ctx context.Context, slug string) (*model.SongRecord, error) {
	var rec model.SongRecord
	res := r.db.WithContext(ctx).
		Preload("Parts", orderedParts).
		Where("slug = ?", slug).
		Limit(1).
		Find(&rec)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &rec, nil
}

// List 按艺术家、歌名排序分页列出歌曲. limit <= 0 lists everything.
func (r *gormSongRepository) List(ctx context.Context, limit, offset int) ([]*model.SongRecord, error) {
	var recs []*model.SongRecord
	q := r.db.WithContext(ctx).
		Preload("Parts", orderedParts).
		Order("artist_name ASC, song_name ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// Search matches query against song, artist and album names.
func (r *gormSongRepository) Search(ctx context.Context, query string, limit int) ([]*model.SongRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.List(ctx, limit, 0)
	}
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	var recs []*model.SongRecord
	q := r.db.WithContext(ctx).
		Preload("Parts", orderedParts).
		Where("LOWER(song_name) LIKE ? ESCAPE '\\' OR LOWER(artist_name) LIKE ? ESCAPE '\\' OR LOWER(album_name) LIKE ? ESCAPE '\\'",
			pattern, pattern, pattern).
		Order("artist_name ASC, song_name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// DeleteBySlug reports whether a song was removed.
func (r *gormSongRepository) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec model.SongRecord
		res := tx.Select("id").Where("slug = ?", slug).Limit(1).Find(&rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Where("song_id = ?", rec.ID).Delete(&model.PartRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", rec.ID).Delete(&model.SongRecord{}).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
