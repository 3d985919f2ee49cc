// Package chart stores song documents by slug and keeps the catalog in step.
package chart

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"SongFormat/cache"
	"SongFormat/core/codec"
	"SongFormat/core/utils"
	"SongFormat/logger"
	"SongFormat/model"
	"SongFormat/repository"
	"SongFormat/storage"
)

const (
	SongFile      = "song.json"
	StructureFile = "arrangement.json"
	PartsDir      = "parts"
)

var (
	// ErrNotFound is returned when a document does not exist in the store.
	ErrNotFound = errors.New("chart document not found")
	// ErrEmptySlug is returned when a name sanitizes to nothing.
	ErrEmptySlug = errors.New("name has no filename-safe characters")
)

// Service reads and writes chart documents.
type Service struct {
	store   storage.ChartStore
	cache   *cache.ChartCache
	repo    repository.SongRepository
	profile codec.Profile
}

type Option func(*Service)

// WithCache enables the Redis read-through cache.
func WithCache(c *cache.ChartCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithRepository keeps the catalog updated on SaveSong.
func WithRepository(r repository.SongRepository) Option {
	return func(s *Service) { s.repo = r }
}

// WithProfile sets the profile documents are written with. Default Indented.
func WithProfile(p codec.Profile) Option {
	return func(s *Service) { s.profile = p }
}

func NewService(store storage.ChartStore, opts ...Option) *Service {
	s := &Service{store: store, profile: codec.Indented}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Store() storage.ChartStore {
	return s.store
}

func (s *Service) Profile() codec.Profile {
	return s.profile
}

// SongPath returns "<slug>/song.json".
func SongPath(slug string) string {
	return path.Join(slug, SongFile)
}

// StructurePath returns "<slug>/arrangement.json".
func StructurePath(slug string) string {
	return path.Join(slug, StructureFile)
}

// PartPath returns "<slug>/parts/<part-slug>.json" for an instrument name.
func PartPath(slug, instrumentName string) (string, error) {
	part := utils.SafeFilename(instrumentName)
	if part == "" {
		return "", fmt.Errorf("instrument %q: %w", instrumentName, ErrEmptySlug)
	}
	return path.Join(slug, PartsDir, part+".json"), nil
}

// SlugOf returns the first path element of a store path.
func SlugOf(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return ""
}

func (s *Service) save(ctx context.Context, p string, v any) error {
	data, err := s.profile.Encode(v)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, p, data); err != nil {
		return fmt.Errorf("save %s: %w", p, err)
	}
	if err := s.cache.Set(ctx, p, data); err != nil {
		logger.Warn("cache write failed", logger.String("path", p), logger.ErrorField(err))
	}
	return nil
}

// Raw returns the stored bytes of p, from the cache when present.
func (s *Service) Raw(ctx context.Context, p string) ([]byte, error) {
	if data, ok, err := s.cache.Get(ctx, p); err != nil {
		logger.Warn("cache read failed", logger.String("path", p), logger.ErrorField(err))
	} else if ok {
		return data, nil
	}

	data, err := s.store.Load(ctx, p)
	if err != nil {
		if storage.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
		}
		return nil, fmt.Errorf("load %s: %w", p, err)
	}
	if err := s.cache.Set(ctx, p, data); err != nil {
		logger.Warn("cache write failed", logger.String("path", p), logger.ErrorField(err))
	}
	return data, nil
}

func load[T any](ctx context.Context, s *Service, p string) (*T, error) {
	data, err := s.Raw(ctx, p)
	if err != nil {
		return nil, err
	}
	return codec.DecodeAs[T](data)
}

// Invalidate drops p from the cache.
func (s *Service) Invalidate(ctx context.Context, p string) {
	if err := s.cache.Delete(ctx, p); err != nil {
		logger.Warn("cache evict failed", logger.String("path", p), logger.ErrorField(err))
	}
}

// SaveSong writes the song document under the slug of its artist and song
// names, updates the catalog and returns the slug.
func (s *Service) SaveSong(ctx context.Context, song *model.SongData) (string, error) {
	slug := utils.SongSlug(song.ArtistName, song.SongName)
	if slug == "" {
		return "", fmt.Errorf("song %q: %w", song.String(), ErrEmptySlug)
	}
	if err := s.save(ctx, SongPath(slug), song); err != nil {
		return "", err
	}
	if err := s.index(ctx, slug, song); err != nil {
		return slug, err
	}
	logger.Info("song saved",
		logger.String("slug", slug),
		logger.Int("parts", len(song.InstrumentParts)),
		logger.Float32("a440CentsOffset", song.A440CentsOffset))
	return slug, nil
}

func (s *Service) LoadSong(ctx context.Context, slug string) (*model.SongData, error) {
	return load[model.SongData](ctx, s, SongPath(slug))
}

func (s *Service) SaveStructure(ctx context.Context, slug string, st *model.SongStructure) error {
	return s.save(ctx, StructurePath(slug), st)
}

func (s *Service) LoadStructure(ctx context.Context, slug string) (*model.SongStructure, error) {
	return load[model.SongStructure](ctx, s, StructurePath(slug))
}

func (s *Service) saveToPart(ctx context.Context, slug, instrumentName string, v any) error {
	p, err := PartPath(slug, instrumentName)
	if err != nil {
		return err
	}
	return s.save(ctx, p, v)
}

func loadPart[T any](ctx context.Context, s *Service, slug, instrumentName string) (*T, error) {
	p, err := PartPath(slug, instrumentName)
	if err != nil {
		return nil, err
	}
	return load[T](ctx, s, p)
}

// SaveNotes writes the notes of a stringed part.
func (s *Service) SaveNotes(ctx context.Context, slug, instrumentName string, notes *model.SongInstrumentNotes) error {
	return s.saveToPart(ctx, slug, instrumentName, notes)
}

func (s *Service) LoadNotes(ctx context.Context, slug, instrumentName string) (*model.SongInstrumentNotes, error) {
	return loadPart[model.SongInstrumentNotes](ctx, s, slug, instrumentName)
}

func (s *Service) SaveKeyboardNotes(ctx context.Context, slug, instrumentName string, notes *model.SongKeyboardNotes) error {
	return s.saveToPart(ctx, slug, instrumentName, notes)
}

func (s *Service) LoadKeyboardNotes(ctx context.Context, slug, instrumentName string) (*model.SongKeyboardNotes, error) {
	return loadPart[model.SongKeyboardNotes](ctx, s, slug, instrumentName)
}

func (s *Service) SaveDrumNotes(ctx context.Context, slug, instrumentName string, notes *model.SongDrumNotes) error {
	return s.saveToPart(ctx, slug, instrumentName, notes)
}

func (s *Service) LoadDrumNotes(ctx context.Context, slug, instrumentName string) (*model.SongDrumNotes, error) {
	return loadPart[model.SongDrumNotes](ctx, s, slug, instrumentName)
}

func (s *Service) SaveVocals(ctx context.Context, slug, instrumentName string, vocals *model.SongVocals) error {
	return s.saveToPart(ctx, slug, instrumentName, vocals)
}

func (s *Service) LoadVocals(ctx context.Context, slug, instrumentName string) (*model.SongVocals, error) {
	return loadPart[model.SongVocals](ctx, s, slug, instrumentName)
}

// DeleteSong removes every document under slug and its catalog row.
func (s *Service) DeleteSong(ctx context.Context, slug string) error {
	if slug == "" {
		return ErrEmptySlug
	}
	paths, err := s.store.List(ctx, slug+"/")
	if err != nil {
		return fmt.Errorf("list %s: %w", slug, err)
	}
	for _, p := range paths {
		if err := s.store.Delete(ctx, p); err != nil {
			return fmt.Errorf("delete %s: %w", p, err)
		}
		s.Invalidate(ctx, p)
	}
	if _, err := s.Unindex(ctx, slug); err != nil {
		return err
	}
	logger.Info("song deleted", logger.String("slug", slug), logger.Int("documents", len(paths)))
	return nil
}

func (s *Service) index(ctx context.Context, slug string, song *model.SongData) error {
	if s.repo == nil {
		return nil
	}
	rec := s.record(slug, song)
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("index %s: %w", slug, err)
	}
	return nil
}

func (s *Service) record(slug string, song *model.SongData) *model.SongRecord {
	return model.NewSongRecord("", slug, SongPath(slug), song, func(name string) string {
		p, err := PartPath(slug, name)
		if err != nil {
			return ""
		}
		return p
	})
}

// ReindexSong reloads slug's song document from the store, bypassing the
// cache, and updates the catalog.
func (s *Service) ReindexSong(ctx context.Context, slug string) (*model.SongData, error) {
	p := SongPath(slug)
	s.Invalidate(ctx, p)
	song, err := load[model.SongData](ctx, s, p)
	if err != nil {
		return nil, err
	}
	if err := s.index(ctx, slug, song); err != nil {
		return nil, err
	}
	return song, nil
}

// Unindex drops slug's catalog row and reports whether one existed.
func (s *Service) Unindex(ctx context.Context, slug string) (bool, error) {
	if s.repo == nil {
		return false, nil
	}
	deleted, err := s.repo.DeleteBySlug(ctx, slug)
	if err != nil {
		return false, fmt.Errorf("delete catalog row %s: %w", slug, err)
	}
	return deleted, nil
}

// Reindex rebuilds the catalog from every song document in the store. Songs
// that fail to load are skipped and reported in the returned error; rows of
// songs no longer in the store are removed.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	slugs, err := s.Slugs(ctx)
	if err != nil {
		return 0, err
	}
	var (
		n    int
		errs []error
	)
	for _, slug := range slugs {
		if _, err := s.ReindexSong(ctx, slug); err != nil {
			logger.Error("reindex failed", logger.String("slug", slug), logger.ErrorField(err))
			errs = append(errs, fmt.Errorf("%s: %w", slug, err))
			continue
		}
		n++
	}

	removed, err := s.prune(ctx, slugs)
	if err != nil {
		errs = append(errs, err)
	}
	logger.Info("reindex finished",
		logger.Int("songs", n),
		logger.Int("failed", len(errs)),
		logger.Strings("removed", removed))
	return n, errors.Join(errs...)
}

// prune deletes catalog rows whose slug is not in keep.
func (s *Service) prune(ctx context.Context, keep []string) ([]string, error) {
	if s.repo == nil {
		return nil, nil
	}
	rows, err := s.repo.List(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	present := make(map[string]struct{}, len(keep))
	for _, slug := range keep {
		present[slug] = struct{}{}
	}
	var removed []string
	for _, rec := range rows {
		if _, ok := present[rec.Slug]; ok {
			continue
		}
		if _, err := s.Unindex(ctx, rec.Slug); err != nil {
			return removed, err
		}
		removed = append(removed, rec.Slug)
	}
	return removed, nil
}

// Slugs lists the slugs that have a song document, sorted.
func (s *Service) Slugs(ctx context.Context) ([]string, error) {
	paths, err := s.store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list store: %w", err)
	}
	var slugs []string
	for _, p := range paths {
		slug := SlugOf(p)
		if slug != "" && p == SongPath(slug) {
			slugs = append(slugs, slug)
		}
	}
	return slugs, nil
}

// Songs returns catalog rows matching query (all when empty). Without a
// repository the rows are built from the store and query is matched against
// the song string.
func (s *Service) Songs(ctx context.Context, query string) ([]*model.SongRecord, error) {
	if s.repo != nil {
		return s.repo.Search(ctx, query, 0)
	}
	slugs, err := s.Slugs(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var out []*model.SongRecord
	for _, slug := range slugs {
		song, err := s.LoadSong(ctx, slug)
		if err != nil {
			logger.Warn("skipping unreadable song", logger.String("slug", slug), logger.ErrorField(err))
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(song.String()+" "+song.AlbumName), q) {
			continue
		}
		out = append(out, s.record(slug, song))
	}
	return out, nil
}
