package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"SongFormat/core/chart"
	"SongFormat/core/codec"
	"SongFormat/core/utils"
	"SongFormat/logger"
	"SongFormat/model"
	"SongFormat/storage"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

// APIHandler 处理所有API请求
type APIHandler struct {
	svc *chart.Service
}

func NewAPIHandler(svc *chart.Service) *APIHandler {
	return &APIHandler{svc: svc}
}

// TuningResponse is the body of GET /api/tuning.
type TuningResponse struct {
	Offsets            []int  `json:"offsets"`
	Name               string `json:"name"`
	Notes              string `json:"notes"`
	OffsetFromStandard bool   `json:"offsetFromStandard"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write response failed", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service errors onto status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, chart.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, chart.ErrEmptySlug), errors.Is(err, storage.ErrInvalidPath):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed",
			logger.String("path", r.URL.Path),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *APIHandler) profile(r *http.Request) (codec.Profile, error) {
	name := r.URL.Query().Get("profile")
	if name == "" {
		return h.svc.Profile(), nil
	}
	return codec.ProfileByName(name)
}

// writeDocument encodes a chart document under the requested profile.
func (h *APIHandler) writeDocument(w http.ResponseWriter, r *http.Request, v interface{}) {
	p, err := h.profile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := p.Encode(v)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// ListSongsHandler GET /api/songs?q=
func (h *APIHandler) ListSongsHandler(w http.ResponseWriter, r *http.Request) {
	songs, err := h.svc.Songs(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if songs == nil {
		songs = []*model.SongRecord{}
	}
	writeJSON(w, http.StatusOK, songs)
}

// GetSongHandler GET /api/songs/{slug}
func (h *APIHandler) GetSongHandler(w http.ResponseWriter, r *http.Request) {
	song, err := h.svc.LoadSong(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeDocument(w, r, song)
}

// GetArrangementHandler GET /api/songs/{slug}/arrangement
func (h *APIHandler) GetArrangementHandler(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.LoadStructure(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeDocument(w, r, st)
}

// GetPartHandler GET /api/songs/{slug}/parts/{part}. The part's instrument
// type in the song document decides which notes document is read.
func (h *APIHandler) GetPartHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug, name := vars["slug"], vars["part"]
	ctx := r.Context()

	song, err := h.svc.LoadSong(ctx, slug)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	part := song.GetPart(name)
	if part == nil {
		writeError(w, http.StatusNotFound, "no part named "+strconv.Quote(name))
		return
	}

	var doc interface{}
	switch part.InstrumentType {
	case model.Keys:
		doc, err = h.svc.LoadKeyboardNotes(ctx, slug, name)
	case model.Drums:
		doc, err = h.svc.LoadDrumNotes(ctx, slug, name)
	case model.Vocals:
		doc, err = h.svc.LoadVocals(ctx, slug, name)
	default:
		doc, err = h.svc.LoadNotes(ctx, slug, name)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeDocument(w, r, doc)
}

// TuningHandler GET /api/tuning?offsets=-2,0,0,0,0,0
func (h *APIHandler) TuningHandler(w http.ResponseWriter, r *http.Request) {
	offsets, err := ParseOffsets(r.URL.Query().Get("offsets"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t := model.NewStringTuning(offsets...)
	writeJSON(w, http.StatusOK, TuningResponse{
		Offsets:            offsets,
		Name:               t.Name(),
		Notes:              t.TuningAsNotes(),
		OffsetFromStandard: t.IsOffsetFromStandard(),
	})
}

// SlugHandler GET /api/slug?text=
func (h *APIHandler) SlugHandler(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	writeJSON(w, http.StatusOK, map[string]string{
		"text": text,
		"slug": utils.SafeFilename(text),
	})
}

// ParseOffsets parses a comma separated list of semitone offsets.
func ParseOffsets(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("offsets is required")
	}
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.New("invalid offset " + strconv.Quote(f))
		}
		out = append(out, v)
	}
	return out, nil
}
