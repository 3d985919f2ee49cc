package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SongFormat/core/chart"
	"SongFormat/core/watcher"
	"SongFormat/model"
	"SongFormat/storage"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub) (*httptest.Server, *chart.Service, string) {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	svc := chart.NewService(store)
	ctx := context.Background()

	slug, err := svc.SaveSong(ctx, &model.SongData{
		SongName:   "Paranoid",
		ArtistName: "Black Sabbath",
		InstrumentParts: []model.SongInstrumentPart{
			{InstrumentName: "Lead", InstrumentType: model.LeadGuitar, Tuning: model.NewStringTuning(0, 0, 0, 0, 0, 0)},
			{InstrumentName: "Keys", InstrumentType: model.Keys},
			{InstrumentName: "Drums", InstrumentType: model.Drums},
		},
	})
	require.NoError(t, err)

	note := model.NewSongNote(0.5)
	note.Fret = 5
	note.StringIndex = 1
	require.NoError(t, svc.SaveNotes(ctx, slug, "Lead", &model.SongInstrumentNotes{Notes: []model.SongNote{note}}))
	require.NoError(t, svc.SaveKeyboardNotes(ctx, slug, "Keys", &model.SongKeyboardNotes{
		Notes: []model.SongKeyboardNote{{TimeOffset: 1, TimeLength: 0.5, Note: 60, Velocity: 100}},
	}))
	require.NoError(t, svc.SaveStructure(ctx, slug, &model.SongStructure{
		Sections: []model.SongSection{{Name: "intro", EndTime: 8}},
	}))

	ts := httptest.NewServer(NewHandler(svc, hub))
	t.Cleanup(ts.Close)
	return ts, svc, slug
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestListSongs(t *testing.T) {
	ts, _, slug := newTestServer(t, nil)

	status, body := get(t, ts.URL+"/api/songs")
	require.Equal(t, http.StatusOK, status)
	var recs []model.SongRecord
	require.NoError(t, json.Unmarshal([]byte(body), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, slug, recs[0].Slug)
	assert.Len(t, recs[0].Parts, 3)

	status, body = get(t, ts.URL+"/api/songs?q=zeppelin")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)
}

func TestGetSong(t *testing.T) {
	ts, _, slug := newTestServer(t, nil)

	status, body := get(t, ts.URL+"/api/songs/"+slug)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "\n")
	var song model.SongData
	require.NoError(t, json.Unmarshal([]byte(body), &song))
	assert.Equal(t, "Paranoid", song.SongName)

	status, body = get(t, ts.URL+"/api/songs/"+slug+"?profile=condensed")
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "\n")

	status, _ = get(t, ts.URL+"/api/songs/"+slug+"?profile=pretty")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = get(t, ts.URL+"/api/songs/Nobody_Nothing")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetArrangement(t *testing.T) {
	ts, _, slug := newTestServer(t, nil)

	status, body := get(t, ts.URL+"/api/songs/"+slug+"/arrangement?profile=condensed")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"Sections":[{"Name":"intro","EndTime":8}]}`, body)
}

func TestGetPart(t *testing.T) {
	ts, _, slug := newTestServer(t, nil)

	status, body := get(t, ts.URL+"/api/songs/"+slug+"/parts/Lead?profile=condensed")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"Notes":[{"TimeOffset":0.5,"Fret":5,"String":1}]}`, body)

	status, body = get(t, ts.URL+"/api/songs/"+slug+"/parts/Keys?profile=condensed")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"Notes":[{"TimeOffset":1,"TimeLength":0.5,"Note":60,"Velocity":100}]}`, body)

	// listed in the song but never written
	status, _ = get(t, ts.URL+"/api/songs/"+slug+"/parts/Drums")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = get(t, ts.URL+"/api/songs/"+slug+"/parts/Bass")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Bass")
}

func TestTuning(t *testing.T) {
	ts, _, _ := newTestServer(t, nil)

	status, body := get(t, ts.URL+"/api/tuning?offsets=-2,0,0,0,0,0")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"offsets":[-2,0,0,0,0,0],"name":"Drop D","notes":"DADGBE","offsetFromStandard":true}`, body)

	status, body = get(t, ts.URL+"/api/tuning?offsets=0,0,0,0,0,0")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"offsets":[0,0,0,0,0,0],"name":"E Std","notes":"EADGBE","offsetFromStandard":true}`, body)

	for _, q := range []string{"", "?offsets=", "?offsets=1,x,2"} {
		status, _ = get(t, ts.URL+"/api/tuning"+q)
		assert.Equal(t, http.StatusBadRequest, status, q)
	}
}

func TestSlug(t *testing.T) {
	ts, _, _ := newTestServer(t, nil)

	status, body := get(t, ts.URL+"/api/slug?text=M%C3%B6tley%20Cr%C3%BCe")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"text":"Mötley Crüe","slug":"MotleyCrue"}`, body)
}

func TestCORS(t *testing.T) {
	ts, _, _ := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/songs", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestParseOffsets(t *testing.T) {
	got, err := ParseOffsets(" -2, 0 ,0,0,0,0 ")
	require.NoError(t, err)
	assert.Equal(t, []int{-2, 0, 0, 0, 0, 0}, got)

	_, err = ParseOffsets("  ")
	assert.Error(t, err)
	_, err = ParseOffsets("1,,2")
	assert.Error(t, err)
}

func TestEventFromChange(t *testing.T) {
	song := &model.SongData{SongName: "Paranoid", ArtistName: "Black Sabbath"}
	assert.Equal(t, ReloadEvent{Type: "reload", Slug: "A", Song: song.String()},
		EventFromChange(watcher.Change{Slug: "A", Song: song}))
	assert.Equal(t, ReloadEvent{Type: "error", Slug: "A", Error: "boom"},
		EventFromChange(watcher.Change{Slug: "A", Err: errors.New("boom")}))
	assert.Equal(t, ReloadEvent{Type: "remove", Slug: "A"},
		EventFromChange(watcher.Change{Slug: "A", Removed: true}))
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	hub.Broadcast(ReloadEvent{Type: "reload", Slug: "nobody"})
	assert.Equal(t, 0, hub.Clients())

	ts, _, _ := newTestServer(t, hub)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	song := &model.SongData{SongName: "Paranoid", ArtistName: "Black Sabbath"}
	hub.OnChange(watcher.Change{Slug: "BlackSabbath_Paranoid", Song: song})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev ReloadEvent
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, "reload", ev.Type)
	assert.Equal(t, "BlackSabbath_Paranoid", ev.Slug)
	assert.Equal(t, song.String(), ev.Song)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}
