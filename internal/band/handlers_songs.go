package band

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gorjanv/bandpractise/internal/media"
	"github.com/gorjanv/bandpractise/internal/rating"
)

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sort")
	if sortBy != "" && sortBy != "recent" && sortBy != "rating" {
		writeError(w, http.StatusBadRequest, "sort must be recent or rating")
		return
	}

	ctx := r.Context()
	songs, err := s.store.ListSongs(ctx)
	if err != nil {
		writeStoreError(w, "list songs", err)
		return
	}
	rows, err := s.store.ListRatings(ctx)
	if err != nil {
		writeStoreError(w, "list ratings", err)
		return
	}
	summaries := rating.Group(rows)

	out := make([]SongView, len(songs))
	for i, song := range songs {
		out[i] = SongView{Song: song, Summary: rating.Lookup(summaries, song.ID)}
	}
	if sortBy == "rating" {
		sort.SliceStable(out, func(i, j int) bool {
			return rating.Less(out[i].Summary, out[j].Summary, out[i].CreatedAt, out[j].CreatedAt)
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	songID, ok := uuidParam(w, r, "songId")
	if !ok {
		return
	}

	ctx := r.Context()
	song, err := s.store.GetSong(ctx, songID)
	if err != nil {
		writeStoreError(w, "get song", err)
		return
	}
	ratings, err := s.store.SongRatings(ctx, songID)
	if err != nil {
		writeStoreError(w, "song ratings", err)
		return
	}
	versions, err := s.store.ListVersions(ctx, songID)
	if err != nil {
		writeStoreError(w, "list versions", err)
		return
	}

	writeJSON(w, http.StatusOK, SongView{
		Song:     *song,
		Summary:  rating.Summarize(ratings),
		Versions: versions,
	})
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var body createSongRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	body.Title = strings.TrimSpace(body.Title)
	body.Artist = strings.TrimSpace(body.Artist)
	body.YoutubeURL = strings.TrimSpace(body.YoutubeURL)
	if body.Title == "" || body.Artist == "" || body.YoutubeURL == "" {
		writeError(w, http.StatusBadRequest, "title, artist and youtubeUrl are required")
		return
	}

	videoID := body.YoutubeID
	if videoID == "" {
		id, ok := media.ExtractYouTubeID(body.YoutubeURL)
		if !ok {
			writeError(w, http.StatusBadRequest, "youtubeUrl is not a YouTube link")
			return
		}
		videoID = id
	}
	artwork := body.Artwork
	if artwork == "" {
		artwork = media.Thumbnail(videoID)
	}

	uid := user.ID
	song := &Song{
		Title:       body.Title,
		Artist:      body.Artist,
		Artwork:     artwork,
		YoutubeURL:  body.YoutubeURL,
		YoutubeID:   videoID,
		UserID:      &uid,
		AddedBy:     user.ID,
		AddedByName: user.DisplayName(),
	}
	if err := s.store.CreateSong(r.Context(), song); err != nil {
		writeStoreError(w, "create song", err)
		return
	}

	writeJSON(w, http.StatusCreated, SongView{Song: *song})
}

func (s *Server) handlePatchSong(w http.ResponseWriter, r *http.Request) {
	songID, ok := uuidParam(w, r, "songId")
	if !ok {
		return
	}
	user := currentUser(r)

	var upd SongUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}
	for _, f := range []*string{upd.Title, upd.Artist, upd.YoutubeURL} {
		if f != nil && strings.TrimSpace(*f) == "" {
			writeError(w, http.StatusBadRequest, "title, artist and youtubeUrl cannot be empty")
			return
		}
	}
	if upd.YoutubeURL != nil {
		id, ok := media.ExtractYouTubeID(*upd.YoutubeURL)
		if !ok {
			writeError(w, http.StatusBadRequest, "youtubeUrl is not a YouTube link")
			return
		}
		upd.YoutubeID = &id
	}

	ctx := r.Context()
	song, err := s.store.GetSong(ctx, songID)
	if err != nil {
		writeStoreError(w, "get song", err)
		return
	}
	if !song.OwnedBy(user.ID) {
		writeError(w, http.StatusForbidden, "only the person who added the song can edit it")
		return
	}

	updated, err := s.store.UpdateSong(ctx, songID, upd)
	if err != nil {
		writeStoreError(w, "update song", err)
		return
	}
	writeJSON(w, http.StatusOK, SongView{Song: *updated})
}

// handleDeleteSong removes the song with its votes, versions and setlist
// entries, then closes the gaps left in every setlist it was part of.
func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	songID, ok := uuidParam(w, r, "songId")
	if !ok {
		return
	}
	user := currentUser(r)

	ctx := r.Context()
	song, err := s.store.GetSong(ctx, songID)
	if err != nil {
		writeStoreError(w, "get song", err)
		return
	}
	if !song.OwnedBy(user.ID) {
		writeError(w, http.StatusForbidden, "only the person who added the song can delete it")
		return
	}

	setlists, err := s.store.DeleteSong(ctx, songID)
	if err != nil {
		writeStoreError(w, "delete song", err)
		return
	}
	for _, setlistID := range setlists {
		if err := s.setlists.Compact(ctx, setlistID); err != nil {
			writeStoreError(w, "compact setlist", err)
			return
		}
		s.touchSetlist(r, setlistID)
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *Server) handleListSongVotes(w http.ResponseWriter, r *http.Request) {
	songID, ok := uuidParam(w, r, "songId")
	if !ok {
		return
	}

	ctx := r.Context()
	if _, err := s.store.GetSong(ctx, songID); err != nil {
		writeStoreError(w, "get song", err)
		return
	}
	votes, err := s.store.ListVotes(ctx, songID)
	if err != nil {
		writeStoreError(w, "list votes", err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}
