package band

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gorjanv/bandpractise/internal/ordering"
)

func (s *Server) handleAddSetlistSong(w http.ResponseWriter, r *http.Request) {
	setlistID, ok := uuidParam(w, r, "setlistId")
	if !ok {
		return
	}

	var body addSetlistSongRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	songID, ok := validUUID(w, "songId", body.SongID)
	if !ok {
		return
	}
	position := ordering.AppendAtEnd
	if body.Position != nil {
		position = *body.Position
	}
	if position < ordering.AppendAtEnd {
		writeError(w, http.StatusBadRequest, ordering.ErrInvalidPosition.Error())
		return
	}

	ctx := r.Context()
	if _, err := s.store.GetSetlist(ctx, setlistID); err != nil {
		writeStoreError(w, "get setlist", err)
		return
	}
	if _, err := s.store.GetSong(ctx, songID); err != nil {
		writeStoreError(w, "get song", err)
		return
	}

	var created *SetlistSong
	insert := func(ctx context.Context, pos int) (ordering.Entry, error) {
		ss, err := s.store.InsertSetlistSong(ctx, setlistID, songID, pos)
		if err != nil {
			return ordering.Entry{}, err
		}
		created = ss
		return ordering.Entry{ID: ss.ID, MemberID: songID, Position: ss.Position}, nil
	}
	if _, err := s.setlists.Append(ctx, setlistID, songID, position, insert); err != nil {
		writeStoreError(w, "add setlist song", err)
		return
	}
	s.touchSetlist(r, setlistID)

	writeJSON(w, http.StatusCreated, created)
}

// handleRemoveSetlistSong serves both the query form (?songId=) and the
// path form (/songs/{songId}).
func (s *Server) handleRemoveSetlistSong(w http.ResponseWriter, r *http.Request) {
	setlistID, ok := uuidParam(w, r, "setlistId")
	if !ok {
		return
	}
	raw := chi.URLParam(r, "songId")
	if raw == "" {
		raw = r.URL.Query().Get("songId")
	}
	if raw == "" {
		writeError(w, http.StatusBadRequest, "songId is required")
		return
	}
	songID, ok := validUUID(w, "songId", raw)
	if !ok {
		return
	}

	removed, err := s.setlists.Remove(r.Context(), setlistID, songID)
	if err != nil {
		writeStoreError(w, "remove setlist song", err)
		return
	}
	if removed {
		s.touchSetlist(r, setlistID)
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
}

func (s *Server) handleReorderSetlist(w http.ResponseWriter, r *http.Request) {
	setlistID, ok := uuidParam(w, r, "setlistId")
	if !ok {
		return
	}

	var body reorderSetlistRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.SongIDs == nil {
		writeError(w, http.StatusBadRequest, "songIds is required")
		return
	}
	for i, raw := range body.SongIDs {
		id, ok := validUUID(w, "songId", raw)
		if !ok {
			return
		}
		body.SongIDs[i] = id
	}

	ctx := r.Context()
	if _, err := s.store.GetSetlist(ctx, setlistID); err != nil {
		writeStoreError(w, "get setlist", err)
		return
	}
	if err := s.setlists.Reorder(ctx, setlistID, body.SongIDs); err != nil {
		writeStoreError(w, "reorder setlist", err)
		return
	}
	s.touchSetlist(r, setlistID)
	s.writeSetlist(w, r, setlistID, http.StatusOK)
}

// handleMoveSetlistSong drags one song to newIndex. The full order is
// derived here and executed as a reorder.
func (s *Server) handleMoveSetlistSong(w http.ResponseWriter, r *http.Request) {
	setlistID, ok := uuidParam(w, r, "setlistId")
	if !ok {
		return
	}
	songID, ok := uuidParam(w, r, "songId")
	if !ok {
		return
	}

	var body moveSetlistSongRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.NewIndex == nil {
		writeError(w, http.StatusBadRequest, "newIndex is required")
		return
	}

	ctx := r.Context()
	entries, err := s.store.SetlistEntries(ctx, setlistID)
	if err != nil {
		writeStoreError(w, "setlist entries", err)
		return
	}
	current := make([]string, len(entries))
	for i, e := range entries {
		current[i] = e.MemberID
	}
	from := ordering.IndexOf(current, songID)
	if from < 0 {
		writeError(w, http.StatusNotFound, "song is not in this setlist")
		return
	}
	next, err := ordering.Move(current, from, *body.NewIndex)
	if err != nil {
		writeStoreError(w, "move setlist song", err)
		return
	}

	if err := s.setlists.Reorder(ctx, setlistID, next); err != nil {
		writeStoreError(w, "move setlist song", err)
		return
	}
	s.touchSetlist(r, setlistID)
	s.writeSetlist(w, r, setlistID, http.StatusOK)
}
