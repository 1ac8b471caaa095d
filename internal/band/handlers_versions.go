package band

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorjanv/bandpractise/internal/media"
	"github.com/gorjanv/bandpractise/internal/ordering"
)

func (s *Server) handleAddVersion(w http.ResponseWriter, r *http.Request) {
	songID, ok := uuidParam(w, r, "songId")
	if !ok {
		return
	}

	var body addVersionRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	videoID, ok := media.ExtractYouTubeID(body.YoutubeURL)
	if !ok {
		writeError(w, http.StatusBadRequest, "youtubeUrl is not a YouTube link")
		return
	}
	position := ordering.AppendAtEnd
	if body.Position != nil {
		position = *body.Position
	}
	if body.Performer != nil {
		p := strings.TrimSpace(*body.Performer)
		if p == "" {
			body.Performer = nil
		} else {
			body.Performer = &p
		}
	}

	ctx := r.Context()
	if _, err := s.store.GetSong(ctx, songID); err != nil {
		writeStoreError(w, "get song", err)
		return
	}

	v := &SongVersion{
		SongID:     songID,
		YoutubeURL: strings.TrimSpace(body.YoutubeURL),
		YoutubeID:  videoID,
		Performer:  body.Performer,
	}
	insert := func(ctx context.Context, pos int) (ordering.Entry, error) {
		v.Position = pos
		if err := s.store.InsertVersion(ctx, v); err != nil {
			return ordering.Entry{}, err
		}
		return ordering.Entry{ID: v.ID, MemberID: v.ID, Position: pos}, nil
	}
	// the version id is assigned by the insert, so there is no member to
	// check for duplicates
	if _, err := s.versions.Append(ctx, songID, "", position, insert); err != nil {
		writeStoreError(w, "add version", err)
		return
	}

	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleReorderVersions(w http.ResponseWriter, r *http.Request) {
	songID, ok := uuidParam(w, r, "songId")
	if !ok {
		return
	}

	var body reorderVersionsRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.VersionIDs == nil {
		writeError(w, http.StatusBadRequest, "versionIds is required")
		return
	}
	for i, raw := range body.VersionIDs {
		id, ok := validUUID(w, "versionId", raw)
		if !ok {
			return
		}
		body.VersionIDs[i] = id
	}

	ctx := r.Context()
	if err := s.versions.Reorder(ctx, songID, body.VersionIDs); err != nil {
		writeStoreError(w, "reorder versions", err)
		return
	}
	versions, err := s.store.ListVersions(ctx, songID)
	if err != nil {
		writeStoreError(w, "list versions", err)
		return
	}
	writeJSON(w, http.StatusOK, versions)
}

func (s *Server) handleDeleteVersion(w http.ResponseWriter, r *http.Request) {
	songID, ok := uuidParam(w, r, "songId")
	if !ok {
		return
	}
	versionID, ok := uuidParam(w, r, "versionId")
	if !ok {
		return
	}

	removed, err := s.versions.Remove(r.Context(), songID, versionID)
	if err != nil {
		writeStoreError(w, "delete version", err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": true})
}
