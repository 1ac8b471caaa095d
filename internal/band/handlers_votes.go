package band

import (
	"net/http"
	"strings"

	"github.com/gorjanv/bandpractise/internal/rating"
)

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var body voteRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	songID, ok := validUUID(w, "songId", body.SongID)
	if !ok {
		return
	}
	if body.Rating == nil {
		writeError(w, http.StatusBadRequest, "rating is required")
		return
	}
	value, err := rating.Normalize(*body.Rating)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Comment != nil {
		c := strings.TrimSpace(*body.Comment)
		if c == "" {
			body.Comment = nil
		} else {
			body.Comment = &c
		}
	}

	ctx := r.Context()
	if _, err := s.store.GetSong(ctx, songID); err != nil {
		writeStoreError(w, "get song", err)
		return
	}

	vote := &Vote{
		SongID:    songID,
		UserID:    user.ID,
		Rating:    &value,
		Comment:   body.Comment,
		VoterName: user.DisplayName(),
	}
	if err := s.store.UpsertVote(ctx, vote); err != nil {
		writeStoreError(w, "upsert vote", err)
		return
	}

	ratings, err := s.store.SongRatings(ctx, songID)
	if err != nil {
		writeStoreError(w, "song ratings", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vote":    vote,
		"summary": rating.Summarize(ratings),
	})
}

func (s *Server) handleVoteSummary(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("songId")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "songId is required")
		return
	}
	songID, ok := validUUID(w, "songId", raw)
	if !ok {
		return
	}

	ratings, err := s.store.SongRatings(r.Context(), songID)
	if err != nil {
		writeStoreError(w, "song ratings", err)
		return
	}
	writeJSON(w, http.StatusOK, rating.Summarize(ratings))
}

func (s *Server) handleUserVotes(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	votes, err := s.store.UserVotes(r.Context(), user.ID)
	if err != nil {
		writeStoreError(w, "user votes", err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}
