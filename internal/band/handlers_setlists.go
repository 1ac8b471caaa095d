package band

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorjanv/bandpractise/internal/rating"
)

const dateLayout = "2006-01-02"

func validDate(raw string) bool {
	_, err := time.Parse(dateLayout, raw)
	return err == nil
}

// attachSongs fills each setlist's ordered songs with their vote summaries.
func (s *Server) attachSongs(ctx context.Context, setlists []Setlist) error {
	if len(setlists) == 0 {
		return nil
	}
	ids := make([]string, len(setlists))
	index := make(map[string]int, len(setlists))
	for i, sl := range setlists {
		ids[i] = sl.ID
		index[sl.ID] = i
		setlists[i].Songs = []SetlistSong{}
	}

	entries, err := s.store.ListSetlistSongs(ctx, ids)
	if err != nil {
		return err
	}
	rows, err := s.store.ListRatings(ctx)
	if err != nil {
		return err
	}
	summaries := rating.Group(rows)

	for _, e := range entries {
		if e.Song != nil {
			e.Song.Summary = rating.Lookup(summaries, e.SongID)
		}
		i, ok := index[e.SetlistID]
		if !ok {
			continue
		}
		setlists[i].Songs = append(setlists[i].Songs, e)
	}
	return nil
}

// touchSetlist bumps updated_at. Failures are logged only.
func (s *Server) touchSetlist(r *http.Request, setlistID string) {
	if err := s.store.TouchSetlist(r.Context(), setlistID); err != nil {
		log.Printf("bandpractise: touch setlist %s: %v", setlistID, err)
	}
}

func (s *Server) handleListSetlists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	setlists, err := s.store.ListSetlists(ctx)
	if err != nil {
		writeStoreError(w, "list setlists", err)
		return
	}
	if err := s.attachSongs(ctx, setlists); err != nil {
		writeStoreError(w, "list setlist songs", err)
		return
	}
	writeJSON(w, http.StatusOK, setlists)
}

func (s *Server) handleGetSetlist(w http.ResponseWriter, r *http.Request) {
	setlistID, ok := uuidParam(w, r, "setlistId")
	if !ok {
		return
	}
	s.writeSetlist(w, r, setlistID, http.StatusOK)
}

func (s *Server) writeSetlist(w http.ResponseWriter, r *http.Request, setlistID string, status int) {
	ctx := r.Context()
	sl, err := s.store.GetSetlist(ctx, setlistID)
	if err != nil {
		writeStoreError(w, "get setlist", err)
		return
	}
	one := []Setlist{*sl}
	if err := s.attachSongs(ctx, one); err != nil {
		writeStoreError(w, "list setlist songs", err)
		return
	}
	writeJSON(w, status, one[0])
}

func (s *Server) handleCreateSetlist(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var body createSetlistRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if !validDate(body.RehearsalDate) {
		writeError(w, http.StatusBadRequest, "rehearsalDate must be YYYY-MM-DD")
		return
	}
	if body.Name != nil {
		n := strings.TrimSpace(*body.Name)
		if n == "" {
			body.Name = nil
		} else {
			body.Name = &n
		}
	}

	sl := &Setlist{
		Name:          body.Name,
		RehearsalDate: body.RehearsalDate,
		UserID:        user.ID,
	}
	if err := s.store.CreateSetlist(r.Context(), sl); err != nil {
		writeStoreError(w, "create setlist", err)
		return
	}
	writeJSON(w, http.StatusCreated, sl)
}

// loadOwnedSetlist writes the error response itself when it returns false.
func (s *Server) loadOwnedSetlist(w http.ResponseWriter, r *http.Request, setlistID string) bool {
	sl, err := s.store.GetSetlist(r.Context(), setlistID)
	if err != nil {
		writeStoreError(w, "get setlist", err)
		return false
	}
	if sl.UserID != currentUser(r).ID {
		writeError(w, http.StatusForbidden, "only the setlist owner can do that")
		return false
	}
	return true
}

func (s *Server) handlePatchSetlist(w http.ResponseWriter, r *http.Request) {
	setlistID, ok := uuidParam(w, r, "setlistId")
	if !ok {
		return
	}

	var upd SetlistUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}
	if upd.RehearsalDate != nil && !validDate(*upd.RehearsalDate) {
		writeError(w, http.StatusBadRequest, "rehearsalDate must be YYYY-MM-DD")
		return
	}
	if !s.loadOwnedSetlist(w, r, setlistID) {
		return
	}

	if _, err := s.store.UpdateSetlist(r.Context(), setlistID, upd); err != nil {
		writeStoreError(w, "update setlist", err)
		return
	}
	s.writeSetlist(w, r, setlistID, http.StatusOK)
}

func (s *Server) handleDeleteSetlist(w http.ResponseWriter, r *http.Request) {
	setlistID, ok := uuidParam(w, r, "setlistId")
	if !ok {
		return
	}
	if !s.loadOwnedSetlist(w, r, setlistID) {
		return
	}

	if err := s.store.DeleteSetlist(r.Context(), setlistID); err != nil {
		writeStoreError(w, "delete setlist", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
