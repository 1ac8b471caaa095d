package band

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gorjanv/bandpractise/internal/auth"
	"github.com/gorjanv/bandpractise/internal/ordering"
)

type Server struct {
	store    Store
	setlists *ordering.Manager
	versions *ordering.Manager
}

// NewServer wires the ordering managers for setlists and song versions.
// locker may be nil.
func NewServer(store Store, locker ordering.Locker) *Server {
	var opts []ordering.Option
	if locker != nil {
		opts = append(opts, ordering.WithLocker(locker))
	}
	return &Server{
		store:    store,
		setlists: ordering.NewManager(setlistCollection{store: store}, "setlist", opts...),
		versions: ordering.NewManager(versionCollection{store: store}, "version", opts...),
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)

	r.Get("/songs", s.handleListSongs)
	r.Get("/songs/{songId}", s.handleGetSong)
	r.Get("/songs/{songId}/votes", s.handleListSongVotes)
	r.Get("/votes", s.handleVoteSummary)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)

		r.Post("/songs", s.handleCreateSong)
		r.Patch("/songs/{songId}", s.handlePatchSong)
		r.Delete("/songs/{songId}", s.handleDeleteSong)

		r.Post("/songs/{songId}/versions", s.handleAddVersion)
		r.Patch("/songs/{songId}/versions", s.handleReorderVersions)
		r.Delete("/songs/{songId}/versions/{versionId}", s.handleDeleteVersion)

		r.Post("/votes", s.handleVote)
		r.Get("/votes/user", s.handleUserVotes)

		r.Get("/setlists", s.handleListSetlists)
		r.Post("/setlists", s.handleCreateSetlist)
		r.Get("/setlists/{setlistId}", s.handleGetSetlist)
		r.Patch("/setlists/{setlistId}", s.handlePatchSetlist)
		r.Delete("/setlists/{setlistId}", s.handleDeleteSetlist)

		r.Post("/setlists/{setlistId}/songs", s.handleAddSetlistSong)
		r.Patch("/setlists/{setlistId}/songs", s.handleReorderSetlist)
		r.Delete("/setlists/{setlistId}/songs", s.handleRemoveSetlistSong)
		r.Patch("/setlists/{setlistId}/songs/{songId}", s.handleMoveSetlistSong)
		r.Delete("/setlists/{setlistId}/songs/{songId}", s.handleRemoveSetlistSong)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "bandpractise",
	})
}
