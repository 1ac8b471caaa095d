package band

import (
	"time"

	"github.com/gorjanv/bandpractise/internal/rating"
)

type Song struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	Artwork     string    `json:"artwork"`
	YoutubeURL  string    `json:"youtubeUrl"`
	YoutubeID   string    `json:"youtubeId"`
	UserID      *string   `json:"userId,omitempty"`
	AddedBy     string    `json:"addedBy"`
	AddedByName string    `json:"addedByName"`
	AddedAt     time.Time `json:"addedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OwnedBy accepts both the current user_id column and the legacy added_by
// column.
func (s *Song) OwnedBy(userID string) bool {
	if userID == "" {
		return false
	}
	return (s.UserID != nil && *s.UserID == userID) || s.AddedBy == userID
}

// SongView is a song with its vote summary and, for single-song reads, its
// versions.
type SongView struct {
	Song
	rating.Summary
	Versions []SongVersion `json:"versions,omitempty"`
}

type SongUpdate struct {
	Title      *string `json:"title"`
	Artist     *string `json:"artist"`
	Artwork    *string `json:"artwork"`
	YoutubeURL *string `json:"youtubeUrl"`
	YoutubeID  *string `json:"-"`
}

type SongVersion struct {
	ID         string    `json:"id"`
	SongID     string    `json:"songId"`
	YoutubeURL string    `json:"youtubeUrl"`
	YoutubeID  string    `json:"youtubeId"`
	Performer  *string   `json:"performer,omitempty"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Vote struct {
	ID        string    `json:"id"`
	SongID    string    `json:"songId"`
	UserID    string    `json:"userId,omitempty"`
	Rating    *int      `json:"rating"`
	Comment   *string   `json:"comment"`
	VoterName string    `json:"voterName"`
	Timestamp time.Time `json:"timestamp"`
}

type UserVote struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type Setlist struct {
	ID            string        `json:"id"`
	Name          *string       `json:"name"`
	RehearsalDate string        `json:"rehearsalDate"`
	UserID        string        `json:"userId"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Songs         []SetlistSong `json:"songs"`
}

type SetlistUpdate struct {
	Name          *string `json:"name"`
	RehearsalDate *string `json:"rehearsalDate"`
}

type SetlistSong struct {
	ID        string    `json:"id"`
	SetlistID string    `json:"setlistId"`
	SongID    string    `json:"songId"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	Song      *SongView `json:"song,omitempty"`
}

type createSongRequest struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Artwork    string `json:"artwork"`
	YoutubeURL string `json:"youtubeUrl"`
	YoutubeID  string `json:"youtubeId"`
}

type voteRequest struct {
	SongID  string   `json:"songId"`
	Rating  *float64 `json:"rating"`
	Comment *string  `json:"comment"`
}

type createSetlistRequest struct {
	Name          *string `json:"name"`
	RehearsalDate string  `json:"rehearsalDate"`
}

type addSetlistSongRequest struct {
	SongID   string `json:"songId"`
	Position *int   `json:"position"`
}

type reorderSetlistRequest struct {
	SongIDs []string `json:"songIds"`
}

type moveSetlistSongRequest struct {
	NewIndex *int `json:"newIndex"`
}

type addVersionRequest struct {
	YoutubeURL string  `json:"youtubeUrl"`
	Performer  *string `json:"performer"`
	Position   *int    `json:"position"`
}

type reorderVersionsRequest struct {
	VersionIDs []string `json:"versionIds"`
}
